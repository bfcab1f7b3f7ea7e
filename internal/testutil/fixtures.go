package testutil

import (
	"testing"

	"github.com/udisondev/wowee/internal/opcode"
)

// Fixtures содержит общие тестовые данные.
var Fixtures = struct {
	// SessionKey: 40-байтовый ключ сессии (SRP6 K).
	SessionKey []byte

	// Wire values of the test opcode table (3.3.5a numbering).
	Opcodes map[opcode.Op]uint16
}{
	SessionKey: func() []byte {
		k := make([]byte, 40)
		for i := range k {
			k[i] = byte(i*7 + 3)
		}
		return k
	}(),

	Opcodes: map[opcode.Op]uint16{
		opcode.CMsgCharEnum:               0x037,
		opcode.CMsgPlayerLogin:            0x03D,
		opcode.CMsgNameQuery:              0x050,
		opcode.CMsgMessagechat:            0x095,
		opcode.CMsgCastSpell:              0x12E,
		opcode.CMsgGuildQuery:             0x054,
		opcode.CMsgPing:                   0x1DC,
		opcode.CMsgAuthSession:            0x1ED,
		opcode.CMsgWardenData:             0x2E7,
		opcode.CMsgMoveHeartbeat:          0x0EE,
		opcode.CMsgMoveStartForward:       0x0B5,
		opcode.SMsgCharEnum:               0x03B,
		opcode.SMsgNameQueryResponse:      0x051,
		opcode.SMsgGuildQueryResponse:     0x055,
		opcode.SMsgGuildRoster:            0x08A,
		opcode.SMsgMessagechat:            0x096,
		opcode.SMsgUpdateObject:           0x0A9,
		opcode.SMsgDestroyObject:          0x0AA,
		opcode.SMsgMonsterMove:            0x0DD,
		opcode.SMsgCastFailed:             0x130,
		opcode.SMsgAttackerstateupdate:    0x14A,
		opcode.SMsgInitialSpells:          0x12A,
		opcode.SMsgSpellnonmeleedamagelog: 0x250,
		opcode.SMsgPong:                   0x1DD,
		opcode.SMsgCompressedUpdateObject: 0x1F6,
		opcode.SMsgAuthChallenge:          0x1EC,
		opcode.SMsgAuthResponse:           0x1EE,
		opcode.SMsgWardenData:             0x2E6,
		opcode.SMsgAuraUpdateAll:          0x495,
		opcode.SMsgAuraUpdate:             0x496,
	},
}

// InstallOpcodes activates a table built from Fixtures.Opcodes and restores
// the previous table when the test ends.
func InstallOpcodes(t testing.TB) *opcode.Table {
	t.Helper()

	prev := opcode.Active()
	tbl := opcode.NewTable()
	for op, wire := range Fixtures.Opcodes {
		tbl.Set(op, wire)
	}
	opcode.SetActive(tbl)
	t.Cleanup(func() { opcode.SetActive(prev) })
	return tbl
}
