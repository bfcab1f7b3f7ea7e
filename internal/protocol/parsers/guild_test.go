package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

func writeRoster(w *packet.Writer, f Format) {
	w.WriteUint32(2)
	w.WriteCString("Raid at 8")
	w.WriteCString("")
	w.WriteUint32(1)
	w.WriteUint32(0xFFFFFFFF)
	if f.GuildRankGold {
		w.WriteUint32(1000)
	}
	for range f.GuildBankTabs {
		w.WriteUint32(0)
		w.WriteUint32(0)
	}

	for i, online := range []bool{true, false} {
		w.WriteUint64(uint64(0x100 + i))
		if online {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}
		w.WriteCString("Member")
		w.WriteUint32(0)
		w.WriteUint8(60)
		w.WriteUint8(1)
		if f.GuildMemberSex {
			w.WriteUint8(1)
		}
		w.WriteUint32(1519)
		if !online {
			w.WriteFloat(2.5)
		}
		w.WriteCString("note")
		w.WriteCString("")
	}
}

func TestParseGuildRoster(t *testing.T) {
	for _, f := range []Format{WotLK, TBC, Classic} {
		t.Run(f.Name, func(t *testing.T) {
			w := packet.NewWriter(256)
			writeRoster(w, f)

			g, err := New(f).ParseGuildRoster(packet.NewReader(w.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, "Raid at 8", g.MOTD)
			require.Len(t, g.Ranks, 1)
			assert.Len(t, g.Ranks[0].BankTabs, f.GuildBankTabs)
			require.Len(t, g.Members, 2)
			assert.Equal(t, 1, g.Online())
			assert.Equal(t, float32(2.5), g.Members[1].LastOnline)
			assert.Equal(t, "note", g.Members[1].PublicNote)
		})
	}
}

func TestParseGuildRoster_CountsExceedPayload(t *testing.T) {
	w := packet.NewWriter(32)
	w.WriteUint32(100000)
	w.WriteCString("")
	w.WriteCString("")
	w.WriteUint32(0)

	_, err := New(WotLK).ParseGuildRoster(packet.NewReader(w.Bytes()))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseGuildQueryResponse(t *testing.T) {
	w := packet.NewWriter(128)
	w.WriteUint32(5)
	w.WriteCString("Knights")
	for i := range GuildRankNames {
		if i < 3 {
			w.WriteCString("Rank")
		} else {
			w.WriteCString("")
		}
	}
	for i := range 5 {
		w.WriteUint32(uint32(i))
	}

	g, err := New(WotLK).ParseGuildQueryResponse(packet.NewReader(w.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, uint32(5), g.GuildID)
	assert.Equal(t, "Knights", g.Name)
	assert.Equal(t, "Rank", g.RankNames[2])
	assert.Empty(t, g.RankNames[3])
	assert.Equal(t, uint32(4), g.BackgroundColor)
	assert.Zero(t, g.RankCount)

	pkt := BuildGuildQuery(5)
	assert.Equal(t, opcode.CMsgGuildQuery, pkt.Opcode)
	assert.Equal(t, []byte{5, 0, 0, 0}, pkt.Payload)
}
