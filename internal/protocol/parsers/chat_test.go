package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

func writeSized(w *packet.Writer, s string) {
	w.WriteUint32(uint32(len(s) + 1))
	w.WriteCString(s)
}

func TestParseMessageChat_WotLK(t *testing.T) {
	t.Run("say", func(t *testing.T) {
		w := packet.NewWriter(64)
		w.WriteUint8(uint8(ChatSay))
		w.WriteUint32(LangCommon)
		w.WriteUint64(0x10)
		w.WriteUint32(0)
		w.WriteUint64(0x10)
		writeSized(w, "hello")
		w.WriteUint8(0)

		m, err := New(WotLK).ParseMessageChat(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, ChatSay, m.Type)
		assert.Equal(t, LangCommon, m.Language)
		assert.Equal(t, uint64(0x10), m.SenderGuid)
		assert.Equal(t, "hello", m.Message)
	})

	t.Run("monster yell", func(t *testing.T) {
		w := packet.NewWriter(64)
		w.WriteUint8(uint8(ChatMonsterYell))
		w.WriteUint32(LangUniversal)
		w.WriteUint64(0xF130000000000001)
		w.WriteUint32(0)
		writeSized(w, "Hogger")
		w.WriteUint64(0)
		writeSized(w, "Grr!")
		w.WriteUint8(0)

		m, err := New(WotLK).ParseMessageChat(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.True(t, m.Type.IsMonster())
		assert.Equal(t, "Hogger", m.SenderName)
		assert.Equal(t, "Grr!", m.Message)
	})

	t.Run("channel", func(t *testing.T) {
		w := packet.NewWriter(64)
		w.WriteUint8(uint8(ChatChannel))
		w.WriteUint32(LangCommon)
		w.WriteUint64(0x20)
		w.WriteUint32(0)
		w.WriteCString("General")
		w.WriteUint64(0)
		writeSized(w, "lfg")
		w.WriteUint8(0)

		m, err := New(WotLK).ParseMessageChat(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, "General", m.Channel)
		assert.Equal(t, "lfg", m.Message)
	})

	t.Run("oversized message skipped", func(t *testing.T) {
		w := packet.NewWriter(9000)
		w.WriteUint8(uint8(ChatSystem))
		w.WriteUint32(LangUniversal)
		w.WriteUint64(0)
		w.WriteUint32(0)
		w.WriteUint64(0)
		w.WriteUint32(maxChatMessage)
		w.WriteBytes(make([]byte, maxChatMessage))
		w.WriteUint8(0)

		m, err := New(WotLK).ParseMessageChat(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Empty(t, m.Message)
	})
}

func TestParseMessageChat_Classic(t *testing.T) {
	t.Run("system", func(t *testing.T) {
		w := packet.NewWriter(64)
		w.WriteUint8(10)
		w.WriteUint32(LangUniversal)
		w.WriteUint64(0)
		writeSized(w, "Welcome")
		w.WriteUint8(0)

		m, err := New(Classic).ParseMessageChat(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, ChatSystem, m.Type)
		assert.Equal(t, "Welcome", m.Message)
	})

	t.Run("say repeats sender", func(t *testing.T) {
		w := packet.NewWriter(64)
		w.WriteUint8(0)
		w.WriteUint32(LangCommon)
		w.WriteUint64(0x33)
		w.WriteUint64(0x33)
		writeSized(w, "hi")
		w.WriteUint8(0)

		m, err := New(Classic).ParseMessageChat(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, ChatSay, m.Type)
		assert.Equal(t, uint64(0x33), m.SenderGuid)
		assert.Equal(t, "hi", m.Message)
	})

	t.Run("channel", func(t *testing.T) {
		w := packet.NewWriter(64)
		w.WriteUint8(14)
		w.WriteUint32(LangCommon)
		w.WriteCString("Trade")
		w.WriteUint32(0)
		w.WriteUint64(0x44)
		writeSized(w, "wts")
		w.WriteUint8(0)

		m, err := New(Classic).ParseMessageChat(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, ChatChannel, m.Type)
		assert.Equal(t, "Trade", m.Channel)
		assert.Equal(t, uint64(0x44), m.SenderGuid)
	})
}

func TestBuildMessageChat(t *testing.T) {
	pkt := New(WotLK).BuildMessageChat(ChatWhisper, LangCommon, "hey", "Bob")
	assert.Equal(t, opcode.CMsgMessagechat, pkt.Opcode)
	assert.Equal(t, []byte{
		7, 0, 0, 0,
		7, 0, 0, 0,
		'B', 'o', 'b', 0,
		'h', 'e', 'y', 0,
	}, pkt.Payload)

	// classic whisper is wire type 6, say has no target
	pkt = New(Classic).BuildMessageChat(ChatSay, LangCommon, "x", "ignored")
	assert.Equal(t, []byte{0, 0, 0, 0, 7, 0, 0, 0, 'x', 0}, pkt.Payload)
	pkt = New(Classic).BuildMessageChat(ChatWhisper, LangCommon, "x", "Al")
	assert.Equal(t, []byte{6, 0, 0, 0, 7, 0, 0, 0, 'A', 'l', 0, 'x', 0}, pkt.Payload)
}

func TestChatTypeString(t *testing.T) {
	assert.Equal(t, "WHISPER_INFORM", ChatWhisperInform.String())
	assert.Equal(t, "UNKNOWN", ChatType(200).String())
}

func TestParseNameQueryResponse(t *testing.T) {
	t.Run("wotlk", func(t *testing.T) {
		w := packet.NewWriter(32)
		w.WritePackedGuid(0x10)
		w.WriteUint8(0)
		w.WriteCString("Thrall")
		w.WriteCString("")
		w.WriteUint8(2)
		w.WriteUint8(0)
		w.WriteUint8(7)

		n, err := New(WotLK).ParseNameQueryResponse(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.True(t, n.Found)
		assert.Equal(t, "Thrall", n.Name)
		assert.Equal(t, uint8(7), n.Class)
	})

	t.Run("wotlk not found", func(t *testing.T) {
		n, err := New(WotLK).ParseNameQueryResponse(packet.NewReader([]byte{0x01, 0x10, 0x01}))
		require.NoError(t, err)
		assert.False(t, n.Found)
		assert.Empty(t, n.Name)
	})

	t.Run("tbc", func(t *testing.T) {
		w := packet.NewWriter(32)
		w.WriteUint64(0x10)
		w.WriteCString("Thrall")
		w.WriteCString("")
		w.WriteUint32(2)
		w.WriteUint32(0)
		w.WriteUint32(7)

		n, err := New(TBC).ParseNameQueryResponse(packet.NewReader(w.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, uint64(0x10), n.Guid)
		assert.Equal(t, uint8(2), n.Race)
		assert.Equal(t, uint8(7), n.Class)
	})
}

func TestBuildNameQuery(t *testing.T) {
	pkt := BuildNameQuery(0x10)
	assert.Equal(t, opcode.CMsgNameQuery, pkt.Opcode)
	assert.Len(t, pkt.Payload, 8)
}
