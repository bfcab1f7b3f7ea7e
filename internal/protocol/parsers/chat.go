package parsers

import (
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// ChatType is the message type in 3.3.5a numbering. Classic wire values
// are translated on parse and build.
type ChatType uint8

const (
	ChatSystem           ChatType = 0
	ChatSay              ChatType = 1
	ChatParty            ChatType = 2
	ChatRaid             ChatType = 3
	ChatGuild            ChatType = 4
	ChatOfficer          ChatType = 5
	ChatYell             ChatType = 6
	ChatWhisper          ChatType = 7
	ChatWhisperForeign   ChatType = 8
	ChatWhisperInform    ChatType = 9
	ChatEmote            ChatType = 10
	ChatTextEmote        ChatType = 11
	ChatMonsterSay       ChatType = 12
	ChatMonsterParty     ChatType = 13
	ChatMonsterYell      ChatType = 14
	ChatMonsterWhisper   ChatType = 15
	ChatMonsterEmote     ChatType = 16
	ChatChannel          ChatType = 17
	ChatAchievement      ChatType = 48
	ChatGuildAchievement ChatType = 49
)

func (t ChatType) String() string {
	switch t {
	case ChatSystem:
		return "SYSTEM"
	case ChatSay:
		return "SAY"
	case ChatParty:
		return "PARTY"
	case ChatRaid:
		return "RAID"
	case ChatGuild:
		return "GUILD"
	case ChatOfficer:
		return "OFFICER"
	case ChatYell:
		return "YELL"
	case ChatWhisper:
		return "WHISPER"
	case ChatWhisperForeign:
		return "WHISPER_FOREIGN"
	case ChatWhisperInform:
		return "WHISPER_INFORM"
	case ChatEmote:
		return "EMOTE"
	case ChatTextEmote:
		return "TEXT_EMOTE"
	case ChatMonsterSay:
		return "MONSTER_SAY"
	case ChatMonsterParty:
		return "MONSTER_PARTY"
	case ChatMonsterYell:
		return "MONSTER_YELL"
	case ChatMonsterWhisper:
		return "MONSTER_WHISPER"
	case ChatMonsterEmote:
		return "MONSTER_EMOTE"
	case ChatChannel:
		return "CHANNEL"
	case ChatAchievement:
		return "ACHIEVEMENT"
	case ChatGuildAchievement:
		return "GUILD_ACHIEVEMENT"
	default:
		return "UNKNOWN"
	}
}

// IsMonster reports creature speech types that carry a sender name.
func (t ChatType) IsMonster() bool {
	switch t {
	case ChatMonsterSay, ChatMonsterParty, ChatMonsterYell, ChatMonsterWhisper, ChatMonsterEmote:
		return true
	}
	return false
}

// 1.12 wire values, index = wire byte.
var classicChatTypes = [...]ChatType{
	ChatSay,
	ChatParty,
	ChatRaid,
	ChatGuild,
	ChatOfficer,
	ChatYell,
	ChatWhisper,
	ChatWhisperInform,
	ChatEmote,
	ChatTextEmote,
	ChatSystem,
	ChatMonsterSay,
	ChatMonsterYell,
	ChatMonsterEmote,
	ChatChannel,
}

func (f *Format) chatTypeFromWire(v uint8) ChatType {
	if !f.ClassicChatTypes {
		return ChatType(v)
	}
	if int(v) < len(classicChatTypes) {
		return classicChatTypes[v]
	}
	return ChatType(v)
}

func (f *Format) chatTypeToWire(t ChatType) uint8 {
	if !f.ClassicChatTypes {
		return uint8(t)
	}
	for i, ct := range classicChatTypes {
		if ct == t {
			return uint8(i)
		}
	}
	return uint8(t)
}

// Language ids used by the client.
const (
	LangUniversal uint32 = 0
	LangOrcish    uint32 = 1
	LangCommon    uint32 = 7
	LangAddon     uint32 = 0xFFFFFFFF
)

const (
	maxSenderNameLen = 256
	maxChatMessage   = 8192
)

// MessageChat is a decoded SMSG_MESSAGECHAT.
type MessageChat struct {
	Type         ChatType
	Language     uint32
	SenderGuid   uint64
	SenderName   string
	ReceiverGuid uint64
	Channel      string
	ChannelRank  uint32
	Message      string
	ChatTag      uint8
}

// ParseMessageChat decodes SMSG_MESSAGECHAT.
// Sender names and messages with absurd lengths are left empty and skipped.
func (p *Parsers) ParseMessageChat(r *packet.Reader) (*MessageChat, error) {
	f := &p.format
	d := newDecoder(r)
	m := &MessageChat{}

	m.Type = f.chatTypeFromWire(d.u8())
	m.Language = d.u32()
	if d.err != nil {
		return nil, d.done("message chat")
	}

	if f.ClassicChatTypes {
		readClassicChatPrefix(d, m)
	} else {
		m.SenderGuid = d.u64()
		d.u32()
		switch {
		case m.Type.IsMonster():
			m.SenderName = readSizedString(d, maxSenderNameLen)
			m.ReceiverGuid = d.u64()
		case m.Type == ChatChannel:
			m.Channel = d.cstring()
			m.ReceiverGuid = d.u64()
		default:
			m.ReceiverGuid = d.u64()
		}
	}

	m.Message = readSizedString(d, maxChatMessage)
	m.ChatTag = d.u8()

	if err := d.done("message chat"); err != nil {
		return nil, err
	}
	return m, nil
}

func readClassicChatPrefix(d *decoder, m *MessageChat) {
	switch m.Type {
	case ChatMonsterSay, ChatMonsterYell, ChatMonsterEmote:
		m.SenderName = readSizedString(d, maxSenderNameLen)
		m.ReceiverGuid = d.u64()
	case ChatChannel:
		m.Channel = d.cstring()
		m.ChannelRank = d.u32()
		m.SenderGuid = d.u64()
	case ChatSay, ChatParty, ChatYell:
		m.SenderGuid = d.u64()
		d.u64() // повтор отправителя
	default:
		m.SenderGuid = d.u64()
	}
}

// readSizedString reads a u32 length and that many bytes. Lengths of zero or
// at least limit skip the bytes and return "". The trailing NUL is trimmed.
func readSizedString(d *decoder, limit int) string {
	n := d.u32()
	if d.err != nil || n == 0 {
		return ""
	}
	if int64(n) > int64(d.remaining()) {
		d.fail(ErrTruncated)
		return ""
	}
	if int(n) >= limit {
		d.skip(int(n))
		return ""
	}
	s := d.fixedString(int(n))
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return s
}

// BuildMessageChat builds CMSG_MESSAGECHAT. target is the whisper recipient
// or the channel name and is ignored for other types.
func (p *Parsers) BuildMessageChat(t ChatType, language uint32, message, target string) protocol.Packet {
	w := packet.NewWriter(16 + len(message) + len(target))
	w.WriteUint32(uint32(p.format.chatTypeToWire(t)))
	w.WriteUint32(language)
	if t == ChatWhisper || t == ChatChannel {
		w.WriteCString(target)
	}
	w.WriteCString(message)
	return protocol.Packet{Opcode: opcode.CMsgMessagechat, Payload: w.Bytes()}
}

// NameQueryResponse is a decoded SMSG_NAME_QUERY_RESPONSE.
type NameQueryResponse struct {
	Guid   uint64
	Found  bool
	Name   string
	Realm  string
	Race   uint8
	Gender uint8
	Class  uint8
}

// ParseNameQueryResponse decodes SMSG_NAME_QUERY_RESPONSE.
func (p *Parsers) ParseNameQueryResponse(r *packet.Reader) (*NameQueryResponse, error) {
	d := newDecoder(r)
	n := &NameQueryResponse{}

	if p.format.NameQueryPacked {
		n.Guid = d.packedGuid()
		// 0 = найдено
		n.Found = d.u8() == 0
		if n.Found {
			n.Name = d.cstring()
			n.Realm = d.cstring()
			n.Race = d.u8()
			n.Gender = d.u8()
			n.Class = d.u8()
		}
	} else {
		n.Guid = d.u64()
		n.Name = d.cstring()
		n.Realm = d.cstring()
		n.Race = uint8(d.u32())
		n.Gender = uint8(d.u32())
		n.Class = uint8(d.u32())
		n.Found = true
	}

	if err := d.done("name query response"); err != nil {
		return nil, err
	}
	return n, nil
}

// BuildNameQuery builds CMSG_NAME_QUERY.
func BuildNameQuery(guid uint64) protocol.Packet {
	w := packet.NewWriter(8)
	w.WriteUint64(guid)
	return protocol.Packet{Opcode: opcode.CMsgNameQuery, Payload: w.Bytes()}
}
