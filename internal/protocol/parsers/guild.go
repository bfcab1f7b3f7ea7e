package parsers

import (
	"log/slog"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// GuildRankNames is the fixed number of rank names in SMSG_GUILD_QUERY_RESPONSE.
const GuildRankNames = 10

// GuildQueryResponse is a decoded SMSG_GUILD_QUERY_RESPONSE.
type GuildQueryResponse struct {
	GuildID         uint32
	Name            string
	RankNames       [GuildRankNames]string
	EmblemStyle     uint32
	EmblemColor     uint32
	BorderStyle     uint32
	BorderColor     uint32
	BackgroundColor uint32
	RankCount       uint32
}

// ParseGuildQueryResponse decodes SMSG_GUILD_QUERY_RESPONSE.
func (p *Parsers) ParseGuildQueryResponse(r *packet.Reader) (*GuildQueryResponse, error) {
	d := newDecoder(r)
	g := &GuildQueryResponse{}

	g.GuildID = d.u32()
	g.Name = d.cstring()
	for i := range g.RankNames {
		g.RankNames[i] = d.cstring()
	}
	g.EmblemStyle = d.u32()
	g.EmblemColor = d.u32()
	g.BorderStyle = d.u32()
	g.BorderColor = d.u32()
	g.BackgroundColor = d.u32()
	if d.err == nil && d.remaining() >= 4 {
		g.RankCount = d.u32()
	}

	if err := d.done("guild query response"); err != nil {
		return nil, err
	}
	return g, nil
}

// BuildGuildQuery builds CMSG_GUILD_QUERY.
func BuildGuildQuery(guildID uint32) protocol.Packet {
	w := packet.NewWriter(4)
	w.WriteUint32(guildID)
	return protocol.Packet{Opcode: opcode.CMsgGuildQuery, Payload: w.Bytes()}
}

// GuildBankTab holds per-tab rank rights.
type GuildBankTab struct {
	Rights      uint32
	SlotsPerDay uint32
}

// GuildRank is one rank definition of the roster.
type GuildRank struct {
	Rights    uint32
	GoldLimit uint32
	BankTabs  []GuildBankTab
}

// GuildMember is one roster entry.
type GuildMember struct {
	Guid   uint64
	Online bool
	Name   string
	Rank   uint32
	Level  uint8
	Class  uint8
	Gender uint8
	ZoneID uint32
	// LastOnline is in days, only for offline members.
	LastOnline  float32
	PublicNote  string
	OfficerNote string
}

// GuildRoster is a decoded SMSG_GUILD_ROSTER.
type GuildRoster struct {
	MOTD    string
	Info    string
	Ranks   []GuildRank
	Members []GuildMember
}

// Online returns the number of members currently online.
func (g *GuildRoster) Online() int {
	n := 0
	for i := range g.Members {
		if g.Members[i].Online {
			n++
		}
	}
	return n
}

// ParseGuildRoster decodes SMSG_GUILD_ROSTER.
func (p *Parsers) ParseGuildRoster(r *packet.Reader) (*GuildRoster, error) {
	f := &p.format
	d := newDecoder(r)
	g := &GuildRoster{}

	members := d.u32()
	g.MOTD = d.cstring()
	g.Info = d.cstring()
	ranks := d.u32()
	if d.err != nil {
		return nil, d.done("guild roster")
	}
	// rank record is at least 4 bytes, member record at least 10
	if int64(ranks)*4 > int64(d.remaining()) || int64(members)*10 > int64(d.remaining()) {
		d.failf("guild roster counts %d ranks / %d members exceed payload", ranks, members)
		return nil, d.done("guild roster")
	}

	g.Ranks = make([]GuildRank, 0, ranks)
	for i := uint32(0); i < ranks && d.err == nil; i++ {
		var rk GuildRank
		rk.Rights = d.u32()
		if f.GuildRankGold {
			rk.GoldLimit = d.u32()
		}
		if f.GuildBankTabs > 0 {
			rk.BankTabs = make([]GuildBankTab, f.GuildBankTabs)
			for t := range rk.BankTabs {
				rk.BankTabs[t].Rights = d.u32()
				rk.BankTabs[t].SlotsPerDay = d.u32()
			}
		}
		g.Ranks = append(g.Ranks, rk)
	}

	g.Members = make([]GuildMember, 0, members)
	for i := uint32(0); i < members && d.err == nil; i++ {
		var m GuildMember
		m.Guid = d.u64()
		m.Online = d.u8() != 0
		m.Name = d.cstring()
		m.Rank = d.u32()
		m.Level = d.u8()
		m.Class = d.u8()
		if f.GuildMemberSex {
			m.Gender = d.u8()
		}
		m.ZoneID = d.u32()
		if !m.Online {
			m.LastOnline = d.f32()
		}
		m.PublicNote = d.cstring()
		m.OfficerNote = d.cstring()
		g.Members = append(g.Members, m)
	}

	if err := d.done("guild roster"); err != nil {
		return nil, err
	}
	slog.Debug("guild roster", "members", len(g.Members), "online", g.Online(), "ranks", len(g.Ranks))
	return g, nil
}
