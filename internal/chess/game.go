package chess

import (
	"net/url"
	"strings"
)

// Game is a game record as read from a PGN source: its tags and the raw
// mainline movetext. Moves are resolved later by the engine.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// The movetext exactly as read, including move numbers, comments and result.
	MoveText string

	// Line numbers of the start and end of the game in the input file.
	StartLine uint
	EndLine   uint
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return &Game{
		Tags: make(map[string]string),
	}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value.
func (g *Game) SetTag(name, value string) {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
	g.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag(WhiteTag)
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag(BlackTag)
}

// Result returns the game result.
func (g *Game) Result() string {
	return g.GetTag(ResultTag)
}

// ECO returns the ECO code.
func (g *Game) ECO() string {
	return g.GetTag(ECOTag)
}

// FEN returns the FEN string if present.
func (g *Game) FEN() string {
	return g.GetTag(FENTag)
}

// ID returns the identifier the tags provide: GameId, then Link, then Site
// when it is an http(s) URL as in online exports. A Site such as "London"
// names a venue, not a game, and is ignored. Empty when none applies.
func (g *Game) ID() string {
	for _, name := range []string{GameIDTag, LinkTag} {
		if v := strings.TrimSpace(g.GetTag(name)); v != "" && v != "?" {
			return v
		}
	}
	if site := strings.TrimSpace(g.GetTag(SiteTag)); isGameURL(site) {
		return site
	}
	return ""
}

func isGameURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
