// Package eco holds the opening reference catalog: entries keyed by canonical
// position, the loaders that build them and the matcher that maps a game's
// position sequence onto them.
package eco

import (
	"fmt"
	"math"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/engine"
	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// Tier is a popularity band derived from a catalog sample size.
type Tier string

const (
	TierMainstream Tier = "mainstream"
	TierCommon     Tier = "common"
	TierUncommon   Tier = "uncommon"
	TierRare       Tier = "rare"
)

// TierFor returns the popularity band for a sample size.
func TierFor(sampleSize int) Tier {
	switch {
	case sampleSize >= 100000:
		return TierMainstream
	case sampleSize >= 10000:
		return TierCommon
	case sampleSize >= 1000:
		return TierUncommon
	default:
		return TierRare
	}
}

// Acceptance says whether an opening name describes an accepted or declined gambit.
type Acceptance string

const (
	Accepted Acceptance = "accepted"
	Declined Acceptance = "declined"
	Neutral  Acceptance = "neutral"
)

// Stats are the catalog's outcome fractions for a position, from White's view.
type Stats struct {
	WhiteWin   float64 `json:"white_win"`
	Draw       float64 `json:"draw"`
	BlackWin   float64 `json:"black_win"`
	SampleSize int     `json:"sample_size"`
	Tier       Tier    `json:"tier"`
}

// HasBaseline reports whether outcome fractions were recorded.
func (s Stats) HasBaseline() bool {
	return s.WhiteWin+s.Draw+s.BlackWin > 0
}

// WinFraction returns the baseline win fraction for the given colour.
func (s Stats) WinFraction(colour chess.Colour) float64 {
	if colour == chess.White {
		return s.WhiteWin
	}
	return s.BlackWin
}

// OpeningEntry is one reference record. Entries are immutable once they are
// part of a Database.
type OpeningEntry struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Family     string     `json:"family"`
	System     string     `json:"system,omitempty"`
	Variation  string     `json:"variation,omitempty"`
	ECO        string     `json:"eco,omitempty"`
	FEN        string     `json:"fen,omitempty"`
	Key        string     `json:"key"`
	Mainline   []string   `json:"mainline,omitempty"`
	Stats      Stats      `json:"stats"`
	Eval       *float64   `json:"eval,omitempty"`
	Acceptance Acceptance `json:"acceptance"`

	// Positions along the mainline, initial position first. Nil for entries
	// given only by FEN.
	Path []chess.Position `json:"-"`
}

// Depth returns the ply count of the entry's mainline, or 0 when it has none.
func (e *OpeningEntry) Depth() int {
	if len(e.Path) == 0 {
		return 0
	}
	return len(e.Path) - 1
}

// prepare fills the derived fields: the position path and key from the
// mainline or FEN, the family, acceptance status and tier.
func (e *OpeningEntry) prepare() error {
	if e.ID == "" {
		return fmt.Errorf("opening %q: missing identifier: %w", e.Name, errors.ErrParseFailure)
	}

	if len(e.Mainline) > 0 {
		seq, err := engine.BuildSequence(e.Mainline)
		if err != nil {
			return fmt.Errorf("opening %s mainline: %w", e.ID, err)
		}
		e.Path = seq.Positions()
		e.Key = seq.Final().Key()
	}
	if e.FEN != "" {
		key, err := engine.CanonicalKey(e.FEN)
		if err != nil {
			return fmt.Errorf("opening %s: %w", e.ID, err)
		}
		if e.Key != "" && e.Key != key {
			return fmt.Errorf("opening %s: FEN %q does not match mainline position %q: %w",
				e.ID, e.FEN, e.Key, errors.ErrInvalidFEN)
		}
		e.Key = key
	}
	if e.Key == "" {
		return fmt.Errorf("opening %s: needs a FEN or a mainline: %w", e.ID, errors.ErrParseFailure)
	}
	if e.FEN == "" {
		e.FEN = e.Key + " 0 1"
	}

	if err := e.Stats.normalise(); err != nil {
		return fmt.Errorf("opening %s: %w", e.ID, err)
	}
	if e.Family == "" {
		e.Family = familyFor(e.Name, e.ECO)
	}
	if e.Acceptance == "" {
		e.Acceptance = AcceptanceStatus(e.Name)
	}
	return nil
}

// normalise converts percentages to fractions, checks ranges and fills the tier.
func (s *Stats) normalise() error {
	fractions := []*float64{&s.WhiteWin, &s.Draw, &s.BlackWin}
	percent := false
	for _, f := range fractions {
		if math.IsNaN(*f) || *f < 0 {
			return fmt.Errorf("invalid outcome fraction %v: %w", *f, errors.ErrParseFailure)
		}
		if *f > 1 {
			percent = true
		}
	}
	if percent {
		for _, f := range fractions {
			*f /= 100
		}
	}
	if sum := s.WhiteWin + s.Draw + s.BlackWin; sum > 1.02 {
		return fmt.Errorf("outcome fractions sum to %.3f: %w", sum, errors.ErrParseFailure)
	}
	if s.SampleSize < 0 {
		return fmt.Errorf("negative sample size %d: %w", s.SampleSize, errors.ErrParseFailure)
	}
	if s.Tier == "" {
		s.Tier = TierFor(s.SampleSize)
	}
	return nil
}
