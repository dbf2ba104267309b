package eco

import (
	"fmt"
	"io"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/engine"
	"github.com/lgbarn/opening-insight-go/internal/parser"
)

// LoadPGN reads an opening catalog in the classic eco.pgn layout: one game per
// opening with ECO, Opening, Variation and SubVariation tags and the mainline
// as movetext. Optional tags: OpeningId, Family, WhiteWin, Draw, BlackWin,
// Games, Tier and Eval. Games with none of ECO, Opening or OpeningId are
// skipped.
func LoadPGN(r io.Reader) ([]OpeningEntry, error) {
	pr := parser.NewReader(r)
	ids := newIDAllocator()
	var entries []OpeningEntry
	for {
		game, err := pr.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing opening PGN: %w", err)
		}

		entry, ok, err := entryFromGame(game, ids)
		if err != nil {
			return nil, fmt.Errorf("opening PGN line %d: %w", game.StartLine, err)
		}
		if ok {
			entries = append(entries, entry)
		}
	}
}

func entryFromGame(game *chess.Game, ids *idAllocator) (OpeningEntry, bool, error) {
	ecoCode := game.ECO()
	opening := game.GetTag(chess.OpeningTag)
	variation := game.GetTag(chess.VariationTag)
	subVariation := game.GetTag(chess.SubVariationTag)
	explicitID := game.GetTag(chess.OpeningIDTag)

	if ecoCode == "" && opening == "" && explicitID == "" {
		return OpeningEntry{}, false, nil
	}

	e := OpeningEntry{
		Name:      joinName(opening, variation, subVariation),
		ECO:       ecoCode,
		Family:    FamilyKey(game.GetTag(chess.FamilyTag)),
		System:    opening,
		Variation: joinName("", variation, subVariation),
	}
	if explicitID != "" {
		e.ID = ids.explicit(explicitID)
	} else {
		e.ID = ids.derive(ecoCode, e.Name)
	}
	if e.Name == "" {
		e.Name = e.ID
	}

	tokens := mainlineTokens(game.MoveText)
	if fen := game.FEN(); fen != "" {
		// A line from a set-up position has no path from the initial
		// position; keep only the position it reaches.
		seq, err := engine.ReplayGame(game)
		if err != nil {
			return e, false, fmt.Errorf("opening %s: %w", e.ID, err)
		}
		e.FEN = seq.Final().Key() + " 0 1"
	} else {
		e.Mainline = tokens
	}

	var err error
	if e.Stats.WhiteWin, err = parseFraction(game.GetTag("WhiteWin")); err != nil {
		return e, false, err
	}
	if e.Stats.Draw, err = parseFraction(game.GetTag("Draw")); err != nil {
		return e, false, err
	}
	if e.Stats.BlackWin, err = parseFraction(game.GetTag("BlackWin")); err != nil {
		return e, false, err
	}
	if e.Stats.SampleSize, err = parseCount(game.GetTag("Games")); err != nil {
		return e, false, err
	}
	if tier := game.GetTag("Tier"); tier != "" {
		if e.Stats.Tier, err = parseTier(tier); err != nil {
			return e, false, err
		}
	}
	if e.Eval, err = parseEval(game.GetTag("Eval")); err != nil {
		return e, false, err
	}
	return e, true, nil
}
