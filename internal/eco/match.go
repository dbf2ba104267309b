package eco

import (
	"github.com/lgbarn/opening-insight-go/internal/chess"
)

// MatchResult is the outcome of matching one game against the catalog.
type MatchResult struct {
	// Depth is the ply of the deepest position found in the catalog, 0 if none.
	Depth int
	// Entry is nil exactly when Depth is 0.
	Entry *OpeningEntry
	// Transposition is set when the game reached Entry's position by a move
	// order other than the entry's mainline.
	Transposition bool
}

// Matched reports whether any catalog position was reached.
func (m MatchResult) Matched() bool {
	return m.Entry != nil
}

// Match scans the whole sequence and returns the deepest catalog hit. The
// initial position is never matched, so a game that leaves the catalog at
// move one has depth 0.
func Match(seq *chess.PositionSequence, db *Database) MatchResult {
	var result MatchResult
	if seq == nil || db == nil {
		return result
	}

	played := seq.Positions()
	for ply := 1; ply < len(played); ply++ {
		candidates := db.Lookup(played[ply].Key())
		if len(candidates) == 0 {
			continue
		}
		path := played[:ply+1]
		best := pickEntry(candidates, path)
		result = MatchResult{
			Depth:         ply,
			Entry:         best,
			Transposition: isTransposition(best, path),
		}
	}
	return result
}

// pickEntry breaks ties between entries sharing a position: an exact path
// match first, then the larger sample, then the smaller id.
func pickEntry(candidates []*OpeningEntry, path []chess.Position) *OpeningEntry {
	best := candidates[0]
	bestExact := samePath(best.Path, path)
	for _, e := range candidates[1:] {
		exact := samePath(e.Path, path)
		switch {
		case exact != bestExact:
			if exact {
				best, bestExact = e, exact
			}
		case e.Stats.SampleSize != best.Stats.SampleSize:
			if e.Stats.SampleSize > best.Stats.SampleSize {
				best, bestExact = e, exact
			}
		case e.ID < best.ID:
			best, bestExact = e, exact
		}
	}
	return best
}

// isTransposition reports whether the game's path differs from the entry's
// recorded mainline. Entries without a mainline never transpose.
func isTransposition(e *OpeningEntry, path []chess.Position) bool {
	if len(e.Path) == 0 {
		return false
	}
	return !samePath(e.Path, path)
}

func samePath(a, b []chess.Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
