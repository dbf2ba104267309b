// Package aggregate groups performance records by opening and ranks the
// groups. Partial aggregates hold only sums, so they can be built on shards
// and merged in any order.
package aggregate

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/opening-insight-go/internal/processing"
	"github.com/lgbarn/opening-insight-go/internal/stats"
)

// Unclassified is the bucket for games that reached no catalog position.
const Unclassified = "unclassified"

// Partial is the running sum for one opening.
type Partial struct {
	OpeningID   string `json:"opening_id"`
	OpeningName string `json:"opening_name"`

	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`

	// Games with a catalog baseline, their wins, Σp and Σp(1-p).
	BaselineGames int     `json:"baseline_games"`
	BaselineWins  int     `json:"baseline_wins"`
	ExpectedWins  float64 `json:"expected_wins"`
	Variance      float64 `json:"variance"`

	DepthSum       int `json:"depth_sum"`
	Transpositions int `json:"transpositions"`

	PerformanceSum   float64 `json:"performance_sum"`
	PerformanceCount int     `json:"performance_count"`
	ExpectedSum      float64 `json:"expected_sum"`
	ExpectedCount    int     `json:"expected_count"`
}

func (p *Partial) add(r *processing.PerformanceRecord) {
	p.Games++
	switch r.Outcome {
	case stats.Win:
		p.Wins++
	case stats.Draw:
		p.Draws++
	default:
		p.Losses++
	}
	if r.BaselineWin != nil {
		b := *r.BaselineWin
		p.BaselineGames++
		if r.Outcome == stats.Win {
			p.BaselineWins++
		}
		p.ExpectedWins += b
		p.Variance += b * (1 - b)
	}
	p.DepthSum += r.TheoryDepth
	if r.Transposition {
		p.Transpositions++
	}
	if r.PerformanceRating != nil {
		p.PerformanceSum += *r.PerformanceRating
		p.PerformanceCount++
	}
	if r.ExpectedScore != nil {
		p.ExpectedSum += *r.ExpectedScore
		p.ExpectedCount++
	}
}

func (p *Partial) merge(o *Partial) {
	if p.OpeningName == "" {
		p.OpeningName = o.OpeningName
	}
	p.Games += o.Games
	p.Wins += o.Wins
	p.Draws += o.Draws
	p.Losses += o.Losses
	p.BaselineGames += o.BaselineGames
	p.BaselineWins += o.BaselineWins
	p.ExpectedWins += o.ExpectedWins
	p.Variance += o.Variance
	p.DepthSum += o.DepthSum
	p.Transpositions += o.Transpositions
	p.PerformanceSum += o.PerformanceSum
	p.PerformanceCount += o.PerformanceCount
	p.ExpectedSum += o.ExpectedSum
	p.ExpectedCount += o.ExpectedCount
}

// Set maps opening ids to their partial sums.
type Set map[string]*Partial

// NewSet returns an empty Set.
func NewSet() Set {
	return make(Set)
}

// Add folds one record into the set. Unmatched records go to Unclassified.
func (s Set) Add(r *processing.PerformanceRecord) {
	id, name := r.OpeningID, r.OpeningName
	if id == "" {
		id, name = Unclassified, "Unclassified"
	}
	p, ok := s[id]
	if !ok {
		p = &Partial{OpeningID: id, OpeningName: name}
		s[id] = p
	}
	p.add(r)
}

// Merge folds other into s. other is not modified.
func (s Set) Merge(other Set) {
	for id, o := range other {
		p, ok := s[id]
		if !ok {
			p = &Partial{OpeningID: id}
			s[id] = p
		}
		p.merge(o)
	}
}

// Build aggregates records in one pass.
func Build(records []processing.PerformanceRecord) Set {
	s := NewSet()
	for i := range records {
		s.Add(&records[i])
	}
	return s
}

// BuildParallel splits records into shards, aggregates each shard in its own
// goroutine and merges the partial sets.
func BuildParallel(ctx context.Context, records []processing.PerformanceRecord, shards int) (Set, error) {
	if shards < 1 {
		shards = 1
	}
	if shards > len(records) {
		shards = max(len(records), 1)
	}

	parts := make([]Set, shards)
	size := (len(records) + shards - 1) / shards
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < shards; i++ {
		i := i
		lo := min(i*size, len(records))
		hi := min(lo+size, len(records))
		g.Go(func() error {
			s := NewSet()
			for j := lo; j < hi; j++ {
				if j%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				s.Add(&records[j])
			}
			parts[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := NewSet()
	for _, p := range parts {
		total.Merge(p)
	}
	return total, nil
}

// OpeningAggregate is the finished summary for one opening.
type OpeningAggregate struct {
	OpeningID        string        `json:"opening_id"`
	OpeningName      string        `json:"opening_name"`
	Games            int           `json:"games"`
	Wins             int           `json:"wins"`
	Draws            int           `json:"draws"`
	Losses           int           `json:"losses"`
	Score            float64       `json:"score"`
	WinRate          float64       `json:"win_rate"`
	BaselineWinRate  *float64      `json:"baseline_win_rate,omitempty"`
	AvgTheoryDepth   float64       `json:"avg_theory_depth"`
	Transpositions   int           `json:"transpositions"`
	AvgPerformance   *float64      `json:"avg_performance,omitempty"`
	AvgExpectedScore *float64      `json:"avg_expected_score,omitempty"`
	Z                *float64      `json:"z,omitempty"`
	Verdict          stats.Verdict `json:"verdict"`
}

// Finalize derives the summary from a partial.
func (p *Partial) Finalize(th stats.Thresholds) OpeningAggregate {
	a := OpeningAggregate{
		OpeningID:      p.OpeningID,
		OpeningName:    p.OpeningName,
		Games:          p.Games,
		Wins:           p.Wins,
		Draws:          p.Draws,
		Losses:         p.Losses,
		Transpositions: p.Transpositions,
		Verdict:        stats.Inconclusive,
	}
	if p.Games > 0 {
		n := float64(p.Games)
		a.Score = (float64(p.Wins) + 0.5*float64(p.Draws)) / n
		a.WinRate = float64(p.Wins) / n
		a.AvgTheoryDepth = float64(p.DepthSum) / n
	}
	if p.BaselineGames > 0 {
		rate := p.ExpectedWins / float64(p.BaselineGames)
		a.BaselineWinRate = &rate
	}
	if p.PerformanceCount > 0 {
		avg := p.PerformanceSum / float64(p.PerformanceCount)
		a.AvgPerformance = &avg
	}
	if p.ExpectedCount > 0 {
		avg := p.ExpectedSum / float64(p.ExpectedCount)
		a.AvgExpectedScore = &avg
	}

	res := stats.Test(stats.Sample{
		Games:        p.BaselineGames,
		Wins:         p.BaselineWins,
		ExpectedWins: p.ExpectedWins,
		Variance:     p.Variance,
		HasBaseline:  p.BaselineGames > 0,
	}, th)
	a.Z, a.Verdict = res.Z, res.Verdict
	return a
}

// Finalize summarises every opening, ordered by id.
func (s Set) Finalize(th stats.Thresholds) []OpeningAggregate {
	out := make([]OpeningAggregate, 0, len(s))
	for _, p := range s {
		out = append(out, p.Finalize(th))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpeningID < out[j].OpeningID })
	return out
}
