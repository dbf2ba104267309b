package aggregate

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/opening-insight-go/internal/processing"
	"github.com/lgbarn/opening-insight-go/internal/stats"
	"github.com/lgbarn/opening-insight-go/internal/testutil"
)

func ptr(f float64) *float64 { return &f }

func record(id string, outcome stats.Outcome, baseline *float64) processing.PerformanceRecord {
	return processing.PerformanceRecord{
		GameID:            fmt.Sprintf("%s-%d-%p", id, outcome, baseline),
		OpeningID:         id,
		OpeningName:       id,
		Outcome:           outcome,
		TheoryDepth:       4,
		BaselineWin:       baseline,
		PerformanceRating: ptr(1600),
		ExpectedScore:     ptr(0.5),
	}
}

func repeat(n int, r processing.PerformanceRecord) []processing.PerformanceRecord {
	out := make([]processing.PerformanceRecord, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestScore_ThreeWinsOneDrawOneLoss(t *testing.T) {
	records := append(repeat(3, record("ruy", stats.Win, nil)),
		record("ruy", stats.Draw, nil),
		record("ruy", stats.Loss, nil))

	aggs := Build(records).Finalize(stats.DefaultThresholds())
	testutil.AssertEqual(t, len(aggs), 1)
	a := aggs[0]
	testutil.AssertEqual(t, a.Games, 5)
	testutil.AssertEqual(t, [3]int{a.Wins, a.Draws, a.Losses}, [3]int{3, 1, 1})
	testutil.AssertEqual(t, a.Score, 0.7)
	testutil.AssertEqual(t, a.WinRate, 0.6)
	testutil.AssertEqual(t, a.AvgTheoryDepth, 4.0)
	testutil.AssertEqual(t, *a.AvgPerformance, 1600.0)
	testutil.AssertEqual(t, *a.AvgExpectedScore, 0.5)
	testutil.AssertNil(t, a.BaselineWinRate)
	testutil.AssertEqual(t, a.Verdict, stats.Inconclusive)
}

func TestUnclassifiedBucket(t *testing.T) {
	records := []processing.PerformanceRecord{
		{GameID: "a", Outcome: stats.Win},
		{GameID: "b", Outcome: stats.Loss},
		record("ruy", stats.Win, nil),
	}
	set := Build(records)
	testutil.AssertEqual(t, set[Unclassified].Games, 2)
	testutil.AssertEqual(t, set[Unclassified].OpeningName, "Unclassified")

	aggs := set.Finalize(stats.DefaultThresholds())
	testutil.AssertEqual(t, []string{aggs[0].OpeningID, aggs[1].OpeningID}, []string{"ruy", Unclassified})
}

func TestSignificanceFromBaseline(t *testing.T) {
	// 40 wins in 50 against a 0.4 baseline.
	records := append(repeat(40, record("sicilian", stats.Win, ptr(0.4))),
		repeat(10, record("sicilian", stats.Loss, ptr(0.4)))...)
	a := Build(records).Finalize(stats.DefaultThresholds())[0]

	testutil.AssertEqual(t, a.Verdict, stats.SignificantAbove)
	testutil.AssertNotNil(t, a.Z)
	testutil.AssertNotNil(t, a.BaselineWinRate)
	if d := *a.BaselineWinRate - 0.4; d > 1e-12 || d < -1e-12 {
		t.Errorf("BaselineWinRate = %v; want 0.4", *a.BaselineWinRate)
	}

	few := Build(repeat(4, record("sicilian", stats.Win, ptr(0.4)))).Finalize(stats.DefaultThresholds())[0]
	testutil.AssertEqual(t, few.Verdict, stats.Inconclusive)
}

func sampleRecords() []processing.PerformanceRecord {
	var records []processing.PerformanceRecord
	outcomes := []stats.Outcome{stats.Win, stats.Draw, stats.Loss, stats.Win, stats.Win}
	ids := []string{"ruy", "sicilian", "french", ""}
	for i := 0; i < 203; i++ {
		r := record(ids[i%len(ids)], outcomes[i%len(outcomes)], ptr(0.3+float64(i%7)/100))
		r.TheoryDepth = i % 11
		r.Transposition = i%3 == 0
		records = append(records, r)
	}
	return records
}

var approx = cmp.Options{cmpopts.EquateApprox(0, 1e-9)}

func TestMergeMatchesSinglePass(t *testing.T) {
	records := sampleRecords()
	want := Build(records)

	left := Build(records[:77])
	right := Build(records[77:])

	merged := NewSet()
	merged.Merge(right)
	merged.Merge(left)
	if diff := cmp.Diff(want, merged, approx); diff != "" {
		t.Errorf("merged right+left mismatch (-want +got):\n%s", diff)
	}

	merged = NewSet()
	merged.Merge(left)
	merged.Merge(right)
	if diff := cmp.Diff(want, merged, approx); diff != "" {
		t.Errorf("merged left+right mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildParallel(t *testing.T) {
	records := sampleRecords()
	want := Build(records).Finalize(stats.DefaultThresholds())

	for _, shards := range []int{0, 1, 3, 8, 500} {
		t.Run(fmt.Sprintf("shards=%d", shards), func(t *testing.T) {
			set, err := BuildParallel(context.Background(), records, shards)
			testutil.AssertNoError(t, err)
			got := set.Finalize(stats.DefaultThresholds())
			if diff := cmp.Diff(want, got, approx); diff != "" {
				t.Errorf("BuildParallel mismatch (-want +got):\n%s", diff)
			}
		})
	}

	set, err := BuildParallel(context.Background(), nil, 4)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(set), 0)
}

func TestBuildParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildParallel(ctx, sampleRecords(), 2)
	testutil.AssertError(t, err)
}

func TestRank(t *testing.T) {
	aggs := []OpeningAggregate{
		{OpeningID: "a", Games: 10, Score: 0.30},
		{OpeningID: "b", Games: 6, Score: 0.30},
		{OpeningID: "c", Games: 6, Score: 0.30},
		{OpeningID: "d", Games: 4, Score: 0.90},
		{OpeningID: "e", Games: 2, Score: 1.00},
		{OpeningID: "f", Games: 20, Score: 0.55},
		{OpeningID: Unclassified, Games: 50, Score: 0.10},
	}

	r := Rank(aggs, 5, 3)

	ids := func(list []OpeningAggregate) []string {
		var out []string
		for _, a := range list {
			out = append(out, a.OpeningID)
		}
		return out
	}
	testutil.AssertEqual(t, ids(r.Study), []string{"a", "b", "c", "f"})
	testutil.AssertEqual(t, ids(r.Keep), []string{"d", "f", "a", "b", "c"})
}
