package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	pgnerrors "github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/testutil"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestExpectedScore(t *testing.T) {
	tests := []struct {
		player, opponent float64
		want             float64
	}{
		{1500, 1500, 0.5},
		{1500, 1800, 0.150979},
		{1800, 1500, 0.849021},
		{2000, 1600, 0.909091},
	}
	for _, tt := range tests {
		got, err := ExpectedScore(tt.player, tt.opponent)
		testutil.AssertNoError(t, err)
		if !near(got, tt.want, 1e-6) {
			t.Errorf("ExpectedScore(%v, %v) = %v; want %v", tt.player, tt.opponent, got, tt.want)
		}
	}
}

func TestExpectedScore_Symmetric(t *testing.T) {
	for _, d := range []float64{0, 50, 200, 399, 800} {
		a, _ := ExpectedScore(1500+d, 1500)
		b, _ := ExpectedScore(1500, 1500+d)
		if !near(a+b, 1, 1e-12) {
			t.Errorf("E(+%v) + E(-%v) = %v; want 1", d, d, a+b)
		}
	}
}

func TestPerformanceRating(t *testing.T) {
	tests := []struct {
		opponent float64
		outcome  Outcome
		want     float64
	}{
		{1800, Win, 1800 + 400*math.Log10(1.01/0.01)},
		{1800, Draw, 1800},
		{1800, Loss, 1800 - 400*math.Log10(1.01/0.01)},
	}
	for _, tt := range tests {
		got, err := PerformanceRating(tt.opponent, tt.outcome.Score())
		testutil.AssertNoError(t, err)
		if !near(got, tt.want, 1e-9) {
			t.Errorf("PerformanceRating(%v, %v) = %v; want %v", tt.opponent, tt.outcome, got, tt.want)
		}
	}

	win, _ := PerformanceRating(1800, 1)
	if !near(win, 2601.73, 0.01) {
		t.Errorf("PerformanceRating(1800, win) = %v; want about 2601.73", win)
	}
}

func TestInvalidRatings(t *testing.T) {
	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1}
	for _, r := range bad {
		if _, err := ExpectedScore(r, 1500); !errors.Is(err, pgnerrors.ErrInvalidRating) {
			t.Errorf("ExpectedScore(%v, 1500) error = %v; want ErrInvalidRating", r, err)
		}
		if _, err := ExpectedScore(1500, r); !errors.Is(err, pgnerrors.ErrInvalidRating) {
			t.Errorf("ExpectedScore(1500, %v) error = %v; want ErrInvalidRating", r, err)
		}
		if _, err := PerformanceRating(r, 1); !errors.Is(err, pgnerrors.ErrInvalidRating) {
			t.Errorf("PerformanceRating(%v, 1) error = %v; want ErrInvalidRating", r, err)
		}
	}
	_, err := PerformanceRating(1500, 1.5)
	testutil.AssertError(t, err)
	testutil.AssertNoError(t, ValidateRating(0))
}

func TestOutcomeFor(t *testing.T) {
	tests := []struct {
		result string
		colour chess.Colour
		want   Outcome
		ok     bool
	}{
		{"1-0", chess.White, Win, true},
		{"1-0", chess.Black, Loss, true},
		{"0-1", chess.White, Loss, true},
		{"0-1", chess.Black, Win, true},
		{"1/2-1/2", chess.Black, Draw, true},
		{"½-½", chess.White, Draw, true},
		{"*", chess.White, Loss, false},
		{"", chess.Black, Loss, false},
	}
	for _, tt := range tests {
		got, ok := OutcomeFor(tt.result, tt.colour)
		testutil.AssertEqual(t, ok, tt.ok, "%s as %v", tt.result, tt.colour)
		if ok {
			testutil.AssertEqual(t, got, tt.want, "%s as %v", tt.result, tt.colour)
		}
	}
}

func TestOutcomeText(t *testing.T) {
	for _, o := range []Outcome{Win, Draw, Loss} {
		text, err := o.MarshalText()
		testutil.AssertNoError(t, err)
		var back Outcome
		testutil.AssertNoError(t, back.UnmarshalText(text))
		testutil.AssertEqual(t, back, o)
	}
	var o Outcome
	testutil.AssertError(t, o.UnmarshalText([]byte("resigned")))
}

func TestCriticalValue(t *testing.T) {
	if got := CriticalValue(0.95); !near(got, 1.959964, 1e-6) {
		t.Errorf("CriticalValue(0.95) = %v", got)
	}
	if got := CriticalValue(0.99); !near(got, 2.575829, 1e-6) {
		t.Errorf("CriticalValue(0.99) = %v", got)
	}
}

func TestSignificance(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name   string
		sample Sample
		want   Verdict
	}{
		{"too few games even at 100%", BinomialSample(4, 4, 0.5), Inconclusive},
		{"no baseline", Sample{Games: 50, Wins: 50}, Inconclusive},
		{"approximation invalid", BinomialSample(10, 10, 0.5), Inconclusive},
		{"clearly above", BinomialSample(40, 50, 0.4), SignificantAbove},
		{"clearly below", BinomialSample(5, 50, 0.4), SignificantBelow},
		{"in line with baseline", BinomialSample(21, 50, 0.4), Inconclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Test(tt.sample, th)
			testutil.AssertEqual(t, got.Verdict, tt.want)
		})
	}
}

func TestSignificance_ZScore(t *testing.T) {
	// 40 wins in 50 at p=0.4: (40-20)/sqrt(12).
	got := Test(BinomialSample(40, 50, 0.4), DefaultThresholds())
	testutil.AssertNotNil(t, got.Z)
	if !near(*got.Z, 20/math.Sqrt(12), 1e-9) {
		t.Errorf("z = %v; want %v", *got.Z, 20/math.Sqrt(12))
	}

	got = Test(BinomialSample(2, 3, 0.4), DefaultThresholds())
	testutil.AssertNil(t, got.Z)
}

func TestThresholds_Validate(t *testing.T) {
	testutil.AssertNoError(t, DefaultThresholds().Validate())

	bad := []Thresholds{
		{MinGames: 0, MinVariance: 5, Confidence: 0.95},
		{MinGames: 5, MinVariance: -1, Confidence: 0.95},
		{MinGames: 5, MinVariance: 5, Confidence: 1},
		{MinGames: 5, MinVariance: 5, Confidence: 0},
	}
	for _, th := range bad {
		if err := th.Validate(); !errors.Is(err, pgnerrors.ErrInvalidConfig) {
			t.Errorf("Validate(%+v) = %v; want ErrInvalidConfig", th, err)
		}
	}
}
