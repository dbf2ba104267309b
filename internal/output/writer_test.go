package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/opening-insight-go/internal/aggregate"
	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/config"
	"github.com/lgbarn/opening-insight-go/internal/pipeline"
	"github.com/lgbarn/opening-insight-go/internal/processing"
	"github.com/lgbarn/opening-insight-go/internal/stats"
	"github.com/lgbarn/opening-insight-go/internal/testutil"
)

func ptr(f float64) *float64 { return &f }

func sampleReport() *pipeline.Report {
	ruy := aggregate.OpeningAggregate{
		OpeningID: "ruy-lopez", OpeningName: "Ruy Lopez", Games: 6, Wins: 1, Draws: 1, Losses: 4,
		Score: 0.25, WinRate: 1.0 / 6, BaselineWinRate: ptr(0.38), AvgTheoryDepth: 5,
		AvgPerformance: ptr(1420), Verdict: stats.Inconclusive,
	}
	sicilian := aggregate.OpeningAggregate{
		OpeningID: "sicilian", OpeningName: "Sicilian Defense", Games: 8, Wins: 6, Draws: 1, Losses: 1,
		Score: 0.8125, WinRate: 0.75, AvgTheoryDepth: 2, Z: ptr(2.31), Verdict: stats.SignificantAbove,
	}
	unclassified := aggregate.OpeningAggregate{
		OpeningID: aggregate.Unclassified, OpeningName: "Unclassified", Games: 2, Wins: 1, Losses: 1,
		Score: 0.5, Verdict: stats.Inconclusive,
	}
	return &pipeline.Report{
		RunID:    "run-1",
		Games:    18,
		Analyzed: 16,
		Records: []processing.PerformanceRecord{
			{GameID: "g1", Colour: chess.White, Outcome: stats.Win, OpeningID: "sicilian", TheoryDepth: 2,
				PerformanceRating: ptr(1900)},
			{GameID: "g2", Colour: chess.Black, Outcome: stats.Loss, Transposition: true},
		},
		Unprocessable: []pipeline.Unprocessable{{GameID: "bad", Error: "game bad, ply 3: illegal move"}},
		Aggregates:    []aggregate.OpeningAggregate{ruy, sicilian, unclassified},
		Rankings: aggregate.Rankings{
			Study: []aggregate.OpeningAggregate{ruy, sicilian},
			Keep:  []aggregate.OpeningAggregate{sicilian, ruy},
		},
	}
}

func TestNewWriter(t *testing.T) {
	cfg := config.NewOutputConfig()
	if _, ok := NewWriter(&bytes.Buffer{}, cfg).(*TextWriter); !ok {
		t.Error("default format should give a TextWriter")
	}
	cfg.Format = config.FormatJSON
	if _, ok := NewWriter(&bytes.Buffer{}, cfg).(*JSONWriter); !ok {
		t.Error("json format should give a JSONWriter")
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewOutputConfig()
	testutil.AssertNoError(t, NewTextWriter(&buf, cfg).WriteReport(sampleReport()))
	out := buf.String()

	testutil.AssertContains(t, out, "Run run-1: 18 games, 16 analysed, 1 unprocessable")
	testutil.AssertContains(t, out, "Openings to study (weakest first)")
	testutil.AssertContains(t, out, "38.0%")
	testutil.AssertContains(t, out, "+2.31")
	testutil.AssertContains(t, out, "significant_above")
	testutil.AssertContains(t, out, "Unclassified: 2 games (1/0/1)")
	testutil.AssertContains(t, out, "game bad, ply 3: illegal move")
	testutil.AssertNotContains(t, out, "Games\n")

	study := out[strings.Index(out, "Openings to study"):strings.Index(out, "Openings to keep")]
	if strings.Index(study, "Ruy Lopez") > strings.Index(study, "Sicilian Defense") {
		t.Errorf("study list out of order:\n%s", study)
	}
}

func TestTextWriter_TopAndRecords(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewOutputConfig()
	cfg.Top = 1
	cfg.Records = true
	testutil.AssertNoError(t, NewTextWriter(&buf, cfg).WriteReport(sampleReport()))
	out := buf.String()

	keep := out[strings.Index(out, "Openings to keep"):]
	keep = keep[:strings.Index(keep, "Unclassified")]
	testutil.AssertContains(t, keep, "Sicilian Defense")
	testutil.AssertNotContains(t, keep, "Ruy Lopez")

	testutil.AssertContains(t, out, "\nGames\n")
	testutil.AssertContains(t, out, "1900")
	testutil.AssertContains(t, out, "unclassified")
}

func TestTextWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	rep := &pipeline.Report{RunID: "empty"}
	testutil.AssertNoError(t, NewTextWriter(&buf, config.NewOutputConfig()).WriteReport(rep))
	testutil.AssertEqual(t, strings.Count(buf.String(), "(none)"), 2)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextWriter_WriteError(t *testing.T) {
	err := NewTextWriter(failingWriter{}, config.NewOutputConfig()).WriteReport(sampleReport())
	testutil.AssertError(t, err)
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewOutputConfig()
	cfg.Format = config.FormatJSON
	testutil.AssertNoError(t, NewJSONWriter(&buf, cfg).WriteReport(sampleReport()))

	var decoded map[string]any
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	testutil.AssertEqual(t, decoded["run_id"], "run-1")
	_, hasRecords := decoded["records"]
	testutil.AssertFalse(t, hasRecords, "records are omitted by default")
	study, ok := decoded["study"].([]any)
	testutil.AssertTrue(t, ok, "study list should be a top-level array")
	testutil.AssertEqual(t, len(study), 2)

	buf.Reset()
	cfg.Records = true
	cfg.Indent = false
	rep := sampleReport()
	testutil.AssertNoError(t, NewJSONWriter(&buf, cfg).WriteReport(rep))
	testutil.AssertEqual(t, strings.Count(strings.TrimSpace(buf.String()), "\n"), 0)

	var back pipeline.Report
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &back))
	testutil.AssertEqual(t, back.Records, rep.Records)
	testutil.AssertEqual(t, back.Records[1].Colour, chess.Black)
}
