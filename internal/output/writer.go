// Package output writes run reports as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lgbarn/opening-insight-go/internal/aggregate"
	"github.com/lgbarn/opening-insight-go/internal/config"
	"github.com/lgbarn/opening-insight-go/internal/pipeline"
)

// ReportWriter is the interface for writing a finished run.
// Different implementations handle different output formats (text, JSON).
type ReportWriter interface {
	WriteReport(rep *pipeline.Report) error
}

// NewWriter returns the writer selected by cfg.Output.Format.
func NewWriter(w io.Writer, cfg *config.OutputConfig) ReportWriter {
	if cfg.Format == config.FormatJSON {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// JSONWriter writes the report as one JSON document.
type JSONWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg}
}

// WriteReport encodes rep. Per-game records are left out unless
// cfg.Records is set.
func (jw *JSONWriter) WriteReport(rep *pipeline.Report) error {
	out := *rep
	if !jw.cfg.Records {
		out.Records = nil
	}
	enc := json.NewEncoder(jw.w)
	if jw.cfg.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(&out)
}

// TextWriter writes a human readable summary.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteReport writes the run summary, both ranked lists, the unclassified
// count and the unprocessable games.
func (tw *TextWriter) WriteReport(rep *pipeline.Report) error {
	ew := &errWriter{w: tw.w}
	ew.printf("Run %s: %d games, %d analysed, %d unprocessable, %d duplicates, %d skipped\n",
		rep.RunID, rep.Games, rep.Analyzed, len(rep.Unprocessable), rep.Duplicates, rep.Skipped)

	tw.writeList(ew, "Openings to study (weakest first)", rep.Study)
	tw.writeList(ew, "Openings to keep (strongest first)", rep.Keep)

	for _, a := range rep.Aggregates {
		if a.OpeningID == aggregate.Unclassified {
			ew.printf("\nUnclassified: %d games (%d/%d/%d)\n", a.Games, a.Wins, a.Draws, a.Losses)
		}
	}

	if len(rep.Unprocessable) > 0 {
		ew.printf("\nUnprocessable games\n")
		for _, u := range rep.Unprocessable {
			ew.printf("  %s\n", u.Error)
		}
	}

	if tw.cfg.Records && len(rep.Records) > 0 {
		ew.printf("\nGames\n")
		t := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
		fmt.Fprintln(t, "  GAME\tCOLOUR\tRESULT\tOPENING\tDEPTH\tTRANSPOSED\tPERFORMANCE")
		for _, r := range rep.Records {
			opening := r.OpeningID
			if opening == "" {
				opening = aggregate.Unclassified
			}
			fmt.Fprintf(t, "  %s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				r.GameID, strings.ToLower(r.Colour.String()), r.Outcome, opening,
				r.TheoryDepth, yesNo(r.Transposition), optional(r.PerformanceRating, "%.0f"))
		}
		t.Flush()
	}
	return ew.err
}

func (tw *TextWriter) writeList(ew *errWriter, title string, list []aggregate.OpeningAggregate) {
	ew.printf("\n%s\n", title)
	if len(list) == 0 {
		ew.printf("  (none)\n")
		return
	}
	if tw.cfg.Top > 0 && len(list) > tw.cfg.Top {
		list = list[:tw.cfg.Top]
	}
	t := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	fmt.Fprintln(t, "  OPENING\tGAMES\tW/D/L\tSCORE\tBASELINE\tDEPTH\tPERF\tZ\tVERDICT")
	for _, a := range list {
		fmt.Fprintf(t, "  %s\t%d\t%d/%d/%d\t%.1f%%\t%s\t%.1f\t%s\t%s\t%s\n",
			a.OpeningName, a.Games, a.Wins, a.Draws, a.Losses, 100*a.Score,
			optional(a.BaselineWinRate, "%.1f%%", 100), a.AvgTheoryDepth,
			optional(a.AvgPerformance, "%.0f"), optional(a.Z, "%+.2f"), a.Verdict)
	}
	t.Flush()
}

// optional formats *v (scaled by an optional factor), or "-" when v is nil.
func optional(v *float64, format string, scale ...float64) string {
	if v == nil {
		return "-"
	}
	f := *v
	for _, s := range scale {
		f *= s
	}
	return fmt.Sprintf(format, f)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// errWriter keeps the first write error so the report code can ignore it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
