package eco

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/parser"
)

// Column names accepted for each catalog field, lowercased.
var csvAliases = map[string][]string{
	"id":        {"id", "slug", "alias_slug", "opening_id"},
	"name":      {"name", "opening", "alias_name"},
	"eco":       {"eco", "eco_code"},
	"family":    {"family", "family name", "family_name"},
	"system":    {"system"},
	"variation": {"variation"},
	"fen":       {"fen", "epd", "position"},
	"moves":     {"moves", "mainline", "pgn", "san"},
	"white":     {"white", "white_win", "white_wins", "white%"},
	"draw":      {"draw", "draws", "draw%"},
	"black":     {"black", "black_win", "black_wins", "black%"},
	"games":     {"games", "sample_size", "count", "total"},
	"tier":      {"tier", "popularity"},
	"eval":      {"eval", "evaluation"},
}

// sniffDelimiter prefers ';' or a tab when the header has more of them than
// commas.
func sniffDelimiter(header string) rune {
	commas := strings.Count(header, ",")
	switch {
	case strings.Count(header, ";") > commas:
		return ';'
	case strings.Count(header, "\t") > commas:
		return '\t'
	default:
		return ','
	}
}

// LoadCSV reads an opening catalog in CSV form. Each row needs a name or id
// and either a FEN or a move list. Outcome columns may be fractions or
// percentages.
func LoadCSV(r io.Reader) ([]OpeningEntry, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	header = strings.TrimPrefix(header, "\ufeff")
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	cr.Comma = sniffDelimiter(header)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	names, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := mapColumns(names)
	if _, ok := cols["name"]; !ok {
		if _, ok := cols["id"]; !ok {
			return nil, fmt.Errorf("CSV header has no name or id column: %w", errors.ErrParseFailure)
		}
	}
	_, hasFEN := cols["fen"]
	_, hasMoves := cols["moves"]
	if !hasFEN && !hasMoves {
		return nil, fmt.Errorf("CSV header has no fen or moves column: %w", errors.ErrParseFailure)
	}

	ids := newIDAllocator()
	var entries []OpeningEntry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row := csvRow{cols: cols, record: record}
		if row.blank() {
			continue
		}
		entry, err := row.entry(ids)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func mapColumns(header []string) map[string]int {
	lookup := make(map[string]string)
	for field, aliases := range csvAliases {
		for _, a := range aliases {
			lookup[a] = field
		}
	}
	cols := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(normaliseCell(h))
		key = strings.Join(strings.Fields(key), " ")
		if field, ok := lookup[key]; ok {
			if _, seen := cols[field]; !seen {
				cols[field] = i
			}
		}
	}
	return cols
}

type csvRow struct {
	cols   map[string]int
	record []string
}

func (r csvRow) get(field string) string {
	i, ok := r.cols[field]
	if !ok || i >= len(r.record) {
		return ""
	}
	v := normaliseCell(r.record[i])
	if strings.EqualFold(v, "#N/A") {
		return ""
	}
	return v
}

func (r csvRow) blank() bool {
	for _, v := range r.record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (r csvRow) entry(ids *idAllocator) (OpeningEntry, error) {
	e := OpeningEntry{
		Name:      r.get("name"),
		ECO:       strings.ToUpper(r.get("eco")),
		Family:    FamilyKey(r.get("family")),
		System:    r.get("system"),
		Variation: r.get("variation"),
		FEN:       r.get("fen"),
	}
	if moves := r.get("moves"); moves != "" {
		e.Mainline = mainlineTokens(moves)
	}

	if id := r.get("id"); id != "" {
		e.ID = ids.explicit(id)
	} else {
		e.ID = ids.derive(e.ECO, e.Name)
	}
	if e.Name == "" {
		e.Name = e.ID
	}

	var err error
	if e.Stats.WhiteWin, err = parseFraction(r.get("white")); err != nil {
		return e, err
	}
	if e.Stats.Draw, err = parseFraction(r.get("draw")); err != nil {
		return e, err
	}
	if e.Stats.BlackWin, err = parseFraction(r.get("black")); err != nil {
		return e, err
	}
	if e.Stats.SampleSize, err = parseCount(r.get("games")); err != nil {
		return e, err
	}
	if tier := strings.ToLower(r.get("tier")); tier != "" {
		if e.Stats.Tier, err = parseTier(tier); err != nil {
			return e, err
		}
	}
	if e.Eval, err = parseEval(r.get("eval")); err != nil {
		return e, err
	}
	return e, nil
}

// mainlineTokens splits movetext into SAN tokens, dropping any result marker.
func mainlineTokens(text string) []string {
	var out []string
	for _, tok := range parser.Tokenize(text) {
		if !parser.IsResultMarker(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func parseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case TierMainstream, TierCommon, TierUncommon, TierRare:
		return t, nil
	}
	return "", fmt.Errorf("unknown tier %q: %w", s, errors.ErrParseFailure)
}
