package eco

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/input"
)

// LoadFile reads a CSV or PGN catalog, optionally zstd or bzip2 compressed,
// and builds a Database from it.
func LoadFile(path string) (*Database, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open opening catalog: %w", err)
	}
	defer f.Close()

	var entries []OpeningEntry
	switch ext := input.BaseExt(path); ext {
	case ".csv", ".tsv", ".txt":
		entries, err = LoadCSV(f)
	case ".pgn":
		entries, err = LoadPGN(f)
	default:
		return nil, fmt.Errorf("opening catalog %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading opening catalog %s: %w", path, err)
	}
	return NewDatabase(entries)
}

// Load reads a catalog of the given format ("csv" or "pgn") from r.
func Load(r io.Reader, format string) (*Database, error) {
	var (
		entries []OpeningEntry
		err     error
	)
	switch strings.ToLower(format) {
	case "csv":
		entries, err = LoadCSV(r)
	case "pgn":
		entries, err = LoadPGN(r)
	default:
		return nil, fmt.Errorf("unsupported opening catalog format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return NewDatabase(entries)
}

// idAllocator hands out unique entry ids, suffixing "-2", "-3", ... on clashes
// between derived ids. Explicit ids are taken as given so that real
// duplicates still fail in NewDatabase.
type idAllocator struct {
	used map[string]int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{used: make(map[string]int)}
}

func (a *idAllocator) explicit(id string) string {
	a.used[id]++
	return id
}

func (a *idAllocator) derive(parts ...string) string {
	base := FamilyKey(strings.Join(parts, " "))
	if base == "" {
		base = "opening"
	}
	id := base
	for n := 2; a.used[id] > 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	a.used[id]++
	return id
}

// parseFraction reads an outcome share: "0.45", "45", "45%" or "". Values
// above 1 are treated as percentages later, by Stats.normalise.
func parseFraction(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, nil
	}
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("outcome %q: %w", s, errors.ErrParseFailure)
	}
	return f, nil
}

// parseCount reads a sample size such as "12345", "12,345" or "12_345".
func parseCount(s string) (int, error) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("sample size %q: %w", s, errors.ErrParseFailure)
	}
	return n, nil
}

// parseEval reads an optional engine evaluation in pawns.
func parseEval(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("evaluation %q: %w", s, errors.ErrParseFailure)
	}
	return &f, nil
}

// joinName builds "Opening: Variation, SubVariation" from its parts.
func joinName(opening, variation, subVariation string) string {
	name := opening
	if variation != "" {
		if name != "" {
			name += ": "
		}
		name += variation
	}
	if subVariation != "" {
		if name != "" {
			name += ", "
		}
		name += subVariation
	}
	return name
}
