package pipeline

import (
	"errors"
	"io"

	pgnerrors "github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/input"
	"github.com/lgbarn/opening-insight-go/internal/parser"
	"github.com/lgbarn/opening-insight-go/internal/processing"
)

// GameSource describes how PGN games are turned into inputs.
type GameSource struct {
	Player        string
	DefaultRating float64
	MaxLine       int
}

// Read turns every PGN game in r into a GameInput for the player. Games that
// cannot be attributed (bad tag line, player absent, no result) are returned
// as unprocessable. Only read failures abort.
func (s GameSource) Read(r io.Reader) ([]processing.GameInput, []Unprocessable, error) {
	pr := parser.NewReaderSize(r, s.MaxLine)
	var inputs []processing.GameInput
	var rejected []Unprocessable
	for {
		game, err := pr.Next()
		if err == io.EOF {
			return inputs, rejected, nil
		}
		if err != nil {
			if errors.Is(err, pgnerrors.ErrParseFailure) {
				rejected = append(rejected, NewUnprocessable("", err))
				continue
			}
			return inputs, rejected, err
		}
		in, err := processing.FromPGN(game, s.Player, s.DefaultRating)
		if err != nil {
			rejected = append(rejected, NewUnprocessable(in.ID, err))
			continue
		}
		inputs = append(inputs, in)
	}
}

// ReadFile opens path (plain, .zst or .bz2) and reads its games.
func (s GameSource) ReadFile(path string) ([]processing.GameInput, []Unprocessable, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return s.Read(f)
}
