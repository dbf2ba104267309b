package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// maxLineLength bounds a single PGN line (long single-line movetexts are common).
const maxLineLength = 1 << 20

// Reader reads PGN games one at a time: the tag pairs and the raw mainline
// movetext. It does not resolve moves.
type Reader struct {
	scanner *bufio.Scanner
	line    uint
	pending *string // a tag line that started the next game
}

// NewReader creates a PGN reader.
func NewReader(r io.Reader) *Reader {
	return NewReaderSize(r, maxLineLength)
}

// NewReaderSize creates a PGN reader accepting lines up to maxLine bytes.
func NewReaderSize(r io.Reader, maxLine int) *Reader {
	if maxLine <= 0 {
		maxLine = maxLineLength
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)
	return &Reader{scanner: sc}
}

// LineNumber returns the number of lines consumed so far.
func (r *Reader) LineNumber() uint {
	return r.line
}

// nextLine returns the next input line, honouring a pushed-back line.
func (r *Reader) nextLine() (string, bool) {
	if r.pending != nil {
		l := *r.pending
		r.pending = nil
		return l, true
	}
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return r.scanner.Text(), true
}

// Next returns the next game, or io.EOF when the input is exhausted.
func (r *Reader) Next() (*chess.Game, error) {
	game := chess.NewGame()
	var movetext strings.Builder
	braceDepth := 0
	started := false

	for {
		raw, ok := r.nextLine()
		if !ok {
			break
		}
		line := strings.TrimSpace(raw)

		if braceDepth == 0 {
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			if strings.HasPrefix(line, "[") {
				if movetext.Len() > 0 {
					r.pending = &raw
					break
				}
				if !started {
					game.StartLine = r.line
					started = true
				}
				name, value, err := parseTagLine(line)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", r.line, err)
				}
				game.SetTag(name, value)
				continue
			}
		}

		if !started {
			game.StartLine = r.line
			started = true
		}
		if movetext.Len() > 0 {
			movetext.WriteByte('\n')
		}
		movetext.WriteString(line)
		braceDepth = updateBraceDepth(braceDepth, line)

		if braceDepth == 0 && endsWithResult(line) {
			break
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}
	if !started {
		return nil, io.EOF
	}

	game.MoveText = movetext.String()
	game.EndLine = r.line
	if game.Result() == "" {
		if toks := strings.Fields(game.MoveText); len(toks) > 0 && IsResultMarker(toks[len(toks)-1]) {
			game.SetTag(chess.ResultTag, toks[len(toks)-1])
		}
	}
	return game, nil
}

// ReadAllGames reads every game from r.
func ReadAllGames(r io.Reader) ([]*chess.Game, error) {
	pr := NewReader(r)
	games := make([]*chess.Game, 0, 100)
	for {
		game, err := pr.Next()
		if err == io.EOF {
			return games, nil
		}
		if err != nil {
			return games, err
		}
		games = append(games, game)
	}
}

// parseTagLine parses `[Name "Value"]`, handling \" and \\ escapes.
func parseTagLine(line string) (string, string, error) {
	if !strings.HasSuffix(line, "]") {
		return "", "", fmt.Errorf("unterminated tag %q: %w", line, errors.ErrParseFailure)
	}
	body := strings.TrimSpace(line[1 : len(line)-1])
	sp := strings.IndexAny(body, " \t")
	if sp <= 0 {
		return "", "", fmt.Errorf("missing tag value in %q: %w", line, errors.ErrParseFailure)
	}
	name := body[:sp]
	rest := strings.TrimSpace(body[sp:])
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", "", fmt.Errorf("tag %s: value not quoted: %w", name, errors.ErrParseFailure)
	}

	var value strings.Builder
	inner := rest[1 : len(rest)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		value.WriteByte(inner[i])
	}
	return name, value.String(), nil
}

// updateBraceDepth tracks {comment} nesting across lines, ignoring ; comments.
func updateBraceDepth(depth int, line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				return depth
			}
		}
	}
	return depth
}

// endsWithResult reports whether the last word of a movetext line is a result.
func endsWithResult(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && IsResultMarker(fields[len(fields)-1])
}
