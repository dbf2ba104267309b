package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	pgnerrors "github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/testutil"
)

const twoGamesPGN = `[Event "Live Chess"]
[Site "Chess.com"]
[White "alice"]
[Black "bob"]
[Result "1-0"]
[WhiteElo "1510"]
[BlackElo "1620"]
[Link "https://www.chess.com/game/live/1"]

1. e4 {[%clk 0:09:58]} 1... e5 {[%clk 0:09:57]
multi-line [bracket] comment} 2. Nf3 Nc6 3. Bb5 1-0

[Event "Live Chess"]
[White "carol"]
[Black "alice"]
[Result "1/2-1/2"]
[Annotator "A \"quoted\" name"]

1. d4 d5 2. c4 e6 1/2-1/2
`

func TestReadAllGames(t *testing.T) {
	games, err := ReadAllGames(strings.NewReader(twoGamesPGN))
	if err != nil {
		t.Fatalf("ReadAllGames() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games; want 2", len(games))
	}

	first := games[0]
	testutil.AssertEqual(t, first.White(), "alice")
	testutil.AssertEqual(t, first.GetTag("WhiteElo"), "1510")
	testutil.AssertEqual(t, first.ID(), "https://www.chess.com/game/live/1")
	testutil.AssertEqual(t, Tokenize(first.MoveText), []string{"e4", "e5", "Nf3", "Nc6", "Bb5"})
	if first.StartLine != 1 {
		t.Errorf("StartLine = %d; want 1", first.StartLine)
	}

	second := games[1]
	testutil.AssertEqual(t, second.Result(), "1/2-1/2")
	testutil.AssertEqual(t, second.GetTag("Annotator"), `A "quoted" name`)
	testutil.AssertEqual(t, Tokenize(second.MoveText), []string{"d4", "d5", "c4", "e6"})
}

func TestReader_ResultFromMovetext(t *testing.T) {
	r := NewReader(strings.NewReader("1. e4 e5 0-1\n1. d4 *\n"))

	g1, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	testutil.AssertEqual(t, g1.Result(), "0-1")

	g2, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	testutil.AssertEqual(t, g2.Result(), "*")

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next() at end = %v; want io.EOF", err)
	}
}

func TestReader_Empty(t *testing.T) {
	games, err := ReadAllGames(strings.NewReader("\n\n% escaped line\n"))
	if err != nil {
		t.Fatalf("ReadAllGames() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("got %d games; want 0", len(games))
	}
}

func TestReader_MalformedTag(t *testing.T) {
	_, err := ReadAllGames(strings.NewReader("[White alice]\n\n1. e4 *\n"))
	if err == nil {
		t.Fatal("expected error for unquoted tag value")
	}
	if !errors.Is(err, pgnerrors.ErrParseFailure) {
		t.Errorf("error = %v; want ErrParseFailure", err)
	}
}
