package hashing

import (
	"strings"
	"testing"

	"github.com/lgbarn/opening-insight-go/internal/testutil"
	"github.com/lgbarn/opening-insight-go/internal/testutil/gametest"
)

const londonGames = `[Event "Club Championship"]
[Site "London"]
[Date "2024.03.01"]
[Round "1"]
[White "Hero"]
[Black "Alpha"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0

[Event "Club Championship"]
[Site "London"]
[Date "2024.03.01"]
[Round "2"]
[White "Beta"]
[Black "Hero"]
[Result "0-1"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 0-1
`

func TestHashGame_Consistency(t *testing.T) {
	games := gametest.MustParseGames(t, londonGames)
	testutil.AssertEqual(t, len(games), 2)

	for _, ht := range []HashType{HashMoveSequence, HashFinalPosition} {
		gh := NewGameHasher(ht)
		a, b := gh.HashGame(games[0]), gh.HashGame(games[1])
		testutil.AssertEqual(t, gh.HashGame(games[0]), a, "hash type %d not stable", ht)
		testutil.AssertTrue(t, a.Hash != b.Hash, "hash type %d: games from the same venue collide", ht)
		testutil.AssertEqual(t, a.Plies, 6)
	}
}

func TestHashGame_IgnoresFormatting(t *testing.T) {
	plain := gametest.MustParseGame(t, "[White \"Hero\"]\n[Black \"X\"]\n[Result \"1-0\"]\n\n1. e4 e5 2. Nf3 1-0\n")
	noisy := gametest.MustParseGame(t, "[White \"Hero\"]\n[Black \"X\"]\n[Result \"1-0\"]\n\n1.e4 {main line} e5 $1 (1... c5) 2. Nf3! 1-0\n")
	testutil.AssertEqual(t, ContentID(noisy), ContentID(plain))

	otherMoves := gametest.MustParseGame(t, "[White \"Hero\"]\n[Black \"X\"]\n[Result \"1-0\"]\n\n1. d4 d5 2. c4 1-0\n")
	testutil.AssertTrue(t, ContentID(otherMoves) != ContentID(plain))
}

func TestHashGame_FinalPosition(t *testing.T) {
	// Same final position by transposition; the tags match too.
	a := gametest.MustParseGame(t, "[White \"Hero\"]\n[Result \"*\"]\n\n1. Nf3 Nf6 2. c4 *\n")
	b := gametest.MustParseGame(t, "[White \"Hero\"]\n[Result \"*\"]\n\n1. c4 Nf6 2. Nf3 *\n")
	gh := NewGameHasher(HashFinalPosition)
	testutil.AssertEqual(t, gh.HashGame(a).Hash, gh.HashGame(b).Hash)
	testutil.AssertTrue(t, ContentID(a) != ContentID(b), "move sequences differ")

	// Moves that do not replay fall back to the sequence.
	broken := gametest.MustParseGame(t, "[White \"Hero\"]\n[Result \"*\"]\n\n1. e4 e4 *\n")
	seqHash := NewGameHasher(HashMoveSequence).HashGame(broken).Hash
	testutil.AssertEqual(t, gh.HashGame(broken).Hash, seqHash)
}

func TestSignatureID(t *testing.T) {
	id := GameSignature{Hash: 0xab}.ID()
	testutil.AssertEqual(t, id, "pgn-00000000000000ab")
	testutil.AssertTrue(t, strings.HasPrefix(ContentID(gametest.MustParseGame(t, londonGames)), "pgn-"))
}

func BenchmarkContentID(b *testing.B) {
	game := gametest.ParseTestGame(londonGames)
	for i := 0; i < b.N; i++ {
		ContentID(game)
	}
}
