// Package hashing derives content signatures for PGN games. A signature
// stands in for the game id when the tags carry none, so the same game
// always gets the same id and distinct games do not collide.
package hashing

import (
	"fmt"
	"hash"
	"hash/fnv"
	"io"
	"strings"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/engine"
	"github.com/lgbarn/opening-insight-go/internal/parser"
)

// HashType specifies what, besides the tags, identifies a game.
type HashType int

const (
	// HashMoveSequence hashes the normalised SAN tokens of the mainline.
	HashMoveSequence HashType = iota
	// HashFinalPosition hashes the canonical key of the final position,
	// falling back to the move sequence when the moves do not replay.
	HashFinalPosition
)

// GameSignature identifies a game by content.
type GameSignature struct {
	Hash  uint64
	Plies int
}

// ID renders the signature as a game id.
func (s GameSignature) ID() string {
	return fmt.Sprintf("pgn-%016x", s.Hash)
}

// GameHasher computes signatures with one strategy.
type GameHasher struct {
	hashType HashType
}

// NewGameHasher creates a hasher with the given strategy.
func NewGameHasher(ht HashType) *GameHasher {
	return &GameHasher{hashType: ht}
}

// HashGame signs the Seven Tag Roster, the start FEN and the mainline.
// Move numbers, comments, NAGs, annotation glyphs and variations do not
// affect the result.
func (gh *GameHasher) HashGame(game *chess.Game) GameSignature {
	h := fnv.New64a()
	for _, name := range chess.SevenTagRoster {
		writeField(h, name, strings.TrimSpace(game.GetTag(name)))
	}
	writeField(h, chess.FENTag, strings.TrimSpace(game.FEN()))

	tokens := parser.Tokenize(game.MoveText)
	for i, tok := range tokens {
		if trimmed := strings.TrimRight(tok, "!?"); trimmed != "" {
			tokens[i] = trimmed
		}
	}
	body := strings.Join(tokens, " ")
	if gh.hashType == HashFinalPosition {
		if key, err := finalKey(game.FEN(), tokens); err == nil {
			body = key
		}
	}
	writeField(h, "moves", body)

	return GameSignature{Hash: h.Sum64(), Plies: len(tokens)}
}

// ContentID is the move-sequence signature id of game.
func ContentID(game *chess.Game) string {
	return NewGameHasher(HashMoveSequence).HashGame(game).ID()
}

func finalKey(fen string, tokens []string) (string, error) {
	var (
		seq *chess.PositionSequence
		err error
	)
	if fen == "" {
		seq, err = engine.BuildSequence(tokens)
	} else {
		board, ferr := engine.NewBoardFromFEN(fen)
		if ferr != nil {
			return "", ferr
		}
		seq, err = engine.BuildSequenceFrom(board, tokens)
	}
	if err != nil {
		return "", err
	}
	return seq.Final().Key(), nil
}

// writeField frames name and value so that adjacent fields cannot run into
// each other.
func writeField(h hash.Hash64, name, value string) {
	_, _ = io.WriteString(h, name)
	_, _ = h.Write([]byte{0})
	_, _ = io.WriteString(h, value)
	_, _ = h.Write([]byte{0})
}
