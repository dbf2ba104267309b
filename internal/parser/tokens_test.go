package parser

import (
	"testing"

	"github.com/lgbarn/opening-insight-go/internal/testutil"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"bare tokens", "e4 e5 Nf3", []string{"e4", "e5", "Nf3"}},
		{"move numbers", "1. e4 e5 2. Nf3 Nc6 3.Bb5", []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}},
		{"black continuation", "12... Qxd4 13.O-O", []string{"Qxd4", "O-O"}},
		{"results dropped", "1. d4 d5 1/2-1/2", []string{"d4", "d5"}},
		{"white win", "1. e4 1-0", []string{"e4"}},
		{"star", "1. e4 *", []string{"e4"}},
		{"castling zeros kept", "1. 0-0 0-1", []string{"0-0"}},
		{
			"clock comments",
			"1. e4 {[%clk 0:09:58.1]} 1... c5 {[%clk 0:09:57]} 2. Nf3 0-1",
			[]string{"e4", "c5", "Nf3"},
		},
		{"variations skipped", "1. e4 e5 (1... c5 2. Nf3 (2. c3)) 2. Nf3", []string{"e4", "e5", "Nf3"}},
		{"nags dropped", "1. e4 $1 e5 $2", []string{"e4", "e5"}},
		{"line comment", "1. e4 ; best by test\n1... e5", []string{"e4", "e5"}},
		{"ep marker", "5. exd6 e.p. Qxd6", []string{"exd6", "Qxd6"}},
		{"unicode ellipsis", "7… Nf6", []string{"Nf6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, Tokenize(tt.text), tt.want)
		})
	}
}

func TestIsResultMarker(t *testing.T) {
	for _, tok := range []string{"1-0", "0-1", "1/2-1/2", "½-½", "*"} {
		if !IsResultMarker(tok) {
			t.Errorf("IsResultMarker(%q) = false; want true", tok)
		}
	}
	for _, tok := range []string{"0-0", "O-O", "e4", "1."} {
		if IsResultMarker(tok) {
			t.Errorf("IsResultMarker(%q) = true; want false", tok)
		}
	}
}
