package worker

import (
	"fmt"

	"github.com/lgbarn/opening-insight-go/internal/eco"
	"github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/processing"
)

// Analyzer returns a ProcessFunc that analyses each game against db. A panic
// while analysing one game is turned into that game's error.
func Analyzer(db *eco.Database) ProcessFunc {
	return func(item WorkItem) (res ProcessResult) {
		res = ProcessResult{Index: item.Index, GameID: item.Input.ID}
		defer func() {
			if r := recover(); r != nil {
				res.Analysis = nil
				res.Error = errors.NewGameError(item.Input.ID, fmt.Errorf("analysis panicked: %v", r))
			}
		}()
		res.Analysis, res.Error = processing.AnalyzeGame(item.Input, db)
		return res
	}
}
