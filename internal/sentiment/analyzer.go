// Package sentiment assigns a coarse mood label to diary text.
//
// The production app used a hosted model for this; here the default is a
// deterministic lexicon scorer behind a small interface, so a model-backed
// client can be swapped in without touching the facade.
package sentiment

import (
	"context"

	"github.com/guncedev/gunce/internal/diary"
)

// Result pairs a label with its polarity score in [0,1], where 0 is most
// negative and 1 most positive.
type Result struct {
	Label diary.Sentiment
	Score float64
}

// Analyzer scores free text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}
