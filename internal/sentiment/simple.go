package sentiment

import (
	"context"
	"strings"

	"github.com/guncedev/gunce/internal/diary"
)

// SimpleAnalyzer is a lexicon-based scorer covering the Turkish and English
// vocabulary typical for diary text. Text without any polar words is
// neutral with score 0.5.
type SimpleAnalyzer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var positiveWords = []string{
	// Turkish
	"güzel", "mutlu", "harika", "iyi", "sevinç", "sevindim", "keyifli",
	"huzur", "huzurlu", "başardım", "muhteşem", "mükemmel", "eğlenceli",
	"minnettar", "umut", "umutlu", "seviyorum", "gurur",
	// English
	"good", "great", "happy", "wonderful", "love", "loved", "joy",
	"nice", "amazing", "grateful", "proud", "excited", "peaceful",
}

var negativeWords = []string{
	// Turkish
	"kötü", "üzgün", "üzüldüm", "mutsuz", "korkunç", "yorgun", "yorucu",
	"kaygı", "kaygılı", "berbat", "sinirli", "kızgın", "ağladım",
	"endişe", "endişeli", "stres", "stresli", "yalnız", "bıktım",
	// English
	"bad", "sad", "terrible", "awful", "angry", "tired", "hate",
	"anxious", "stressed", "lonely", "miserable", "worried", "cried",
}

func NewSimpleAnalyzer() *SimpleAnalyzer {
	a := &SimpleAnalyzer{
		positive: make(map[string]struct{}, len(positiveWords)),
		negative: make(map[string]struct{}, len(negativeWords)),
	}
	for _, w := range positiveWords {
		a.positive[w] = struct{}{}
	}
	for _, w := range negativeWords {
		a.negative[w] = struct{}{}
	}
	return a
}

// Analyze counts polar words and maps the positive ratio onto the five
// labels. The score is pos/(pos+neg), or 0.5 when no polar word occurs.
func (a *SimpleAnalyzer) Analyze(_ context.Context, text string) (Result, error) {
	var pos, neg int
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(raw, ".,!?;:\"'()[]…-")
		if _, ok := a.positive[word]; ok {
			pos++
			continue
		}
		if _, ok := a.negative[word]; ok {
			neg++
		}
	}

	if pos+neg == 0 {
		return Result{Label: diary.SentimentNeutral, Score: 0.5}, nil
	}

	score := float64(pos) / float64(pos+neg)
	return Result{Label: bucket(score), Score: score}, nil
}

func bucket(score float64) diary.Sentiment {
	switch {
	case score >= 0.8:
		return diary.SentimentVeryPositive
	case score >= 0.6:
		return diary.SentimentPositive
	case score > 0.4:
		return diary.SentimentNeutral
	case score > 0.2:
		return diary.SentimentNegative
	default:
		return diary.SentimentVeryNegative
	}
}
