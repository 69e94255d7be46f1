package sentiment

import (
	"strings"
	"unicode"

	"github.com/tbellam/AssistGo/internal/config"
)

const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Analyzer scores English text with a scalar polarity in [-1, 1]. The core
// only thresholds the score; the analyzer itself is a collaborator.
type Analyzer interface {
	Score(text string) float64
}

// Threshold buckets a polarity score at the fixed cutoff.
func Threshold(score float64) string {
	switch {
	case score > config.SentimentThreshold:
		return Positive
	case score < -config.SentimentThreshold:
		return Negative
	default:
		return Neutral
	}
}

// LexiconAnalyzer is the built-in collaborator: polarity is the signed word
// overlap with small positive/negative lexicons, normalised by word count.
type LexiconAnalyzer struct{}

var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "love": true, "like": true,
	"thanks": true, "thank": true, "happy": true, "awesome": true, "perfect": true,
	"wonderful": true, "helpful": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "hate": true, "awful": true, "wrong": true,
	"angry": true, "broken": true, "worst": true, "useless": true, "horrible": true,
	"sad": true, "annoying": true,
}

func (LexiconAnalyzer) Score(text string) float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return 0
	}
	var polarity int
	for _, w := range words {
		if positiveWords[w] {
			polarity++
		}
		if negativeWords[w] {
			polarity--
		}
	}
	return float64(polarity) / float64(len(words))
}
