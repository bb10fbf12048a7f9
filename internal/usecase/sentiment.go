package usecase

import (
	"github.com/jonreiter/govader"
	"github.com/prodlens/backend/internal/domain"
)

// Compound-score thresholds. The dead zone between them keeps mildly
// worded text from being classified as polarized.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// PolarityScorer produces a compound polarity score in [-1, 1] for one
// text. The production scorer is lexicon-based.
type PolarityScorer interface {
	Compound(text string) float64
}

// vaderScorer scores text with the VADER lexicon.
type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (v vaderScorer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// SentimentClassifier maps one review to a polarity label via the
// compound-score thresholds.
type SentimentClassifier struct {
	scorer PolarityScorer
}

// NewSentimentClassifier creates a classifier backed by the default
// VADER lexicon.
func NewSentimentClassifier() *SentimentClassifier {
	return NewSentimentClassifierWith(vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()})
}

// NewSentimentClassifierWith creates a classifier with a custom scorer.
func NewSentimentClassifierWith(scorer PolarityScorer) *SentimentClassifier {
	return &SentimentClassifier{scorer: scorer}
}

// Classify returns the polarity label for text. Identical input always
// yields the same label.
func (c *SentimentClassifier) Classify(text string) domain.SentimentLabel {
	compound := c.scorer.Compound(text)

	switch {
	case compound >= positiveThreshold:
		return domain.SentimentPositive
	case compound <= negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
