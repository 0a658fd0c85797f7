package config

import "fmt"

// ScoringConfig tunes the alignment score and next-step advice.
type ScoringConfig struct {
	ErrorPenalty        float64 `yaml:"error_penalty"`         // multiplier applied when any check errors
	ReviewThreshold     float64 `yaml:"review_threshold"`      // success rate below which a full review is advised
	MaxRecommendedSteps int     `yaml:"max_recommended_steps"` // recommendations copied into next steps
}

// RecommendationRule maps a check-name keyword to advice text.
type RecommendationRule struct {
	Keyword string `yaml:"keyword"`
	Text    string `yaml:"text"`
}

// Validate keeps the score inside [0, 100].
func (s ScoringConfig) Validate() error {
	if s.ErrorPenalty < 0 || s.ErrorPenalty > 1 {
		return fmt.Errorf("scoring.error_penalty must be within [0, 1], got %v", s.ErrorPenalty)
	}
	if s.ReviewThreshold < 0 || s.ReviewThreshold > 1 {
		return fmt.Errorf("scoring.review_threshold must be within [0, 1], got %v", s.ReviewThreshold)
	}
	if s.MaxRecommendedSteps < 0 {
		return fmt.Errorf("scoring.max_recommended_steps must not be negative, got %d", s.MaxRecommendedSteps)
	}
	return nil
}
