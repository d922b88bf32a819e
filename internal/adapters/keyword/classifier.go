package keyword

import (
	"context"
	"regexp"

	"go.uber.org/zap"
)

// Classifier is a deterministic rule-based reply classifier. It needs no
// external service, which makes it the default provider and the fallback for
// air-gapped deployments.
type Classifier struct {
	logger *zap.Logger
}

// labelCues maps each reply label to its cue patterns. Every matching
// pattern adds weight to that label's score.
var labelCues = map[string][]*regexp.Regexp{
	"accept": {
		regexp.MustCompile(`(?i)\b(?:works for me|sounds good|see you (?:then|there)|confirmed|i(?:'| a)m in|that works)\b`),
		regexp.MustCompile(`(?i)\b(?:accept|agreed|perfect)\b`),
	},
	"decline": {
		regexp.MustCompile(`(?i)\b(?:can(?:'|no)t make it|won'?t be able|have to pass|decline|not going to work)\b`),
		regexp.MustCompile(`(?i)\b(?:unfortunately|regret)\b`),
	},
	"reschedule": {
		regexp.MustCompile(`(?i)\b(?:reschedule|move (?:the|our) meeting|push (?:it|this) (?:back|to)|another time|different time)\b`),
		regexp.MustCompile(`(?i)\b(?:instead|rather)\b`),
	},
	"delegation": {
		regexp.MustCompile(`(?i)\b(?:on my behalf|in my place|my colleague|will attend instead|delegate|I'?ve asked)\b`),
	},
	"info_request": {
		regexp.MustCompile(`(?i)\b(?:could you (?:share|send)|what time|which room|more details|agenda|clarify)\b`),
		regexp.MustCompile(`\?`),
	},
}

// Cue weights per label. Primary cues are strong signals; secondary cues
// only nudge.
var cueWeights = []float64{0.6, 0.3}

// NewClassifier creates a new keyword classifier
func NewClassifier(logger *zap.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Classify scores the text against each label's cue list. Scores are capped
// at 1.0; labels with no matching cues are omitted.
func (c *Classifier) Classify(_ context.Context, text string) (map[string]float64, error) {
	scores := make(map[string]float64)

	for label, cues := range labelCues {
		var score float64
		for i, cue := range cues {
			if !cue.MatchString(text) {
				continue
			}
			weight := cueWeights[len(cueWeights)-1]
			if i < len(cueWeights) {
				weight = cueWeights[i]
			}
			score += weight
		}
		if score > 1.0 {
			score = 1.0
		}
		if score > 0 {
			scores[label] = score
		}
	}

	c.logger.Debug("Keyword classification complete",
		zap.Int("labels_scored", len(scores)))

	return scores, nil
}
