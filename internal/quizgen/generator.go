package quizgen

import (
	"context"

	"go.uber.org/zap"
)

// Strategy names reported to callers.
const (
	GeneratedByAI       = "AI"
	GeneratedByFallback = "fallback"
)

// Generator tries the AI strategy when one is configured and falls
// back to the deterministic bank on any failure. Generate never
// fails once a topic is given.
type Generator struct {
	ai       *OpenAIStrategy // may be nil or unconfigured
	fallback Fallback
	log      *zap.Logger
}

func NewGenerator(ai *OpenAIStrategy, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{ai: ai, fallback: NewFallback(), log: log}
}

// Generate returns the question set and the name of the strategy
// that produced it ("AI" or "fallback").
func (g *Generator) Generate(ctx context.Context, topic string) (QuestionSet, string) {
	if g.ai.Configured() {
		set, err := g.ai.Generate(ctx, topic)
		if err == nil {
			g.log.Info("generated quiz with AI", zap.String("topic", topic))
			return set, GeneratedByAI
		}
		g.log.Warn("ai generation failed, using fallback",
			zap.String("topic", topic), zap.Error(err))
	} else {
		g.log.Info("ai provider not configured, using fallback", zap.String("topic", topic))
	}
	set, _ := g.fallback.Generate(ctx, topic)
	return set, GeneratedByFallback
}
