package quizgen

import (
	"context"
	"errors"

	"github.com/quizcraft/quizcraft-backend/internal/quiz"
)

var (
	// ErrProviderUnavailable: the AI capability is unconfigured or
	// the call itself failed.
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	// ErrMalformedResponse: the provider answered but the payload
	// failed structural validation.
	ErrMalformedResponse = errors.New("malformed ai response")
)

// QuestionSet is a generated quiz body: five questions plus the
// answer key mapping question id (as string) to the correct option.
type QuestionSet struct {
	Questions []quiz.Question
	Answers   map[string]string
}

// Strategy produces a QuestionSet for a topic. Implementations may
// fail with ErrProviderUnavailable or ErrMalformedResponse; the
// fallback strategy never fails.
type Strategy interface {
	Generate(ctx context.Context, topic string) (QuestionSet, error)
}
