package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// AllCategories is the quiz category id meaning "any category".
const AllCategories int64 = 0

var (
	ErrCategoryRequired     = errors.New("quiz category required")
	ErrNoQuestionsRemaining = errors.New("no questions remaining")
)

// Store lists questions eligible for a quiz round.
type Store interface {
	ListCandidates(ctx context.Context, f trivia.CandidateFilter) ([]trivia.Question, error)
}

// Category is the quiz_category object sent by clients.
type Category struct {
	ID *int64 `validate:"required"`
}

// Request carries the caller-owned quiz history. The server keeps no session state.
type Request struct {
	PreviousQuestions []int64
	QuizCategory      *Category `validate:"required"`
}

// Selector picks one unseen question at random.
type Selector struct {
	store    Store
	rand     RandSource
	validate *validator.Validate
	metrics  *metrics.Collector
}

type SelectorOptions struct {
	Rand    RandSource
	Metrics *metrics.Collector
}

func NewSelector(store Store, opts SelectorOptions) *Selector {
	src := opts.Rand
	if src == nil {
		src = NewRandSource(0)
	}
	return &Selector{
		store:    store,
		rand:     src,
		validate: validator.New(),
		metrics:  opts.Metrics,
	}
}

// Next returns a uniformly random question not listed in req.PreviousQuestions,
// restricted to req.QuizCategory unless its id is AllCategories.
func (s *Selector) Next(ctx context.Context, req Request) (trivia.Question, error) {
	if err := s.validate.Struct(req); err != nil {
		s.metrics.ObserveQuiz(metrics.OutcomeInvalid)
		return trivia.Question{}, fmt.Errorf("%w: %v", ErrCategoryRequired, err)
	}

	filter := trivia.CandidateFilter{Exclude: req.PreviousQuestions}
	if id := *req.QuizCategory.ID; id != AllCategories {
		filter.CategoryID = &id
	}

	candidates, err := s.store.ListCandidates(ctx, filter)
	if err != nil {
		s.metrics.ObserveQuiz(metrics.OutcomeError)
		return trivia.Question{}, err
	}
	if len(candidates) == 0 {
		s.metrics.ObserveQuiz(metrics.OutcomeExhausted)
		return trivia.Question{}, ErrNoQuestionsRemaining
	}

	s.metrics.ObserveQuiz(metrics.OutcomeServed)
	return candidates[s.rand.IntN(len(candidates))], nil
}
