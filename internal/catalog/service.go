package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Service builds paginated, filtered views over the question and category stores.
type Service struct {
	questions       QuestionStore
	categories      CategoryStore
	cache           CategoryCache
	metrics         *metrics.Collector
	defaultCategory string
}

type ServiceOptions struct {
	// DefaultCurrentCategory overrides the label echoed when callers send none.
	DefaultCurrentCategory string
	Metrics                *metrics.Collector
}

// NewService wires the stores; cache may be nil.
func NewService(questions QuestionStore, categories CategoryStore, cache CategoryCache, opts ServiceOptions) *Service {
	label := opts.DefaultCurrentCategory
	if label == "" {
		label = DefaultCurrentCategory
	}
	return &Service{
		questions:       questions,
		categories:      categories,
		cache:           cache,
		metrics:         opts.Metrics,
		defaultCategory: label,
	}
}

// Categories returns the id->type mapping keyed by the decimal id.
func (s *Service) Categories(ctx context.Context) (map[string]string, error) {
	logger := logging.FromContext(ctx)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("category cache read failed")
		}
		if err == nil && cached != nil {
			s.metrics.ObserveCache(true)
			return cached, nil
		}
		s.metrics.ObserveCache(false)
	}

	rows, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string]string, len(rows))
	for _, c := range rows {
		mapping[strconv.FormatInt(c.ID, 10)] = c.Type
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, mapping); err != nil {
			logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return mapping, nil
}

// ListQuestions pages through every question. An empty page is ErrPageNotFound.
func (s *Service) ListQuestions(ctx context.Context, p ListParams) (QuestionPage, error) {
	all, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	page := Paginate(all, p.Page)
	if len(page) == 0 {
		return QuestionPage{}, fmt.Errorf("list page %d: %w", p.Page, ErrPageNotFound)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       page,
		TotalQuestions:  int64(len(all)),
		CurrentCategory: s.label(p.CurrentCategory),
		Categories:      categories,
	}, nil
}

// SearchQuestions pages through questions containing the term. Zero matches is a
// valid, empty page; TotalQuestions counts matches only.
func (s *Service) SearchQuestions(ctx context.Context, p SearchParams) (QuestionPage, error) {
	matched, err := s.questions.SearchQuestions(ctx, p.Term)
	if err != nil {
		return QuestionPage{}, err
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       Paginate(matched, p.Page),
		TotalQuestions:  int64(len(matched)),
		CurrentCategory: s.label(p.CurrentCategory),
		Categories:      categories,
	}, nil
}

// QuestionsByCategory pages through one category's questions. The category must
// exist and the page must be non-empty. TotalQuestions is the whole catalog's count.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (QuestionPage, error) {
	category, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, trivia.ErrNotFound) {
			return QuestionPage{}, fmt.Errorf("category %d: %w", categoryID, ErrCategoryNotFound)
		}
		return QuestionPage{}, err
	}

	filtered, err := s.questions.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, err
	}
	window := Paginate(filtered, page)
	if len(window) == 0 {
		return QuestionPage{}, fmt.Errorf("category %d page %d: %w", categoryID, page, ErrPageNotFound)
	}

	total, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       window,
		TotalQuestions:  total,
		CurrentCategory: category.Type,
	}, nil
}

// CreateQuestion stores the question as given and returns its new id.
func (s *Service) CreateQuestion(ctx context.Context, in trivia.NewQuestion) (int64, error) {
	q, err := s.questions.InsertQuestion(ctx, in)
	if err != nil {
		return 0, err
	}
	return q.ID, nil
}

// DeleteQuestion removes the question and echoes its id.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, trivia.ErrNotFound) {
			return 0, fmt.Errorf("question %d: %w", id, ErrQuestionNotFound)
		}
		return 0, err
	}
	return id, nil
}

// IsNotFound reports whether err is one of the catalog's not-found outcomes.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrQuestionNotFound)
}

func (s *Service) label(requested *string) string {
	if requested == nil {
		return s.defaultCategory
	}
	return *requested
}
