package catalog

import (
	"context"
	"errors"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// PageSize is the fixed number of questions per page.
const PageSize = 10

// DefaultCurrentCategory is echoed as current_category when the caller sends none.
const DefaultCurrentCategory = "Science"

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionStore is the question persistence the catalog reads and writes.
// Every list is ordered by id ascending.
type QuestionStore interface {
	ListQuestions(ctx context.Context) ([]trivia.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	InsertQuestion(ctx context.Context, in trivia.NewQuestion) (trivia.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// CategoryStore is the read-only category persistence.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]trivia.Category, error)
	GetCategory(ctx context.Context, id int64) (trivia.Category, error)
}

// CategoryCache stores the id->type mapping (implemented by Redis-backed Cache).
type CategoryCache interface {
	Get(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, categories map[string]string) error
}

// ListParams selects a page of the full catalog. CurrentCategory is echoed back
// untouched; nil selects DefaultCurrentCategory.
type ListParams struct {
	Page            int
	CurrentCategory *string
}

// SearchParams selects a page of questions matching Term.
type SearchParams struct {
	Term            string
	Page            int
	CurrentCategory *string
}

// QuestionPage is one page of a filtered, id-ordered question list.
type QuestionPage struct {
	Questions       []trivia.Question
	TotalQuestions  int64
	CurrentCategory string
	Categories      map[string]string
}
