package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]queries.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int64) ([]queries.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
	ListQuizCandidates(ctx context.Context, arg queries.ListQuizCandidatesParams) ([]queries.Question, error)
}

// QuestionRepository maps question rows in Postgres to catalog questions.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListQuestions returns every question ordered by id.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return toQuestions(rows), nil
}

// SearchQuestions returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toQuestions(rows), nil
}

func (r *QuestionRepository) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error) {
	rows, err := r.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list questions for category %d: %w", categoryID, err)
	}
	return toQuestions(rows), nil
}

func (r *QuestionRepository) CountQuestions(ctx context.Context) (int64, error) {
	count, err := r.store.CountQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

// InsertQuestion stores the payload as given; absent fields become NULL.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, in trivia.NewQuestion) (trivia.Question, error) {
	row, err := r.store.InsertQuestion(ctx, queries.InsertQuestionParams{
		Question:   textFrom(in.Question),
		Answer:     textFrom(in.Answer),
		Category:   int8From(in.Category),
		Difficulty: int4From(in.Difficulty),
	})
	if err != nil {
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return toQuestion(row), nil
}

// DeleteQuestion removes a question in a single statement and reports
// trivia.ErrNotFound when no row matched.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	if _, err := r.store.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.ErrNotFound
		}
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

// ListCandidates returns quiz candidates honoring the exclusion list and category filter.
func (r *QuestionRepository) ListCandidates(ctx context.Context, f trivia.CandidateFilter) ([]trivia.Question, error) {
	rows, err := r.store.ListQuizCandidates(ctx, queries.ListQuizCandidatesParams{
		Exclude:  f.Exclude,
		Category: int8From(f.CategoryID),
	})
	if err != nil {
		return nil, fmt.Errorf("list quiz candidates: %w", err)
	}
	return toQuestions(rows), nil
}

func toQuestions(rows []queries.Question) []trivia.Question {
	out := make([]trivia.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func toQuestion(row queries.Question) trivia.Question {
	q := trivia.Question{ID: row.ID}
	if row.Question.Valid {
		q.Question = &row.Question.String
	}
	if row.Answer.Valid {
		q.Answer = &row.Answer.String
	}
	if row.Category.Valid {
		q.Category = &row.Category.Int64
	}
	if row.Difficulty.Valid {
		q.Difficulty = &row.Difficulty.Int32
	}
	return q
}

func textFrom(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func int8From(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func int4From(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}
