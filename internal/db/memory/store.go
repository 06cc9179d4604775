package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Store keeps questions and categories in process memory. It backs local runs
// without Postgres (STORE_DRIVER=memory) and package tests.
type Store struct {
	mu         sync.RWMutex
	questions  []trivia.Question // ascending by ID
	categories map[int64]trivia.Category
	nextID     int64
}

// New returns an empty store seeded with the given categories.
func New(categories ...trivia.Category) *Store {
	s := &Store{
		categories: make(map[int64]trivia.Category, len(categories)),
		nextID:     1,
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

// NewSeeded returns a store holding the default categories.
func NewSeeded() *Store {
	return New(trivia.DefaultCategories...)
}

func (s *Store) ListQuestions(_ context.Context) ([]trivia.Question, error) {
	return s.filter(func(trivia.Question) bool { return true }), nil
}

// SearchQuestions matches term as a case-insensitive substring of the question text.
func (s *Store) SearchQuestions(_ context.Context, term string) ([]trivia.Question, error) {
	needle := strings.ToLower(term)
	return s.filter(func(q trivia.Question) bool {
		return q.Question != nil && strings.Contains(strings.ToLower(*q.Question), needle)
	}), nil
}

func (s *Store) ListQuestionsByCategory(_ context.Context, categoryID int64) ([]trivia.Question, error) {
	return s.filter(func(q trivia.Question) bool {
		return q.Category != nil && *q.Category == categoryID
	}), nil
}

func (s *Store) CountQuestions(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.questions)), nil
}

func (s *Store) InsertQuestion(_ context.Context, in trivia.NewQuestion) (trivia.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := clone(trivia.Question{
		ID:         s.nextID,
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	})
	s.nextID++
	s.questions = append(s.questions, q)
	return clone(q), nil
}

func (s *Store) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := slices.BinarySearchFunc(s.questions, id, func(q trivia.Question, id int64) int {
		switch {
		case q.ID < id:
			return -1
		case q.ID > id:
			return 1
		}
		return 0
	})
	if !found {
		return trivia.ErrNotFound
	}
	s.questions = slices.Delete(s.questions, idx, idx+1)
	return nil
}

// ListCandidates returns questions eligible for a quiz round.
func (s *Store) ListCandidates(_ context.Context, f trivia.CandidateFilter) ([]trivia.Question, error) {
	seen := make(map[int64]struct{}, len(f.Exclude))
	for _, id := range f.Exclude {
		seen[id] = struct{}{}
	}
	return s.filter(func(q trivia.Question) bool {
		if _, ok := seen[q.ID]; ok {
			return false
		}
		if f.CategoryID == nil {
			return true
		}
		return q.Category != nil && *q.Category == *f.CategoryID
	}), nil
}

func (s *Store) ListCategories(_ context.Context) ([]trivia.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]trivia.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (trivia.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return trivia.Category{}, trivia.ErrNotFound
	}
	return c, nil
}

func (s *Store) filter(keep func(trivia.Question) bool) []trivia.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]trivia.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, clone(q))
		}
	}
	return out
}

func clone(q trivia.Question) trivia.Question {
	return trivia.Question{
		ID:         q.ID,
		Question:   copyPtr(q.Question),
		Answer:     copyPtr(q.Answer),
		Category:   copyPtr(q.Category),
		Difficulty: copyPtr(q.Difficulty),
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
