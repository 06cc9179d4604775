package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListQuestions(ctx context.Context) ([]queries.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) SearchQuestions(ctx context.Context, term string) ([]queries.Question, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) ListQuestionsByCategory(ctx context.Context, category int64) ([]queries.Question, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) CountQuestions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQuestionStore) InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.Question), args.Error(1)
}

func (m *mockQuestionStore) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQuestionStore) ListQuizCandidates(ctx context.Context, arg queries.ListQuizCandidatesParams) ([]queries.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func TestQuestionRepository_ListMapsNulls(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	rows := []queries.Question{
		{ID: 1, Question: text("Q1"), Answer: text("A1"), Category: int8Of(2), Difficulty: int4Of(3)},
		{ID: 2},
	}
	store.On("ListQuestions", mock.Anything).Return(rows, nil)

	got, err := repo.ListQuestions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []trivia.Question{
		{ID: 1, Question: ptr("Q1"), Answer: ptr("A1"), Category: ptr(int64(2)), Difficulty: ptr(int32(3))},
		{ID: 2},
	}, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_Insert(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	params := queries.InsertQuestionParams{
		Question: text("Who?"),
		Category: int8Of(5),
	}
	store.On("InsertQuestion", mock.Anything, params).
		Return(queries.Question{ID: 9, Question: text("Who?"), Category: int8Of(5)}, nil)

	got, err := repo.InsertQuestion(context.Background(), trivia.NewQuestion{
		Question: ptr("Who?"),
		Category: ptr(int64(5)),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Nil(t, got.Answer)
	assert.Nil(t, got.Difficulty)
	store.AssertExpectations(t)
}

func TestQuestionRepository_Delete(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("DeleteQuestion", mock.Anything, int64(4)).Return(int64(4), nil)
	store.On("DeleteQuestion", mock.Anything, int64(5)).Return(int64(0), pgx.ErrNoRows)
	store.On("DeleteQuestion", mock.Anything, int64(6)).Return(int64(0), errors.New("conn reset"))

	assert.NoError(t, repo.DeleteQuestion(context.Background(), 4))
	assert.ErrorIs(t, repo.DeleteQuestion(context.Background(), 5), trivia.ErrNotFound)

	err := repo.DeleteQuestion(context.Background(), 6)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, trivia.ErrNotFound)
	store.AssertExpectations(t)
}

func TestQuestionRepository_ListCandidates(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	all := queries.ListQuizCandidatesParams{Exclude: []int64{1, 2}}
	scoped := queries.ListQuizCandidatesParams{Exclude: []int64{1}, Category: int8Of(3)}
	store.On("ListQuizCandidates", mock.Anything, all).Return([]queries.Question{{ID: 3}}, nil)
	store.On("ListQuizCandidates", mock.Anything, scoped).Return([]queries.Question{}, nil)

	got, err := repo.ListCandidates(context.Background(), trivia.CandidateFilter{Exclude: []int64{1, 2}})
	assert.NoError(t, err)
	assert.Equal(t, []trivia.Question{{ID: 3}}, got)

	got, err = repo.ListCandidates(context.Background(), trivia.CandidateFilter{Exclude: []int64{1}, CategoryID: ptr(int64(3))})
	assert.NoError(t, err)
	assert.Empty(t, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_SearchAndCount(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("SearchQuestions", mock.Anything, "title").Return([]queries.Question{{ID: 5, Question: text("Title")}}, nil)
	store.On("ListQuestionsByCategory", mock.Anything, int64(2)).Return([]queries.Question{}, nil)
	store.On("CountQuestions", mock.Anything).Return(int64(19), nil)

	found, err := repo.SearchQuestions(context.Background(), "title")
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	byCat, err := repo.ListQuestionsByCategory(context.Background(), 2)
	assert.NoError(t, err)
	assert.NotNil(t, byCat)
	assert.Empty(t, byCat)

	count, err := repo.CountQuestions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(19), count)
	store.AssertExpectations(t)
}

func TestInt8FromNil(t *testing.T) {
	assert.Equal(t, pgtype.Int8{}, int8From(nil))
	assert.Equal(t, pgtype.Text{}, textFrom(nil))
	assert.Equal(t, pgtype.Int4{}, int4From(nil))
}
