package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const questionColumns = `id, question, answer, category, difficulty`

const listQuestions = `
SELECT ` + questionColumns + `
FROM questions
ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

// strpos keeps the term literal; ILIKE would treat % and _ as wildcards.
const searchQuestions = `
SELECT ` + questionColumns + `
FROM questions
WHERE strpos(lower(question), lower($1::text)) > 0
ORDER BY id
`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, term)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const listQuestionsByCategory = `
SELECT ` + questionColumns + `
FROM questions
WHERE category = $1
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int64) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, category)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const countQuestions = `
SELECT count(*) FROM questions
`

func (q *Queries) CountQuestions(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countQuestions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING ` + questionColumns

type InsertQuestionParams struct {
	Question   pgtype.Text
	Answer     pgtype.Text
	Category   pgtype.Int8
	Difficulty pgtype.Int4
}

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	row := q.db.QueryRow(ctx, insertQuestion, arg.Question, arg.Answer, arg.Category, arg.Difficulty)
	var i Question
	err := row.Scan(&i.ID, &i.Question, &i.Answer, &i.Category, &i.Difficulty)
	return i, err
}

const deleteQuestion = `
DELETE FROM questions
WHERE id = $1
RETURNING id
`

// DeleteQuestion returns pgx.ErrNoRows when nothing was deleted.
func (q *Queries) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	row := q.db.QueryRow(ctx, deleteQuestion, id)
	var deleted int64
	err := row.Scan(&deleted)
	return deleted, err
}

const listQuizCandidates = `
SELECT ` + questionColumns + `
FROM questions
WHERE NOT (id = ANY($1::bigint[]))
  AND ($2::bigint IS NULL OR category = $2)
ORDER BY id
`

type ListQuizCandidatesParams struct {
	Exclude  []int64
	Category pgtype.Int8
}

func (q *Queries) ListQuizCandidates(ctx context.Context, arg ListQuizCandidatesParams) ([]Question, error) {
	exclude := arg.Exclude
	if exclude == nil {
		exclude = []int64{}
	}
	rows, err := q.db.Query(ctx, listQuizCandidates, exclude, arg.Category)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

func collectQuestions(rows pgx.Rows) ([]Question, error) {
	defer rows.Close()
	var items []Question
	for rows.Next() {
		var i Question
		if err := rows.Scan(&i.ID, &i.Question, &i.Answer, &i.Category, &i.Difficulty); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
