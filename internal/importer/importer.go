package importer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Source yields raw questions from an external provider.
type Source interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error)
}

// Sink stores a new question and returns its id.
type Sink interface {
	CreateQuestion(ctx context.Context, in trivia.NewQuestion) (int64, error)
}

// Categories lists the categories imported questions may be filed under.
type Categories interface {
	ListCategories(ctx context.Context) ([]trivia.Category, error)
}

// Result summarizes one import batch.
type Result struct {
	Imported int
	Skipped  int
}

// Options narrows what an Importer requests from its Source.
type Options struct {
	// Difficulty is easy, medium or hard; empty accepts any.
	Difficulty string
}

// Importer copies questions from a Source into the catalog. Questions whose
// provider category has no local counterpart are skipped.
type Importer struct {
	source     Source
	sink       Sink
	categories Categories
	logger     zerolog.Logger
	difficulty string
}

func New(source Source, sink Sink, categories Categories, logger zerolog.Logger, opts Options) *Importer {
	return &Importer{
		source:     source,
		sink:       sink,
		categories: categories,
		logger:     logger,
		difficulty: opts.Difficulty,
	}
}

// Import fetches one batch of amount questions and stores the ones that map
// onto a known category.
func (i *Importer) Import(ctx context.Context, amount int) (Result, error) {
	if amount <= 0 {
		return Result{}, nil
	}

	cats, err := i.categories.ListCategories(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]int64, len(cats))
	for _, c := range cats {
		byName[strings.ToLower(c.Type)] = c.ID
	}

	rows, err := i.source.Fetch(ctx, amount, i.difficulty)
	if err != nil {
		return Result{}, fmt.Errorf("fetch questions: %w", err)
	}

	var res Result
	for _, row := range rows {
		in, ok := toNewQuestion(row, byName)
		if !ok {
			res.Skipped++
			i.logger.Debug().Str("category", row.Category).Msg("no local category for imported question")
			continue
		}
		if _, err := i.sink.CreateQuestion(ctx, in); err != nil {
			return res, fmt.Errorf("store imported question: %w", err)
		}
		res.Imported++
	}

	i.logger.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("question import finished")
	return res, nil
}

func toNewQuestion(row OpenTDBQuestion, byName map[string]int64) (trivia.NewQuestion, bool) {
	categoryID, ok := byName[strings.ToLower(categoryRoot(row.Category))]
	if !ok {
		return trivia.NewQuestion{}, false
	}
	question := html.UnescapeString(row.Question)
	answer := html.UnescapeString(row.CorrectAnswer)
	in := trivia.NewQuestion{
		Question: &question,
		Answer:   &answer,
		Category: &categoryID,
	}
	if d, ok := difficultyLevel(row.Difficulty); ok {
		in.Difficulty = &d
	}
	return in, true
}

// categoryRoot reduces provider names such as "Science & Nature" or
// "Entertainment: Film" to their leading word.
func categoryRoot(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == ':' || r == '&' })
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}

func difficultyLevel(s string) (int32, bool) {
	switch strings.ToLower(s) {
	case "easy":
		return 1, true
	case "medium":
		return 2, true
	case "hard":
		return 3, true
	default:
		return 0, false
	}
}
