package trivia

import "errors"

// ErrNotFound is returned by stores when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// Question is a catalog entry. Text, category and difficulty are nullable because
// creation is lenient and absent fields are stored as NULL.
type Question struct {
	ID         int64   `json:"id"`
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *int64  `json:"category"`
	Difficulty *int32  `json:"difficulty"`
}

// NewQuestion is the insert payload; the store assigns the ID.
type NewQuestion struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *int64  `json:"category"`
	Difficulty *int32  `json:"difficulty"`
}

// Category groups questions. Question.Category may reference an ID with no Category row.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// CandidateFilter narrows the quiz candidate set. A nil CategoryID means every category.
type CandidateFilter struct {
	Exclude    []int64
	CategoryID *int64
}

// DefaultCategories are seeded into fresh stores.
var DefaultCategories = []Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}
