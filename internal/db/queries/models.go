package queries

import "github.com/jackc/pgx/v5/pgtype"

type Category struct {
	ID   int64
	Type string
}

type Question struct {
	ID         int64
	Question   pgtype.Text
	Answer     pgtype.Text
	Category   pgtype.Int8
	Difficulty pgtype.Int4
}
