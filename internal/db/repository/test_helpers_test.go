package repository

import "github.com/jackc/pgx/v5/pgtype"

func ptr[T any](v T) *T { return &v }

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func int8Of(v int64) pgtype.Int8 {
	return pgtype.Int8{Int64: v, Valid: true}
}

func int4Of(v int32) pgtype.Int4 {
	return pgtype.Int4{Int32: v, Valid: true}
}
