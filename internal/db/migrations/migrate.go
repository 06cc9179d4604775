package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Command names accepted by Run.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Run applies command against db using the embedded migrations.
func Run(ctx context.Context, db *sql.DB, command string) error {
	goose.SetBaseFS(FS)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, db, ".")
	case CommandDown:
		return goose.DownContext(ctx, db, ".")
	case CommandStatus:
		return goose.StatusContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
