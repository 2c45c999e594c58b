package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
)

// refoldSubjectsVersion backfills tickets.subject_folded. It runs in Go
// because SQLite's LOWER only folds ASCII.
const refoldSubjectsVersion = 4

func goMigrations() []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(refoldSubjectsVersion, &goose.GoFunc{RunTx: refoldTicketSubjects}, nil),
	}
}

func refoldTicketSubjects(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, "SELECT id, subject FROM tickets")
	if err != nil {
		return fmt.Errorf("failed to read ticket subjects: %w", err)
	}

	type subjectRow struct {
		id      int64
		subject string
	}
	var pending []subjectRow
	for rows.Next() {
		var r subjectRow
		if err := rows.Scan(&r.id, &r.subject); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan ticket subject: %w", err)
		}
		pending = append(pending, r)
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read ticket subjects: %w", err)
	}

	for _, r := range pending {
		if _, err := tx.ExecContext(ctx,
			"UPDATE tickets SET subject_folded = ? WHERE id = ?",
			ticket.FoldSubject(r.subject), r.id,
		); err != nil {
			return fmt.Errorf("failed to fold subject of ticket %d: %w", r.id, err)
		}
	}

	return nil
}
