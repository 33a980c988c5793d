package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalSelectQuery = `
	SELECT journal_id, entity_id, organization_id, journal_date, description, reference,
	       status, original_journal_id, reversing_journal_id,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM journal_entries
`

func scanJournalRow(row pgx.Row) (*domain.JournalEntry, error) {
	var j domain.JournalEntry
	var reference, originalID, reversingID sql.NullString
	err := row.Scan(
		&j.JournalID,
		&j.EntityID,
		&j.OrganizationID,
		&j.Date,
		&j.Description,
		&reference,
		&j.Status,
		&originalID,
		&reversingID,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
	}
	if reference.Valid {
		j.Reference = &reference.String
	}
	if originalID.Valid {
		j.OriginalJournalID = &originalID.String
	}
	if reversingID.Valid {
		j.ReversingJournalID = &reversingID.String
	}
	return &j, nil
}

// SaveJournal persists a journal entry and all of its lines within a single
// database transaction. The ledger is append-only; there is no update path
// for lines anywhere in this repository.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	journalQuery := `
		INSERT INTO journal_entries (
			journal_id, entity_id, organization_id, journal_date, description, reference,
			status, original_journal_id, reversing_journal_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, journalQuery,
		journal.JournalID,
		journal.EntityID,
		journal.OrganizationID,
		journal.Date,
		journal.Description,
		journal.Reference,
		journal.Status,
		journal.OriginalJournalID,
		journal.ReversingJournalID,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (
			line_id, journal_id, account_id, account_code, debit, credit, memo,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.JournalID,
			line.AccountID,
			line.AccountCode,
			line.Debit,
			line.Credit,
			line.Memo,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal entry by its ID, without lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := journalSelectQuery + ` WHERE journal_id = $1;`
	return scanJournalRow(r.Pool.QueryRow(ctx, query, journalID))
}

// ListJournalsByEntity retrieves a page of journal entries using keyset
// pagination over (journal_date, created_at), newest first.
func (r *PgxJournalRepository) ListJournalsByEntity(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := journalSelectQuery + ` WHERE entity_id = $1`
	args := []any{entityID}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		query += ` AND (journal_date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}

	query += ` ORDER BY journal_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit+1) // One extra row decides whether a next page exists.

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for entity "+entityID, err)
	}
	defer rows.Close()

	journals := []domain.JournalEntry{}
	for rows.Next() {
		journal, err := scanJournalRow(rows)
		if err != nil {
			return nil, nil, err
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to read journal rows", err)
	}

	var token *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[len(journals)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return journals, token, nil
}

// UpdateJournalStatusAndLinks updates the status and reversal linkage of a
// journal. This is the only mutation the append-only ledger permits.
func (r *PgxJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, reversing_journal_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, journalID, status, reversingJournalID, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLinesByJournalID retrieves all lines of a journal entry.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, account_code, debit, credit, memo,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var l domain.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.JournalID,
			&l.AccountID,
			&l.AccountCode,
			&l.Debit,
			&l.Credit,
			&l.Memo,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read line rows", err)
	}
	return lines, nil
}
