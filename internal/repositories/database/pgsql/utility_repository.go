package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUtilityRepository struct {
	BaseRepository
}

// newPgxUtilityRepository creates a new repository for utility billing data.
func newPgxUtilityRepository(pool *pgxpool.Pool) portsrepo.UtilityRepositoryFacade {
	return &PgxUtilityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UtilityRepositoryFacade = (*PgxUtilityRepository)(nil)

const billSelectQuery = `
	SELECT bill_id, entity_id, property_id, provider, utility_type, status,
	       total_amount, split_method, bill_date, due_date, import_method,
	       posted_journal_id, version,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM utility_bills
`

func scanBillRow(row pgx.Row) (*domain.UtilityBill, error) {
	var b domain.UtilityBill
	var postedJournalID sql.NullString
	err := row.Scan(
		&b.BillID,
		&b.EntityID,
		&b.PropertyID,
		&b.Provider,
		&b.UtilityType,
		&b.Status,
		&b.TotalAmount,
		&b.SplitMethod,
		&b.BillDate,
		&b.DueDate,
		&b.ImportMethod,
		&postedJournalID,
		&b.Version,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan bill row", err)
	}
	if postedJournalID.Valid {
		b.PostedJournalID = &postedJournalID.String
	}
	return &b, nil
}

// FindBillByID retrieves a utility bill by its unique identifier.
func (r *PgxUtilityRepository) FindBillByID(ctx context.Context, billID string) (*domain.UtilityBill, error) {
	query := billSelectQuery + ` WHERE bill_id = $1;`
	return scanBillRow(r.Pool.QueryRow(ctx, query, billID))
}

// ListBillsByEntity retrieves the bills of an entity, newest first.
func (r *PgxUtilityRepository) ListBillsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.UtilityBill, error) {
	query := billSelectQuery + ` WHERE entity_id = $1 ORDER BY bill_date DESC, created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, entityID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bills for entity "+entityID, err)
	}
	defer rows.Close()

	bills := []domain.UtilityBill{}
	for rows.Next() {
		bill, err := scanBillRow(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read bill rows", err)
	}
	return bills, nil
}

// SaveBill persists a new bill.
func (r *PgxUtilityRepository) SaveBill(ctx context.Context, bill domain.UtilityBill) error {
	query := `
		INSERT INTO utility_bills (
			bill_id, entity_id, property_id, provider, utility_type, status,
			total_amount, split_method, bill_date, due_date, import_method,
			posted_journal_id, version,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		bill.BillID,
		bill.EntityID,
		bill.PropertyID,
		bill.Provider,
		bill.UtilityType,
		bill.Status,
		bill.TotalAmount,
		bill.SplitMethod,
		bill.BillDate,
		bill.DueDate,
		bill.ImportMethod,
		bill.PostedJournalID,
		bill.Version,
		bill.CreatedAt,
		bill.CreatedBy,
		bill.LastUpdatedAt,
		bill.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save bill "+bill.BillID, err)
	}
	return nil
}

// UpdateBillDetails updates the mutable fields of a bill, guarded by the
// expected version. A zero-row update against an existing bill means the
// caller read a stale version.
func (r *PgxUtilityRepository) UpdateBillDetails(ctx context.Context, bill domain.UtilityBill, expectedVersion int64) error {
	query := `
		UPDATE utility_bills
		SET provider = $3, due_date = $4, version = version + 1,
		    last_updated_at = $5, last_updated_by = $6
		WHERE bill_id = $1 AND version = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		bill.BillID,
		expectedVersion,
		bill.Provider,
		bill.DueDate,
		bill.LastUpdatedAt,
		bill.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bill "+bill.BillID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, bill.BillID)
	}
	return nil
}

// TransitionBillStatus moves a bill to a new status, guarded by the expected
// version so concurrent transitions serialize. posted_journal_id is only
// written when a value is supplied (the POSTED transition).
func (r *PgxUtilityRepository) TransitionBillStatus(ctx context.Context, billID string, expectedVersion int64, status domain.UtilityBillStatus, postedJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE utility_bills
		SET status = $3, posted_journal_id = COALESCE($4, posted_journal_id),
		    version = version + 1, last_updated_at = $5, last_updated_by = $6
		WHERE bill_id = $1 AND version = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, billID, expectedVersion, status, postedJournalID, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition bill "+billID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, billID)
	}
	return nil
}

// staleOrMissing distinguishes a version conflict from a missing bill after
// a guarded update touched no rows.
func (r *PgxUtilityRepository) staleOrMissing(ctx context.Context, billID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM utility_bills WHERE bill_id = $1);`, billID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check bill existence "+billID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrConflict
}

// FindAllocationsByBillID retrieves all allocation rows for a bill.
func (r *PgxUtilityRepository) FindAllocationsByBillID(ctx context.Context, billID string) ([]domain.UtilityAllocationResult, error) {
	query := `
		SELECT allocation_id, bill_id, lease_id, amount, percentage, basis,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM utility_allocations
		WHERE bill_id = $1
		ORDER BY lease_id;
	`
	rows, err := r.Pool.Query(ctx, query, billID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for bill "+billID, err)
	}
	defer rows.Close()

	allocations := []domain.UtilityAllocationResult{}
	for rows.Next() {
		var a domain.UtilityAllocationResult
		err := rows.Scan(
			&a.AllocationID,
			&a.BillID,
			&a.LeaseID,
			&a.Amount,
			&a.Percentage,
			&a.Basis,
			&a.CreatedAt,
			&a.CreatedBy,
			&a.LastUpdatedAt,
			&a.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row for bill "+billID, err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read allocation rows", err)
	}
	return allocations, nil
}

// ReplaceAllocations atomically swaps the allocation set of a bill.
func (r *PgxUtilityRepository) ReplaceAllocations(ctx context.Context, billID string, allocations []domain.UtilityAllocationResult) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM utility_allocations WHERE bill_id = $1;`, billID); err != nil {
		return apperrors.NewAppError(500, "failed to clear allocations for bill "+billID, err)
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO utility_allocations (
			allocation_id, bill_id, lease_id, amount, percentage, basis,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, a := range allocations {
		batch.Queue(insertQuery,
			a.AllocationID,
			a.BillID,
			a.LeaseID,
			a.Amount,
			a.Percentage,
			a.Basis,
			a.CreatedAt,
			a.CreatedBy,
			a.LastUpdatedAt,
			a.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert allocations for bill "+billID, err)
	}

	return r.Commit(ctx, tx)
}

// FindLatestReading retrieves the most recent reading of a lease utility.
func (r *PgxUtilityRepository) FindLatestReading(ctx context.Context, leaseUtilityID string) (*domain.UtilityReading, error) {
	query := `
		SELECT reading_id, lease_utility_id, reading_value, reading_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM utility_readings
		WHERE lease_utility_id = $1
		ORDER BY reading_date DESC, created_at DESC
		LIMIT 1;
	`
	var reading domain.UtilityReading
	err := r.Pool.QueryRow(ctx, query, leaseUtilityID).Scan(
		&reading.ReadingID,
		&reading.LeaseUtilityID,
		&reading.ReadingValue,
		&reading.ReadingDate,
		&reading.CreatedAt,
		&reading.CreatedBy,
		&reading.LastUpdatedAt,
		&reading.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query latest reading for "+leaseUtilityID, err)
	}
	return &reading, nil
}

// SaveReading persists a validated meter reading.
func (r *PgxUtilityRepository) SaveReading(ctx context.Context, reading domain.UtilityReading) error {
	query := `
		INSERT INTO utility_readings (
			reading_id, lease_utility_id, reading_value, reading_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		reading.ReadingID,
		reading.LeaseUtilityID,
		reading.ReadingValue,
		reading.ReadingDate,
		reading.CreatedAt,
		reading.CreatedBy,
		reading.LastUpdatedAt,
		reading.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save reading "+reading.ReadingID, err)
	}
	return nil
}
