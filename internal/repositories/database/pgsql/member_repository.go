package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for member and savings data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMemberRepository implements portsrepo.MemberRepositoryFacade
var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberColumns = `member_id, member_number, full_name, date_joined, savings_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.MemberID,
		&m.MemberNumber,
		&m.FullName,
		&m.DateJoined,
		&m.SavingsBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveMember inserts a new member and, when present, the initial deposit
// ledger entry within one database transaction. The member's savings balance
// already includes the deposit; only the ledger row is added here.
func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member, initialDeposit *domain.SavingsTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	memberQuery := `
		INSERT INTO members (member_id, member_number, full_name, date_joined, savings_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, memberQuery,
		member.MemberID,
		member.MemberNumber,
		member.FullName,
		member.DateJoined,
		member.SavingsBalance,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: member number %s", apperrors.ErrDuplicate, member.MemberNumber)
		}
		return apperrors.NewAppError(500, "failed to save member "+member.MemberID, err)
	}

	if initialDeposit != nil {
		if err := insertSavingsTransaction(ctx, tx, *initialDeposit); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// SaveSavingsPayment appends a savings ledger entry and increments the
// member's cached balance in the same transaction, returning the refreshed
// member row.
func (r *PgxMemberRepository) SaveSavingsPayment(ctx context.Context, txn domain.SavingsTransaction) (*domain.Member, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := insertSavingsTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE members
		SET savings_balance = savings_balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE member_id = $4
		RETURNING ` + memberColumns + `;
	`
	member, err := scanMember(tx.QueryRow(ctx, updateQuery, txn.Amount, txn.LastUpdatedAt, txn.LastUpdatedBy, txn.MemberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to update savings balance for member "+txn.MemberID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return member, nil
}

func insertSavingsTransaction(ctx context.Context, tx pgx.Tx, txn domain.SavingsTransaction) error {
	query := `
		INSERT INTO savings_transactions (transaction_id, member_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.MemberID,
		txn.Amount,
		txn.TransactionType,
		txn.Notes,
		txn.TransactionDate,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert savings transaction "+txn.TransactionID, err)
	}
	return nil
}

// FindMemberByID retrieves a member by its ID.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	member, err := scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}
	return member, nil
}

// FindMemberByNumber retrieves a member by its business member number.
func (r *PgxMemberRepository) FindMemberByNumber(ctx context.Context, memberNumber string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_number = $1;`
	member, err := scanMember(r.Pool.QueryRow(ctx, query, memberNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by number %s: %w", memberNumber, err)
	}
	return member, nil
}

// ListMembers retrieves a page of members ordered by joining date, then
// member number for a stable order within a day.
func (r *PgxMemberRepository) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		ORDER BY date_joined, member_number
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

// FindSavingsTransactionsByMemberID retrieves a member's savings ledger,
// oldest first.
func (r *PgxMemberRepository) FindSavingsTransactionsByMemberID(ctx context.Context, memberID string) ([]domain.SavingsTransaction, error) {
	query := `
		SELECT transaction_id, member_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by
		FROM savings_transactions
		WHERE member_id = $1
		ORDER BY transaction_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings transactions for member %s: %w", memberID, err)
	}
	defer rows.Close()

	txns := []domain.SavingsTransaction{}
	for rows.Next() {
		var txn domain.SavingsTransaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.MemberID,
			&txn.Amount,
			&txn.TransactionType,
			&txn.Notes,
			&txn.TransactionDate,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan savings transaction row for member %s: %w", memberID, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings transaction rows for member %s: %w", memberID, err)
	}
	return txns, nil
}
