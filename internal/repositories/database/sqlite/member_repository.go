package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLiteMemberRepository implements the member repository on SQLite.
type SQLiteMemberRepository struct {
	db *sql.DB
}

func newSQLiteMemberRepository(db *sql.DB) portsrepo.MemberRepositoryFacade {
	return &SQLiteMemberRepository{db: db}
}

var _ portsrepo.MemberRepositoryFacade = (*SQLiteMemberRepository)(nil)

const memberColumns = `member_id, member_number, full_name, date_joined, savings_balance, created_at, created_by, last_updated_at, last_updated_by`

// scannable covers both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanMember(row scannable) (*domain.Member, error) {
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

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// SaveMember inserts a new member and, when present, the initial deposit
// ledger entry within one database transaction.
func (r *SQLiteMemberRepository) SaveMember(ctx context.Context, member domain.Member, initialDeposit *domain.SavingsTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO members (member_id, member_number, full_name, date_joined, savings_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: member number %s", apperrors.ErrDuplicate, member.MemberNumber)
		}
		return fmt.Errorf("failed to save member %s: %w", member.MemberID, err)
	}

	if initialDeposit != nil {
		if err := insertSavingsTransaction(ctx, tx, *initialDeposit); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveSavingsPayment appends a savings ledger entry and increments the
// member's cached balance in the same transaction, returning the refreshed
// member row.
func (r *SQLiteMemberRepository) SaveSavingsPayment(ctx context.Context, txn domain.SavingsTransaction) (*domain.Member, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSavingsTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	// The balance column is decimal-as-TEXT, so the addition happens in Go.
	var current decimal.Decimal
	err = tx.QueryRowContext(ctx, `SELECT savings_balance FROM members WHERE member_id = ?`, txn.MemberID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read savings balance for member %s: %w", txn.MemberID, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE members SET savings_balance = ?, last_updated_at = ?, last_updated_by = ? WHERE member_id = ?`,
		current.Add(txn.Amount),
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
		txn.MemberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update savings balance for member %s: %w", txn.MemberID, err)
	}

	member, err := scanMember(tx.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE member_id = ?`, txn.MemberID))
	if err != nil {
		return nil, fmt.Errorf("failed to reload member %s: %w", txn.MemberID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit savings payment: %w", err)
	}
	return member, nil
}

func insertSavingsTransaction(ctx context.Context, tx *sql.Tx, txn domain.SavingsTransaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO savings_transactions (transaction_id, member_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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
		return fmt.Errorf("failed to insert savings transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindMemberByID retrieves a member by its ID.
func (r *SQLiteMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := scanMember(r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE member_id = ?`, memberID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}
	return member, nil
}

// FindMemberByNumber retrieves a member by its business member number.
func (r *SQLiteMemberRepository) FindMemberByNumber(ctx context.Context, memberNumber string) (*domain.Member, error) {
	member, err := scanMember(r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE member_number = ?`, memberNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by number %s: %w", memberNumber, err)
	}
	return member, nil
}

// ListMembers retrieves a page of members ordered by joining date, then
// member number for a stable order within a day.
func (r *SQLiteMemberRepository) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY date_joined, member_number LIMIT ? OFFSET ?`,
		limit, offset,
	)
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
func (r *SQLiteMemberRepository) FindSavingsTransactionsByMemberID(ctx context.Context, memberID string) ([]domain.SavingsTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT transaction_id, member_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by
		FROM savings_transactions WHERE member_id = ? ORDER BY transaction_date, created_at`,
		memberID,
	)
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
