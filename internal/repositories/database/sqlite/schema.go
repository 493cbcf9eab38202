package sqlite

import (
	"database/sql"
	"fmt"
)

// initSchema creates the tables if they don't already exist. Decimal fields
// are stored as TEXT so no precision is lost; the partial unique index
// enforces at most one active loan per member at the storage layer.
func initSchema(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS members (
		member_id TEXT PRIMARY KEY,
		member_number TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		date_joined DATETIME NOT NULL,
		savings_balance TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at DATETIME NOT NULL,
		last_updated_by TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS savings_transactions (
		transaction_id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		transaction_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at DATETIME NOT NULL,
		last_updated_by TEXT NOT NULL,
		FOREIGN KEY(member_id) REFERENCES members(member_id)
	);
	CREATE INDEX IF NOT EXISTS idx_savings_transactions_member ON savings_transactions(member_id, transaction_date);
	CREATE TABLE IF NOT EXISTS loans (
		loan_id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		principal TEXT NOT NULL,
		interest_rate TEXT NOT NULL,
		interest_amount TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		current_balance TEXT NOT NULL,
		issue_date DATETIME NOT NULL,
		next_due_date DATETIME NOT NULL,
		is_active BOOLEAN NOT NULL,
		version INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at DATETIME NOT NULL,
		last_updated_by TEXT NOT NULL,
		FOREIGN KEY(member_id) REFERENCES members(member_id)
	);
	CREATE UNIQUE INDEX IF NOT EXISTS uq_loans_one_active_per_member ON loans(member_id) WHERE is_active;
	CREATE TABLE IF NOT EXISTS loan_transactions (
		transaction_id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		transaction_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at DATETIME NOT NULL,
		last_updated_by TEXT NOT NULL,
		FOREIGN KEY(loan_id) REFERENCES loans(loan_id)
	);
	CREATE INDEX IF NOT EXISTS idx_loan_transactions_loan ON loan_transactions(loan_id, transaction_date);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not initialize schema: %w", err)
	}
	return nil
}
