package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LoanPolicy holds the business constants that govern savings and loan
// behaviour. It is an immutable value handed to services at construction so
// tests can exercise alternate rates without global state.
type LoanPolicy struct {
	InterestRate        decimal.Decimal // Fraction charged at issue and per overdue period (e.g. 0.20)
	DueDay              int             // Day-of-month every due date lands on (e.g. 5)
	InitialDeposit      decimal.Decimal // Savings amount recorded at member registration
	MonthlySubscription decimal.Decimal // Default savings payment amount
	CurrencyCode        string          // Display currency (single-currency system)
}

// DefaultLoanPolicy returns the stock policy: 20% interest, due on the 5th,
// 1000.00 initial deposit, 500.00 monthly subscription.
func DefaultLoanPolicy() LoanPolicy {
	return LoanPolicy{
		InterestRate:        decimal.NewFromFloat(0.20),
		DueDay:              5,
		InitialDeposit:      decimal.NewFromInt(1000),
		MonthlySubscription: decimal.NewFromInt(500),
		CurrencyCode:        "SZL",
	}
}

// Validate checks the policy values are usable. DueDay must stay within
// [1, 28] so every month of every year has the due day.
func (p LoanPolicy) Validate() error {
	if p.InterestRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("interest rate must be positive, got %s", p.InterestRate)
	}
	if p.DueDay < 1 || p.DueDay > 28 {
		return fmt.Errorf("due day must be between 1 and 28, got %d", p.DueDay)
	}
	if p.InitialDeposit.IsNegative() {
		return fmt.Errorf("initial deposit cannot be negative, got %s", p.InitialDeposit)
	}
	if p.MonthlySubscription.IsNegative() {
		return fmt.Errorf("monthly subscription cannot be negative, got %s", p.MonthlySubscription)
	}
	if p.CurrencyCode == "" {
		return fmt.Errorf("currency code is required")
	}
	return nil
}
