package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// Withdrawal limits and the flat processing deduction.
const (
	MinWithdrawal = 500.0
	MaxWithdrawal = 1000.0
	DeductionRate = 0.15
)

var (
	ErrBelowMinimum      = errors.New("withdrawal amount below the minimum")
	ErrAboveMaximum      = errors.New("withdrawal amount above the maximum")
	ErrInsufficientFunds = errors.New("insufficient available balance")
	ErrDailyLimit        = errors.New("only one withdrawal request per day is allowed")
)

// Service answers wallet reads and accepts withdrawal requests.
type Service struct {
	Members storage.MemberReader
	Ledger  storage.LedgerStore
}

// NewService creates a Service.
func NewService(members storage.MemberReader, ledger storage.LedgerStore) *Service {
	return &Service{Members: members, Ledger: ledger}
}

// Overview recomputes a member's wallet position from the ledger.
func (s *Service) Overview(ctx context.Context, memberCode string) (*Overview, error) {
	if _, err := s.Members.GetMember(ctx, memberCode); err != nil {
		return nil, err
	}
	entries, err := s.Ledger.ListLedgerEntriesByMember(ctx, memberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for wallet overview: %w", err)
	}
	overview := Compute(entries)
	return &overview, nil
}

// Withdraw validates a withdrawal request against the band, the member's
// derived balance, and the one-per-day rule, then records it as a Pending
// Withdrawal entry. The 15% processing deduction is captured on the entry so
// the admin payout surface pays the net amount.
func (s *Service) Withdraw(ctx context.Context, memberCode string, amount float64) (*models.LedgerEntry, error) {
	if amount < MinWithdrawal {
		return nil, ErrBelowMinimum
	}
	if amount > MaxWithdrawal {
		return nil, ErrAboveMaximum
	}

	if _, err := s.Members.GetMember(ctx, memberCode); err != nil {
		return nil, err
	}

	entries, err := s.Ledger.ListLedgerEntriesByMember(ctx, memberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for withdrawal: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	for _, entry := range entries {
		if entry.Type == models.Withdrawal && entry.CreatedAt.Format("2006-01-02") == today {
			return nil, ErrDailyLimit
		}
	}

	overview := Compute(entries)
	if amount > overview.AvailableBalance {
		return nil, fmt.Errorf("%w: requested %.2f, available %.2f", ErrInsufficientFunds, amount, overview.AvailableBalance)
	}

	deduction := amount * DeductionRate
	entry := &models.LedgerEntry{
		MemberCode:  memberCode,
		Type:        models.Withdrawal,
		Description: "Withdrawal Request",
		Debit:       amount,
		Status:      models.EntryPending,
		Deduction:   deduction,
		NetAmount:   amount - deduction,
	}

	created, err := s.Ledger.CreateLedgerEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record withdrawal request: %w", err)
	}
	return created, nil
}
