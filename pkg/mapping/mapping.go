package mapping

import (
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nexlevel/referral-ledger/pkg/api"
	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/wallet"
)

// ToApiMember converts a domain Member model to an API Member model.
func ToApiMember(m *models.Member) *api.Member {
	return &api.Member{
		MemberCode:      m.MemberCode,
		Name:            m.Name,
		SponsorCode:     m.SponsorCode,
		Status:          string(m.Status),
		PackageValue:    m.PackageValue,
		DirectReferrals: m.DirectReferrals,
		TotalTeam:       m.TotalTeam,
		LoanStatus:      string(m.LoanStatus),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToDomainNewMember converts an API NewMember model to a domain Member model.
// Status and timestamps are filled in by the storage layer.
func ToDomainNewMember(nm *api.NewMember) *models.Member {
	return &models.Member{
		MemberCode:   nm.MemberCode,
		Name:         nm.Name,
		SponsorCode:  nm.SponsorCode,
		PackageValue: nm.PackageValue,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	out := &api.LedgerEntry{
		EntryID:     entryUUID(entry.EntryID),
		MemberCode:  entry.MemberCode,
		Type:        string(entry.Type),
		Description: entry.Description,
		Credit:      entry.Credit,
		Debit:       entry.Debit,
		Status:      string(entry.Status),
		Level:       entry.Level,
		Deduction:   entry.Deduction,
		NetAmount:   entry.NetAmount,
		OrderRef:    entry.OrderRef,
		CreatedAt:   entry.CreatedAt,
	}
	if entry.Type == models.LoanRequest {
		due := entry.DueAmount
		out.DueAmount = &due
	}
	return out
}

// ToApiRepaymentOrder converts an open repayment order entry to its API shape.
func ToApiRepaymentOrder(entry *models.LedgerEntry) *api.RepaymentOrder {
	amount := 0.0
	if entry.Snapshot != nil {
		amount = entry.Snapshot.Requested
	}
	return &api.RepaymentOrder{
		EntryID:          entryUUID(entry.EntryID),
		OrderRef:         entry.OrderRef,
		PaymentSessionID: entry.PaymentSessionID,
		Amount:           amount,
		Status:           string(entry.Status),
	}
}

// ToApiPayout converts a domain Payout model to an API Payout model.
func ToApiPayout(p *models.Payout) *api.Payout {
	return &api.Payout{
		PayoutKey:    p.PayoutKey,
		ReceiverCode: p.ReceiverCode,
		SourceCode:   p.SourceCode,
		Level:        p.Level,
		Amount:       p.Amount,
		Status:       string(p.Status),
		Date:         p.Date,
		CreatedAt:    p.CreatedAt,
	}
}

// ToApiWalletOverview converts a wallet Overview to its API shape.
func ToApiWalletOverview(memberCode string, ov *wallet.Overview) *api.WalletOverview {
	return &api.WalletOverview{
		MemberCode:         memberCode,
		AvailableBalance:   ov.AvailableBalance,
		TotalIncome:        ov.TotalIncome,
		TotalExpenses:      ov.TotalExpenses,
		TotalWithdrawal:    ov.TotalWithdrawal,
		PendingWithdrawals: ov.PendingWithdrawals,
		LevelBenefits:      ov.LevelBenefits,
		DirectBenefits:     ov.DirectBenefits,
		LoanCredited:       ov.LoanCredited,
		LoanRepaid:         ov.LoanRepaid,
		OutstandingLoan:    ov.OutstandingLoan,
		TransactionCount:   ov.TransactionCount,
	}
}

// Entry ids are stored as uuid strings; malformed ids map to the zero UUID
// rather than failing a read path.
func entryUUID(id string) openapi_types.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
