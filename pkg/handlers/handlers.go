package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nexlevel/referral-ledger/pkg/api"
	"github.com/nexlevel/referral-ledger/pkg/gateway"
	"github.com/nexlevel/referral-ledger/pkg/loan"
	"github.com/nexlevel/referral-ledger/pkg/mapping"
	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/scheduler"
	"github.com/nexlevel/referral-ledger/pkg/storage"
	"github.com/nexlevel/referral-ledger/pkg/wallet"
	"github.com/nexlevel/referral-ledger/pkg/webhook"
)

// Gateway callback headers.
const (
	HeaderWebhookSignature = "x-webhook-signature"
	HeaderWebhookTimestamp = "x-webhook-timestamp"
)

// ApiHandler implements the server interface. It holds the application's
// dependencies: the storage layer plus the domain services built on it.
type ApiHandler struct {
	Store     storage.ApiStore
	Loans     *loan.Manager
	Wallets   *wallet.Service
	Webhooks  *webhook.Processor
	Scheduler scheduler.Scheduler
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(store storage.ApiStore, loans *loan.Manager, wallets *wallet.Service, webhooks *webhook.Processor, sched scheduler.Scheduler) *ApiHandler {
	return &ApiHandler{
		Store:     store,
		Loans:     loans,
		Wallets:   wallets,
		Webhooks:  webhooks,
		Scheduler: sched,
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// CreateMember handles the logic for registering a new member.
func (h *ApiHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var newMember api.NewMember
	if err := json.NewDecoder(r.Body).Decode(&newMember); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newMember.MemberCode == "" || newMember.Name == "" {
		http.Error(w, "member_code and name are required", http.StatusBadRequest)
		return
	}

	domainMember := mapping.ToDomainNewMember(&newMember)
	domainMember.Status = models.MemberPending

	created, err := h.Store.CreateMember(r.Context(), domainMember)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			http.Error(w, "Member with this code already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create member: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiMember(created))
}

// GetMemberByCode handles the logic for retrieving a member.
func (h *ApiHandler) GetMemberByCode(w http.ResponseWriter, r *http.Request, memberCode string) {
	member, err := h.Store.GetMember(r.Context(), memberCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve member: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiMember(member))
}

// ActivateMember marks the member active and queues the commission fan-out
// for asynchronous processing. The endpoint only validates and enqueues;
// the worker resolves the upline and writes the payouts.
func (h *ApiHandler) ActivateMember(w http.ResponseWriter, r *http.Request) {
	var activation api.NewActivation
	if err := json.NewDecoder(r.Body).Decode(&activation); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if activation.MemberCode == "" || activation.SponsorCode == "" {
		http.Error(w, "member_code and sponsor_code are required", http.StatusBadRequest)
		return
	}

	member, err := h.Store.GetMember(r.Context(), activation.MemberCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve member: %v", err), http.StatusInternalServerError)
		}
		return
	}
	if member.SponsorCode != "" && member.SponsorCode != activation.SponsorCode {
		http.Error(w, "Sponsor code does not match the member's registered sponsor", http.StatusUnprocessableEntity)
		return
	}

	if err := h.Store.ActivateMember(r.Context(), activation.MemberCode); err != nil {
		http.Error(w, fmt.Sprintf("Failed to activate member: %v", err), http.StatusInternalServerError)
		return
	}

	event := &scheduler.ActivationEvent{
		MemberCode:  activation.MemberCode,
		SponsorCode: activation.SponsorCode,
		PackageAmt:  activation.PackageAmt,
	}
	if err := h.Scheduler.ScheduleActivation(r.Context(), event); err != nil {
		http.Error(w, fmt.Sprintf("Failed to queue activation: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, api.ActivationAccepted{
		MemberCode: activation.MemberCode,
		Queued:     true,
	})
}

// ClaimLoan handles the logic for opening a loan claim.
func (h *ApiHandler) ClaimLoan(w http.ResponseWriter, r *http.Request) {
	var claim api.NewLoanClaim
	if err := json.NewDecoder(r.Body).Decode(&claim); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	entry, err := h.Loans.Claim(r.Context(), claim.MemberCode)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Member not found", http.StatusNotFound)
		case errors.Is(err, loan.ErrMemberNotActive),
			errors.Is(err, loan.ErrPackageTooSmall),
			errors.Is(err, loan.ErrNotEnoughReferrals):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrLoanInFlight):
			http.Error(w, "Member already has a loan in flight", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to claim loan: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiLedgerEntry(entry))
}

// ApproveLoan handles the logic for approving a pending loan claim.
func (h *ApiHandler) ApproveLoan(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID) {
	var decision api.LoanDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	entry, err := h.Loans.Approve(r.Context(), entryId.String(), decision.DecidedBy)
	if err != nil {
		writeLoanDecisionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiLedgerEntry(entry))
}

// RejectLoan handles the logic for rejecting a pending loan claim.
func (h *ApiHandler) RejectLoan(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID) {
	var decision api.LoanDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	entry, err := h.Loans.Reject(r.Context(), entryId.String(), decision.Note)
	if err != nil {
		writeLoanDecisionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiLedgerEntry(entry))
}

// GetLoanDue reports the remaining due on a loan, net of in-flight repayment
// orders.
func (h *ApiHandler) GetLoanDue(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID) {
	loanEntry, err := h.Store.GetLedgerEntry(r.Context(), entryId.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Loan not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve loan: %v", err), http.StatusInternalServerError)
		}
		return
	}

	due, err := h.Loans.CurrentDue(r.Context(), loanEntry)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute due amount: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, api.LoanDue{LoanEntryID: entryId, DueAmount: due})
}

// CreateRepaymentOrder opens a payment-gateway order against a loan.
func (h *ApiHandler) CreateRepaymentOrder(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID) {
	var req api.NewRepaymentOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	customer := gateway.Customer{
		ID:    entryId.String(),
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
	}
	entry, err := h.Loans.CreateRepaymentOrder(r.Context(), entryId.String(), req.Amount, customer)
	if err != nil {
		writeRepaymentError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiRepaymentOrder(entry))
}

// RecordManualRepayment records an offline repayment against a loan.
func (h *ApiHandler) RecordManualRepayment(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID) {
	var req api.NewManualRepayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	entry, err := h.Loans.RepayOffline(r.Context(), entryId.String(), req.Amount)
	if err != nil {
		writeRepaymentError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiLedgerEntry(entry))
}

// HandlePaymentWebhook receives gateway payment callbacks. The endpoint
// always acknowledges with 200 so the gateway does not retry forever;
// the Outcome body records whether the callback was applied.
func (h *ApiHandler) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	outcome := h.Webhooks.Process(
		r.Context(),
		r.Header.Get(HeaderWebhookSignature),
		r.Header.Get(HeaderWebhookTimestamp),
		body,
	)

	writeJSON(w, http.StatusOK, outcome)
}

// GetWalletByMemberCode returns a member's derived wallet overview.
func (h *ApiHandler) GetWalletByMemberCode(w http.ResponseWriter, r *http.Request, memberCode string) {
	overview, err := h.Wallets.Overview(r.Context(), memberCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to compute wallet overview: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiWalletOverview(memberCode, overview))
}

// CreateWithdrawal requests a withdrawal from a member's wallet.
func (h *ApiHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request, memberCode string) {
	var req api.NewWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	entry, err := h.Wallets.Withdraw(r.Context(), memberCode, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Member not found", http.StatusNotFound)
		case errors.Is(err, wallet.ErrBelowMinimum),
			errors.Is(err, wallet.ErrAboveMaximum),
			errors.Is(err, wallet.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, wallet.ErrDailyLimit):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to create withdrawal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiLedgerEntry(entry))
}

// ListTransactions returns a member's ledger entries.
func (h *ApiHandler) ListTransactions(w http.ResponseWriter, r *http.Request, memberCode string) {
	entries, err := h.Store.ListLedgerEntriesByMember(r.Context(), memberCode)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(entries))
	for i := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entries[i])
	}
	writeJSON(w, http.StatusOK, apiEntries)
}

// ListPayouts returns a member's commission payouts.
func (h *ApiHandler) ListPayouts(w http.ResponseWriter, r *http.Request, memberCode string) {
	payouts, err := h.Store.ListPayoutsByReceiver(r.Context(), memberCode)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve payouts: %v", err), http.StatusInternalServerError)
		return
	}

	apiPayouts := make([]*api.Payout, len(payouts))
	for i := range payouts {
		apiPayouts[i] = mapping.ToApiPayout(&payouts[i])
	}
	writeJSON(w, http.StatusOK, apiPayouts)
}

func writeLoanDecisionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Loan not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrLoanNotActionable):
		http.Error(w, "Loan is not in a pending state", http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Failed to decide loan: %v", err), http.StatusInternalServerError)
	}
}

func writeRepaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Loan not found", http.StatusNotFound)
	case errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrNothingDue),
		errors.Is(err, loan.ErrAmountExceedsDue),
		errors.Is(err, loan.ErrNotRepaymentEligible):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrDueAmountMoved):
		http.Error(w, "Loan due amount changed, retry with a fresh amount", http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Failed to process repayment: %v", err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
