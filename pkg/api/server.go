package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists every operation the HTTP surface exposes.
type ServerInterface interface {
	// CreateMember registers a new member under a sponsor.
	CreateMember(w http.ResponseWriter, r *http.Request)
	// GetMemberByCode returns a single member.
	GetMemberByCode(w http.ResponseWriter, r *http.Request, memberCode string)
	// ActivateMember queues an activation for commission fan-out.
	ActivateMember(w http.ResponseWriter, r *http.Request)

	// ClaimLoan opens a loan claim for an eligible member.
	ClaimLoan(w http.ResponseWriter, r *http.Request)
	// ApproveLoan approves a pending loan claim.
	ApproveLoan(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID)
	// RejectLoan rejects a pending loan claim.
	RejectLoan(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID)
	// GetLoanDue returns the remaining due on a loan net of in-flight orders.
	GetLoanDue(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID)
	// CreateRepaymentOrder opens a payment-gateway order against a loan.
	CreateRepaymentOrder(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID)
	// RecordManualRepayment records an offline repayment against a loan.
	RecordManualRepayment(w http.ResponseWriter, r *http.Request, entryId openapi_types.UUID)

	// HandlePaymentWebhook receives gateway payment callbacks.
	HandlePaymentWebhook(w http.ResponseWriter, r *http.Request)

	// GetWalletByMemberCode returns a member's wallet overview.
	GetWalletByMemberCode(w http.ResponseWriter, r *http.Request, memberCode string)
	// CreateWithdrawal requests a withdrawal from a member's wallet.
	CreateWithdrawal(w http.ResponseWriter, r *http.Request, memberCode string)
	// ListTransactions returns a member's ledger entries.
	ListTransactions(w http.ResponseWriter, r *http.Request, memberCode string)
	// ListPayouts returns a member's commission payouts.
	ListPayouts(w http.ResponseWriter, r *http.Request, memberCode string)
}

// HandlerFromMux mounts the API on a chi router.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	r.Post("/members", si.CreateMember)
	r.Get("/members/{memberCode}", withMemberCode(si.GetMemberByCode))
	r.Post("/activations", si.ActivateMember)

	r.Post("/loans", si.ClaimLoan)
	r.Post("/loans/{entryId}/approve", withEntryId(si.ApproveLoan))
	r.Post("/loans/{entryId}/reject", withEntryId(si.RejectLoan))
	r.Get("/loans/{entryId}/due", withEntryId(si.GetLoanDue))
	r.Post("/loans/{entryId}/repayment-orders", withEntryId(si.CreateRepaymentOrder))
	r.Post("/loans/{entryId}/repayments", withEntryId(si.RecordManualRepayment))

	r.Post("/webhooks/payments", si.HandlePaymentWebhook)

	r.Get("/wallets/{memberCode}", withMemberCode(si.GetWalletByMemberCode))
	r.Post("/wallets/{memberCode}/withdrawals", withMemberCode(si.CreateWithdrawal))
	r.Get("/members/{memberCode}/transactions", withMemberCode(si.ListTransactions))
	r.Get("/members/{memberCode}/payouts", withMemberCode(si.ListPayouts))

	return r
}

func withMemberCode(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, chi.URLParam(r, "memberCode"))
	}
}

func withEntryId(fn func(http.ResponseWriter, *http.Request, openapi_types.UUID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "entryId")
		if err != nil {
			http.Error(w, "Invalid entry id", http.StatusBadRequest)
			return
		}
		fn(w, r, id)
	}
}

func uuidParam(r *http.Request, name string) (openapi_types.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
