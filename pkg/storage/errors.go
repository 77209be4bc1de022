package storage

import "errors"

// ErrNotFound is returned when a member, ledger entry, or payout does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicatePayout is returned when a payout already exists for the same
// (sponsor, sponsored member, level) triple.
var ErrDuplicatePayout = errors.New("payout already exists for this sponsor, member, and level")

// ErrLoanInFlight is returned when a member with a non-terminal loan attempts a new claim.
var ErrLoanInFlight = errors.New("member already has a loan in flight")

// ErrLoanNotActionable is returned when an approve/reject/repay targets a loan
// that is not in the required state.
var ErrLoanNotActionable = errors.New("loan is not in an actionable state")

// ErrCallbackAlreadyApplied is returned when a settlement finds the entry's
// idempotency flag already set. The prior outcome stands; no side effects reapply.
var ErrCallbackAlreadyApplied = errors.New("callback already applied to this entry")

// ErrDueAmountMoved is returned when a settlement's compare-and-swap on the
// loan's due amount fails because a concurrent repayment settled first.
var ErrDueAmountMoved = errors.New("loan due amount changed since the repayment order was created")
