package scheduler

import (
	"context"
)

// ActivationEvent is the message published when a member pays for a package
// and the commission fan-out needs to run.
type ActivationEvent struct {
	MemberCode  string  `json:"member_code"`
	SponsorCode string  `json:"sponsor_code"`
	PackageAmt  float64 `json:"package_amount"`
}

//go:generate mockery --name Scheduler --output ./mocks --outpkg mocks

// Scheduler defines the interface for a component that enqueues an activation
// event for asynchronous processing.
type Scheduler interface {
	// ScheduleActivation enqueues an activation event.
	ScheduleActivation(ctx context.Context, event *ActivationEvent) error
}
