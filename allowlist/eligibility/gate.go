// Package eligibility decides whether a user may open a new allowlist application.
package eligibility

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination=mock/gate.go -package=mock . ExemptionChecker,HistoryReader

// ExemptionChecker reports persisted cooldown exemptions.
type ExemptionChecker interface {
	IsExempt(ctx context.Context, applicantID string) (bool, error)
}

// HistoryReader returns the last_application_at of an applicant's most recent application.
type HistoryReader interface {
	GetLastApplicationAt(ctx context.Context, applicantID string) (time.Time, bool, error)
}

type Reason string

const (
	ReasonBypass           Reason = "bypass"
	ReasonExempt           Reason = "exempt"
	ReasonFirstApplication Reason = "first_application"
	ReasonCooldownElapsed  Reason = "cooldown_elapsed"
	ReasonCooldownActive   Reason = "cooldown_active"
)

type Decision struct {
	Allowed bool
	Reason  Reason
	// RetryAt is set when the decision is a cooldown denial.
	RetryAt time.Time
}

// RetryIn returns how long the applicant still has to wait, relative to now.
func (d Decision) RetryIn(now time.Time) time.Duration {
	if d.Allowed || d.RetryAt.IsZero() {
		return 0
	}
	if wait := d.RetryAt.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

type Gate struct {
	cooldown   time.Duration
	bypass     map[string]struct{}
	exemptions ExemptionChecker
	history    HistoryReader
}

func NewGate(cooldown time.Duration, bypassIDs []string, exemptions ExemptionChecker, history HistoryReader) *Gate {
	bypass := make(map[string]struct{}, len(bypassIDs))
	for _, id := range bypassIDs {
		bypass[id] = struct{}{}
	}
	return &Gate{
		cooldown:   cooldown,
		bypass:     bypass,
		exemptions: exemptions,
		history:    history,
	}
}

func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}

// CanApply is a point-in-time decision. Exemption and history are read from the store on
// every call because exemptions can change between attempts.
func (g *Gate) CanApply(ctx context.Context, applicantID string, now time.Time) (Decision, error) {
	if _, ok := g.bypass[applicantID]; ok {
		return Decision{Allowed: true, Reason: ReasonBypass}, nil
	}

	exempt, err := g.exemptions.IsExempt(ctx, applicantID)
	if err != nil {
		return Decision{}, fmt.Errorf("check cooldown exemption: %w", err)
	}
	if exempt {
		return Decision{Allowed: true, Reason: ReasonExempt}, nil
	}

	last, ok, err := g.history.GetLastApplicationAt(ctx, applicantID)
	if err != nil {
		return Decision{}, fmt.Errorf("get last application: %w", err)
	}
	if !ok {
		return Decision{Allowed: true, Reason: ReasonFirstApplication}, nil
	}

	if now.Sub(last) >= g.cooldown {
		return Decision{Allowed: true, Reason: ReasonCooldownElapsed}, nil
	}
	return Decision{
		Allowed: false,
		Reason:  ReasonCooldownActive,
		RetryAt: last.Add(g.cooldown),
	}, nil
}
