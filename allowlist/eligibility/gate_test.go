package eligibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ellavondegurechaff/allowlist/allowlist/eligibility/mock"
	"go.uber.org/mock/gomock"
)

const cooldown = 24 * time.Hour

var submittedAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestGate_CanApply(t *testing.T) {
	type setup struct {
		exempt     bool
		last       time.Time
		hasHistory bool
	}
	tests := []struct {
		name        string
		applicantID string
		setup       setup
		now         time.Time
		wantAllowed bool
		wantReason  Reason
		wantRetryAt time.Time
	}{
		{
			name:        "first application",
			applicantID: "100",
			now:         submittedAt,
			wantAllowed: true,
			wantReason:  ReasonFirstApplication,
		},
		{
			name:        "denied one hour after submitting",
			applicantID: "100",
			setup:       setup{last: submittedAt, hasHistory: true},
			now:         submittedAt.Add(time.Hour),
			wantAllowed: false,
			wantReason:  ReasonCooldownActive,
			wantRetryAt: submittedAt.Add(cooldown),
		},
		{
			name:        "denied one nanosecond before the cooldown ends",
			applicantID: "100",
			setup:       setup{last: submittedAt, hasHistory: true},
			now:         submittedAt.Add(cooldown - time.Nanosecond),
			wantAllowed: false,
			wantReason:  ReasonCooldownActive,
			wantRetryAt: submittedAt.Add(cooldown),
		},
		{
			name:        "allowed at exactly the cooldown",
			applicantID: "100",
			setup:       setup{last: submittedAt, hasHistory: true},
			now:         submittedAt.Add(cooldown),
			wantAllowed: true,
			wantReason:  ReasonCooldownElapsed,
		},
		{
			name:        "allowed a minute after the cooldown",
			applicantID: "100",
			setup:       setup{last: submittedAt, hasHistory: true},
			now:         submittedAt.Add(24*time.Hour + time.Minute),
			wantAllowed: true,
			wantReason:  ReasonCooldownElapsed,
		},
		{
			name:        "exemption overrides an active cooldown",
			applicantID: "100",
			setup:       setup{exempt: true, last: submittedAt, hasHistory: true},
			now:         submittedAt.Add(time.Minute),
			wantAllowed: true,
			wantReason:  ReasonExempt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			exemptions := mock.NewMockExemptionChecker(ctrl)
			history := mock.NewMockHistoryReader(ctrl)

			exemptions.EXPECT().
				IsExempt(gomock.Any(), tt.applicantID).
				Return(tt.setup.exempt, nil)
			if !tt.setup.exempt {
				history.EXPECT().
					GetLastApplicationAt(gomock.Any(), tt.applicantID).
					Return(tt.setup.last, tt.setup.hasHistory, nil)
			}

			g := NewGate(cooldown, nil, exemptions, history)
			got, err := g.CanApply(context.Background(), tt.applicantID, tt.now)
			if err != nil {
				t.Fatalf("Gate.CanApply() error = %v", err)
			}
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Gate.CanApply() allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Gate.CanApply() reason = %v, want %v", got.Reason, tt.wantReason)
			}
			if !got.RetryAt.Equal(tt.wantRetryAt) {
				t.Errorf("Gate.CanApply() retryAt = %v, want %v", got.RetryAt, tt.wantRetryAt)
			}
		})
	}
}

func TestGate_CanApply_BypassSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	exemptions := mock.NewMockExemptionChecker(ctrl)
	history := mock.NewMockHistoryReader(ctrl)

	g := NewGate(cooldown, []string{"42"}, exemptions, history)
	got, err := g.CanApply(context.Background(), "42", submittedAt)
	if err != nil {
		t.Fatalf("Gate.CanApply() error = %v", err)
	}
	if !got.Allowed || got.Reason != ReasonBypass {
		t.Errorf("Gate.CanApply() = %+v, want bypass", got)
	}
}

func TestGate_CanApply_ReadsExemptionEveryCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	exemptions := mock.NewMockExemptionChecker(ctrl)
	history := mock.NewMockHistoryReader(ctrl)

	gomock.InOrder(
		exemptions.EXPECT().IsExempt(gomock.Any(), "100").Return(true, nil),
		exemptions.EXPECT().IsExempt(gomock.Any(), "100").Return(false, nil),
	)
	history.EXPECT().
		GetLastApplicationAt(gomock.Any(), "100").
		Return(submittedAt, true, nil)

	g := NewGate(cooldown, nil, exemptions, history)
	now := submittedAt.Add(time.Hour)

	first, err := g.CanApply(context.Background(), "100", now)
	if err != nil || !first.Allowed {
		t.Fatalf("first attempt = %+v, %v; want allowed", first, err)
	}
	second, err := g.CanApply(context.Background(), "100", now)
	if err != nil || second.Allowed {
		t.Fatalf("second attempt = %+v, %v; want denied after exemption removed", second, err)
	}
}

func TestGate_CanApply_StoreErrors(t *testing.T) {
	boom := errors.New("store unavailable")

	t.Run("exemption lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		exemptions := mock.NewMockExemptionChecker(ctrl)
		history := mock.NewMockHistoryReader(ctrl)
		exemptions.EXPECT().IsExempt(gomock.Any(), "100").Return(false, boom)

		_, err := NewGate(cooldown, nil, exemptions, history).CanApply(context.Background(), "100", submittedAt)
		if !errors.Is(err, boom) {
			t.Errorf("Gate.CanApply() error = %v, want %v", err, boom)
		}
	})

	t.Run("history lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		exemptions := mock.NewMockExemptionChecker(ctrl)
		history := mock.NewMockHistoryReader(ctrl)
		exemptions.EXPECT().IsExempt(gomock.Any(), "100").Return(false, nil)
		history.EXPECT().GetLastApplicationAt(gomock.Any(), "100").Return(time.Time{}, false, boom)

		_, err := NewGate(cooldown, nil, exemptions, history).CanApply(context.Background(), "100", submittedAt)
		if !errors.Is(err, boom) {
			t.Errorf("Gate.CanApply() error = %v, want %v", err, boom)
		}
	})
}

func TestDecision_RetryIn(t *testing.T) {
	d := Decision{Allowed: false, Reason: ReasonCooldownActive, RetryAt: submittedAt.Add(cooldown)}

	if got := d.RetryIn(submittedAt.Add(time.Hour)); got != 23*time.Hour {
		t.Errorf("Decision.RetryIn() = %v, want 23h", got)
	}
	if got := d.RetryIn(submittedAt.Add(48 * time.Hour)); got != 0 {
		t.Errorf("Decision.RetryIn() = %v, want 0", got)
	}
}
