// Package lifecycle owns the application status transitions and the side effects that
// run once per transition.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/repositories"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
)

//go:generate mockgen -destination=mock/machine.go -package=mock . Store,RoleGranter,Notifier,Auditor

var (
	ErrNotFoundOrDecided = errors.New("application not found or already decided")
	ErrEmptyReason       = errors.New("a reason is required to decline an application")
	ErrInvalidAge        = errors.New("age must be a whole number")
	ErrMissingField      = errors.New("required field is empty")
)

type Store interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	Decide(ctx context.Context, id int64, status models.ApplicationStatus, reviewerID, reason string) error
}

type RoleGranter interface {
	GrantAllowlistRole(ctx context.Context, guildID, applicantID string) error
}

type Notifier interface {
	NotifyApproved(ctx context.Context, app *models.Application, roleGranted bool) error
	NotifyDeclined(ctx context.Context, app *models.Application) error
}

// Auditor writes entries to the staff audit channel.
type Auditor interface {
	Approved(ctx context.Context, app *models.Application, reviewer Reviewer, role StepResult) error
	Declined(ctx context.Context, app *models.Application, reviewer Reviewer) error
	AutoDeclined(ctx context.Context, form Form, age int) error
	DeliveryFailed(ctx context.Context, app *models.Application, cause error) error
}

type Reviewer struct {
	ID      string
	Name    string
	GuildID string
}

// Form is the raw modal submission. Age is kept as typed so validation can reject it.
type Form struct {
	ApplicantID    string
	ApplicantName  string
	SteamHex       string
	RealName       string
	CharacterName  string
	Age            string
	CharacterStory string
}

type Submission struct {
	// Application is nil when the form was declined automatically.
	Application  *models.Application
	AutoDeclined bool
	Age          int
}

type Machine struct {
	store      Store
	roles      RoleGranter
	notifier   Notifier
	audit      Auditor
	minimumAge int
}

func NewMachine(store Store, roles RoleGranter, notifier Notifier, audit Auditor, minimumAge int) *Machine {
	return &Machine{
		store:      store,
		roles:      roles,
		notifier:   notifier,
		audit:      audit,
		minimumAge: minimumAge,
	}
}

func (m *Machine) MinimumAge() int {
	return m.minimumAge
}

// Submit validates the form and records a pending application. Applicants under the
// minimum age are declined without a record.
func (m *Machine) Submit(ctx context.Context, form Form, now time.Time) (Submission, error) {
	age, err := validate(&form)
	if err != nil {
		return Submission{}, err
	}

	if age < m.minimumAge {
		if err = m.audit.AutoDeclined(ctx, form, age); err != nil {
			logger.LogError("Failed to audit automatic decline", err,
				slog.String("applicant_id", form.ApplicantID))
		}
		slog.Info("Application declined automatically",
			slog.String("type", "audit"),
			slog.String("applicant_id", form.ApplicantID),
			slog.Int("age", age),
		)
		return Submission{AutoDeclined: true, Age: age}, nil
	}

	app := &models.Application{
		ApplicantID:       form.ApplicantID,
		ApplicantName:     form.ApplicantName,
		SteamHex:          form.SteamHex,
		RealName:          form.RealName,
		CharacterName:     form.CharacterName,
		Age:               age,
		CharacterStory:    form.CharacterStory,
		Status:            models.ApplicationPending,
		LastApplicationAt: now,
	}
	if err = m.store.Create(ctx, app); err != nil {
		return Submission{}, fmt.Errorf("failed to record application: %w", err)
	}

	slog.Info("Application submitted",
		slog.String("type", "audit"),
		slog.Int64("application_id", app.ID),
		slog.String("applicant_id", app.ApplicantID),
	)
	return Submission{Application: app, Age: age}, nil
}

func validate(form *Form) (int, error) {
	form.SteamHex = strings.TrimSpace(form.SteamHex)
	form.RealName = strings.TrimSpace(form.RealName)
	form.CharacterName = strings.TrimSpace(form.CharacterName)
	form.CharacterStory = strings.TrimSpace(form.CharacterStory)

	required := []struct {
		name  string
		value string
	}{
		{"steam hex", form.SteamHex},
		{"real name", form.RealName},
		{"character name", form.CharacterName},
	}
	for _, f := range required {
		if f.value == "" {
			return 0, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	age, err := strconv.Atoi(strings.TrimSpace(form.Age))
	if err != nil || age < 0 {
		return 0, ErrInvalidAge
	}
	return age, nil
}

// Approve moves a pending application to approved, then grants the role, writes the
// audit entry and DMs the applicant. Only the status write can fail the call.
func (m *Machine) Approve(ctx context.Context, id int64, reviewer Reviewer) (Outcome, error) {
	app, err := m.transition(ctx, id, models.ApplicationApproved, reviewer, "")
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Application: app}
	outcome.record(StepPersist, nil)

	role := outcome.record(StepGrantRole, m.roles.GrantAllowlistRole(ctx, reviewer.GuildID, app.ApplicantID))
	if role.Err != nil {
		slog.Warn("Failed to assign allowlisted role",
			slog.String("type", "audit"),
			slog.Int64("application_id", app.ID),
			slog.String("applicant_id", app.ApplicantID),
			slog.Any("error", role.Err),
		)
	}

	m.finish(ctx, &outcome, m.audit.Approved(ctx, app, reviewer, role), m.notifier.NotifyApproved(ctx, app, role.OK()))

	logger.LogDecision(app.ID, string(app.Status), reviewer.ID, slog.Bool("role_granted", role.OK()))
	return outcome, nil
}

// Decline moves a pending application to declined with the given reason. A blank reason
// is rejected before the record is read.
func (m *Machine) Decline(ctx context.Context, id int64, reviewer Reviewer, reason string) (Outcome, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Outcome{}, ErrEmptyReason
	}

	app, err := m.transition(ctx, id, models.ApplicationDeclined, reviewer, reason)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Application: app}
	outcome.record(StepPersist, nil)
	m.finish(ctx, &outcome, m.audit.Declined(ctx, app, reviewer), m.notifier.NotifyDeclined(ctx, app))

	logger.LogDecision(app.ID, string(app.Status), reviewer.ID, slog.String("reason", reason))
	return outcome, nil
}

// Pending returns the application if it can still be decided.
func (m *Machine) Pending(ctx context.Context, id int64) (*models.Application, error) {
	app, err := m.store.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrNotFoundOrDecided
		}
		return nil, fmt.Errorf("failed to load application %d: %w", id, err)
	}
	if app.Status.Terminal() {
		return nil, ErrNotFoundOrDecided
	}
	return app, nil
}

func (m *Machine) transition(ctx context.Context, id int64, status models.ApplicationStatus, reviewer Reviewer, reason string) (*models.Application, error) {
	app, err := m.Pending(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = m.store.Decide(ctx, id, status, reviewer.ID, reason); err != nil {
		if errors.Is(err, repositories.ErrAlreadyDecided) || repositories.IsNotFound(err) {
			return nil, ErrNotFoundOrDecided
		}
		return nil, fmt.Errorf("failed to persist %s status: %w", status, err)
	}

	app.Status = status
	app.ReviewerID = reviewer.ID
	app.ReviewReason = reason
	app.UpdatedAt = time.Now()
	return app, nil
}

// finish records the audit and notify steps. A failed DM is reported to the audit channel.
func (m *Machine) finish(ctx context.Context, outcome *Outcome, auditErr, notifyErr error) {
	app := outcome.Application

	if outcome.record(StepAudit, auditErr).Err != nil {
		logger.LogError("Failed to write audit entry", auditErr, slog.Int64("application_id", app.ID))
	}

	if outcome.record(StepNotify, notifyErr).Err == nil {
		return
	}
	slog.Warn("Could not DM applicant",
		slog.String("type", "audit"),
		slog.Int64("application_id", app.ID),
		slog.String("applicant_id", app.ApplicantID),
		slog.Any("error", notifyErr),
	)
	if err := m.audit.DeliveryFailed(ctx, app, notifyErr); err != nil {
		logger.LogError("Failed to report DM failure", err, slog.Int64("application_id", app.ID))
	}
}
