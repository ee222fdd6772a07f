package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/uptrace/bun"
)

const applicationEntity = "application"

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	// GetLastApplicationAt returns last_application_at of the applicant's most recent
	// application by created_at, regardless of status. ok is false when none exists.
	GetLastApplicationAt(ctx context.Context, applicantID string) (last time.Time, ok bool, err error)
	SetReviewMessage(ctx context.Context, id int64, channelID, messageID string) error
	// Decide moves a pending application to a terminal status. It returns
	// ErrAlreadyDecided when the row is missing or no longer pending.
	Decide(ctx context.Context, id int64, status models.ApplicationStatus, reviewerID, reason string) error
	GetPending(ctx context.Context) ([]*models.Application, error)
}

type applicationRepository struct {
	*BaseRepository
}

func NewApplicationRepository(db *bun.DB) ApplicationRepository {
	return &applicationRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	if app.LastApplicationAt.IsZero() {
		app.LastApplicationAt = now
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = app.LastApplicationAt
	}
	app.UpdatedAt = app.CreatedAt
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}

	_, err := r.db.NewInsert().
		Model(app).
		Returning("id").
		Exec(ctx)
	return r.HandleError("create", applicationEntity, err)
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	app := new(models.Application)
	err := r.db.NewSelect().
		Model(app).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", applicationEntity, id, err)
	}
	return app, nil
}

func (r *applicationRepository) GetLastApplicationAt(ctx context.Context, applicantID string) (time.Time, bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var last time.Time
	err := r.db.NewSelect().
		Model((*models.Application)(nil)).
		Column("last_application_at").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, r.HandleError("last_application", applicationEntity, err)
	}
	return last, true, nil
}

func (r *applicationRepository) SetReviewMessage(ctx context.Context, id int64, channelID, messageID string) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Application)(nil)).
		Set("channel_id = ?", channelID).
		Set("message_id = ?", messageID).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("set_review_message", applicationEntity, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &NotFoundError{Entity: applicationEntity, ID: id}
	}
	return nil
}

func (r *applicationRepository) Decide(ctx context.Context, id int64, status models.ApplicationStatus, reviewerID, reason string) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Application)(nil)).
		Set("status = ?", status).
		Set("reviewer_id = ?", reviewerID).
		Set("review_reason = NULLIF(?, '')", reason).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("status = ?", models.ApplicationPending).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("decide", applicationEntity, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return r.HandleErrorWithID("decide", applicationEntity, id, err)
	}
	if n == 0 {
		return ErrAlreadyDecided
	}
	return nil
}

func (r *applicationRepository) GetPending(ctx context.Context) ([]*models.Application, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var apps []*models.Application
	err := r.db.NewSelect().
		Model(&apps).
		Where("status = ?", models.ApplicationPending).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_pending", applicationEntity, err)
	}
	return apps, nil
}
