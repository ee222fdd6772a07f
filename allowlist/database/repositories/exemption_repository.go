package repositories

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/uptrace/bun"
)

const exemptionEntity = "cooldown_exemption"

type ExemptionRepository interface {
	IsExempt(ctx context.Context, applicantID string) (bool, error)
	// Add is idempotent; added is false when the applicant was already exempt.
	Add(ctx context.Context, applicantID, grantedBy string) (added bool, err error)
	// Remove is idempotent; removed is false when the applicant was not exempt.
	Remove(ctx context.Context, applicantID string) (removed bool, err error)
}

type exemptionRepository struct {
	*BaseRepository
}

func NewExemptionRepository(db *bun.DB) ExemptionRepository {
	return &exemptionRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *exemptionRepository) IsExempt(ctx context.Context, applicantID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.CooldownExemption)(nil)).
		Where("applicant_id = ?", applicantID).
		Exists(ctx)
	if err != nil {
		return false, r.HandleErrorWithID("exists", exemptionEntity, applicantID, err)
	}
	return exists, nil
}

func (r *exemptionRepository) Add(ctx context.Context, applicantID, grantedBy string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exemption := &models.CooldownExemption{
		ApplicantID: applicantID,
		GrantedBy:   grantedBy,
		CreatedAt:   time.Now(),
	}
	res, err := r.db.NewInsert().
		Model(exemption).
		On("CONFLICT (applicant_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleErrorWithID("add", exemptionEntity, applicantID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, r.HandleErrorWithID("add", exemptionEntity, applicantID, err)
	}
	return n > 0, nil
}

func (r *exemptionRepository) Remove(ctx context.Context, applicantID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.CooldownExemption)(nil)).
		Where("applicant_id = ?", applicantID).
		Exec(ctx)
	if err != nil {
		return false, r.HandleErrorWithID("remove", exemptionEntity, applicantID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, r.HandleErrorWithID("remove", exemptionEntity, applicantID, err)
	}
	return n > 0, nil
}
