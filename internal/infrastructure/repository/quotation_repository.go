package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotify-api/internal/domain/entity"
	"github.com/sangkips/quotify-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotify-api/internal/domain/repository"
	"github.com/sangkips/quotify-api/pkg/pagination"
	"gorm.io/gorm"
)

// columns an update may never overwrite
var immutableFields = []string{"ID", "UserID", "QuotationNumber", "Status", "CreatedAt", "User"}

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

// ownedBy restricts a query to a single quotation of a single owner
func ownedBy(id, ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND user_id = ?", id, ownerID)
	}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return translateError(r.db.WithContext(ctx).Omit("User").Create(quotation).Error)
}

func (r *quotationRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*entity.Quotation, error) {
	return r.find(r.db.WithContext(ctx), id, ownerID)
}

func (r *quotationRepository) find(db *gorm.DB, id, ownerID uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	if err := db.Scopes(ownedBy(id, ownerID)).First(&quotation).Error; err != nil {
		return nil, translateError(err)
	}
	return &quotation, nil
}

// likeEscaper makes search text match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *quotationRepository) List(ctx context.Context, ownerID uuid.UUID, params *domainRepo.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	var quotations []entity.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quotation{}).Where("user_id = ?", ownerID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(quotation_number) LIKE ? ESCAPE '\' OR LOWER(company_name) LIKE ? ESCAPE '\' OR LOWER(customer_name) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultParams()
	}
	params.Pagination.Validate()

	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.Limit).
		Find(&quotations).Error

	return quotations, total, err
}

func (r *quotationRepository) Update(ctx context.Context, id, ownerID uuid.UUID, patch *entity.QuotationPatch) (*entity.Quotation, error) {
	var updated *entity.Quotation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quotation, err := r.find(tx, id, ownerID)
		if err != nil {
			return err
		}
		if quotation.IsFinal() {
			return domainRepo.ErrImmutable
		}

		patch.Apply(quotation)

		// The status guard makes the write fail if the quotation was
		// finalized after it was read.
		result := tx.Model(quotation).
			Where("status = ?", enum.QuotationStatusDraft).
			Select("*").
			Omit(immutableFields...).
			Updates(quotation)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrImmutable
		}

		updated = quotation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *quotationRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	db := r.db.WithContext(ctx)

	result := db.Scopes(ownedBy(id, ownerID)).
		Where("status = ?", enum.QuotationStatusDraft).
		Delete(&entity.Quotation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing deleted: either the quotation is missing or it is final.
	if _, err := r.find(db, id, ownerID); err != nil {
		return err
	}
	return domainRepo.ErrImmutable
}

func (r *quotationRepository) Finalize(ctx context.Context, id, ownerID uuid.UUID) (*entity.Quotation, error) {
	db := r.db.WithContext(ctx)

	err := db.Model(&entity.Quotation{}).
		Scopes(ownedBy(id, ownerID)).
		Where("status = ?", enum.QuotationStatusDraft).
		Update("status", enum.QuotationStatusFinal).Error
	if err != nil {
		return nil, err
	}

	return r.find(db, id, ownerID)
}
