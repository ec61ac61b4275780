package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotify-api/internal/domain/entity"
	"github.com/sangkips/quotify-api/internal/domain/enum"
	"github.com/sangkips/quotify-api/internal/domain/repository"
	"github.com/sangkips/quotify-api/pkg/apperror"
	"github.com/sangkips/quotify-api/pkg/excel"
	"github.com/sangkips/quotify-api/pkg/export"
	"github.com/sangkips/quotify-api/pkg/metrics"
	"github.com/sangkips/quotify-api/pkg/pagination"
	"github.com/sangkips/quotify-api/pkg/pdf"
	"github.com/sangkips/quotify-api/pkg/totals"
	"github.com/sangkips/quotify-api/pkg/utils"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds quotation number regeneration after collisions
const maxNumberAttempts = 5

// Export formats
const (
	FormatPDF   = "pdf"
	FormatExcel = "xlsx"
)

// QuotationService handles quotation-related operations
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	metrics       *metrics.Metrics
	log           *zap.Logger

	newNumber func(time.Time) string
	now       func() time.Time
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) *QuotationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		metrics:       m,
		log:           log,
		newNumber:     utils.GenerateQuotationNumber,
		now:           time.Now,
	}
}

// ExportFile is a rendered quotation ready to be sent as an attachment
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateQuotation creates a new draft quotation owned by input.UserID
func (s *QuotationService) CreateQuotation(ctx context.Context, input *CreateQuotationInput) (*entity.Quotation, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	quotation := input.toEntity(now)
	quotation.Status = enum.QuotationStatusDraft

	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		quotation.QuotationNumber = s.newNumber(now)

		err := s.quotationRepo.Create(ctx, quotation)
		if err == nil {
			s.metrics.QuotationEvent("created")
			s.log.Info("quotation created",
				zap.String("quotation_id", quotation.ID.String()),
				zap.String("quotation_number", quotation.QuotationNumber),
				zap.String("user_id", input.UserID.String()),
			)
			return quotation, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("create quotation: %w", err)
		}

		s.log.Warn("quotation number collision, regenerating",
			zap.String("quotation_number", quotation.QuotationNumber),
			zap.Int("attempt", attempt),
		)
	}

	return nil, apperror.ErrDuplicateKey
}

// GetQuotation retrieves a quotation owned by ownerID
func (s *QuotationService) GetQuotation(ctx context.Context, id, ownerID uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return quotation, nil
}

// ListQuotations returns one page of the owner's quotations, newest first
func (s *QuotationService) ListQuotations(ctx context.Context, ownerID uuid.UUID, input *ListQuotationsInput) (*pagination.Page[entity.Quotation], error) {
	params := pagination.ParseParams(input.Page, input.Limit)
	filter := &repository.QuotationFilterParams{
		Pagination: params,
		Search:     strings.TrimSpace(input.Search),
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		// unknown values still filter exactly and simply match nothing
		status := enum.QuotationStatus(raw)
		filter.Status = &status
	}

	quotations, total, err := s.quotationRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}

	return pagination.NewPage(quotations, params, total), nil
}

// UpdateQuotation applies a partial update to a draft quotation
func (s *QuotationService) UpdateQuotation(ctx context.Context, id, ownerID uuid.UUID, input *UpdateQuotationInput) (*entity.Quotation, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	quotation, err := s.quotationRepo.Update(ctx, id, ownerID, input.toPatch())
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.metrics.QuotationEvent("updated")
	return quotation, nil
}

// DeleteQuotation removes a draft quotation
func (s *QuotationService) DeleteQuotation(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.quotationRepo.Delete(ctx, id, ownerID); err != nil {
		return mapRepoError(err)
	}

	s.metrics.QuotationEvent("deleted")
	s.log.Info("quotation deleted", zap.String("quotation_id", id.String()))
	return nil
}

// FinalizeQuotation moves a quotation to FINAL. Finalizing twice is not an error.
func (s *QuotationService) FinalizeQuotation(ctx context.Context, id, ownerID uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.Finalize(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.metrics.QuotationEvent("finalized")
	return quotation, nil
}

// ExportPDF renders the quotation as a PDF document
func (s *QuotationService) ExportPDF(ctx context.Context, id, ownerID uuid.UUID) (*ExportFile, error) {
	return s.export(ctx, id, ownerID, FormatPDF)
}

// ExportExcel renders the quotation as an xlsx workbook
func (s *QuotationService) ExportExcel(ctx context.Context, id, ownerID uuid.UUID) (*ExportFile, error) {
	return s.export(ctx, id, ownerID, FormatExcel)
}

func (s *QuotationService) export(ctx context.Context, id, ownerID uuid.UUID, format string) (*ExportFile, error) {
	quotation, err := s.GetQuotation(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	doc := ToDocument(quotation)
	start := time.Now()

	file := &ExportFile{FileName: export.FileName(quotation.QuotationNumber, format)}
	switch format {
	case FormatPDF:
		file.ContentType = pdf.ContentType
		file.Data, err = pdf.Generate(doc)
	case FormatExcel:
		file.ContentType = excel.ContentType
		file.Data, err = excel.Generate(doc)
	default:
		return nil, apperror.NewBadRequestError("Unsupported export format")
	}
	if err != nil {
		s.log.Error("quotation export failed",
			zap.String("quotation_id", id.String()),
			zap.String("format", format),
			zap.Error(err),
		)
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	s.metrics.ObserveExport(format, time.Since(start))
	s.metrics.QuotationEvent("exported_" + format)
	return file, nil
}

// PreviewTotals computes the totals a client should submit for the given items
func (s *QuotationService) PreviewTotals(input *PreviewTotalsInput) (totals.Totals, error) {
	if err := validateInput(input); err != nil {
		return totals.Totals{}, err
	}

	amounts := make([]float64, len(input.Items))
	for i, item := range input.Items {
		amounts[i] = deref(item.Amount)
	}
	return totals.Calculate(amounts, deref(input.TaxPercentage), deref(input.Discount)), nil
}

// ToDocument snapshots a quotation into the renderer-neutral document
func ToDocument(q *entity.Quotation) *export.Document {
	doc := &export.Document{
		Number: q.QuotationNumber,
		Date:   q.QuotationDate,
		Status: q.Status.String(),
		From: export.Party{
			Name:      q.CompanyDetails.Name,
			Address:   str(q.CompanyDetails.Address),
			Phone:     str(q.CompanyDetails.Phone),
			Email:     str(q.CompanyDetails.Email),
			TaxNumber: str(q.CompanyDetails.GSTNumber),
		},
		To: export.Party{
			Name:    q.CustomerDetails.Name,
			Address: str(q.CustomerDetails.Address),
			Phone:   str(q.CustomerDetails.Phone),
			Email:   str(q.CustomerDetails.Email),
		},
		Items:      make([]export.Item, len(q.Items)),
		SubTotal:   q.SubTotal,
		GrandTotal: q.GrandTotal,
		Terms:      str(q.TermsAndConditions),
		Notes:      str(q.Notes),
	}

	for i, item := range q.Items {
		doc.Items[i] = export.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Rate:        item.Rate,
			Amount:      item.Amount,
		}
	}
	if q.Tax != nil {
		doc.Tax = &export.Adjustment{Label: q.Tax.Label, Percentage: q.Tax.Percentage, Amount: q.Tax.Amount}
	}
	if q.Discount != nil {
		doc.Discount = &export.Adjustment{Label: q.Discount.Label, Amount: q.Discount.Amount}
	}
	return doc
}

// mapRepoError translates storage sentinels into client-facing errors
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.ErrQuotationNotFound
	case errors.Is(err, repository.ErrImmutable):
		return apperror.ErrQuotationImmutable
	case errors.Is(err, repository.ErrDuplicateKey):
		return apperror.ErrDuplicateKey
	}
	return err
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
