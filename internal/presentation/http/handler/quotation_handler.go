package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotify-api/internal/application/service"
	"github.com/sangkips/quotify-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotify-api/internal/presentation/http/dto/response"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Description Create a draft quotation; the number and owner are assigned by the server
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.CreateQuotationInput true "Quotation"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var input service.CreateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input.UserID = *userID

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// PreviewTotals computes totals for unsaved items
// @Summary Preview Totals
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.PreviewTotalsInput true "Items, tax percentage and discount"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /quotations/preview-totals [post]
func (h *QuotationHandler) PreviewTotals(c *gin.Context) {
	var input service.PreviewTotalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.quotationService.PreviewTotals(&input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals calculated", result)
}

// List handles listing quotations
// @Summary List Quotations
// @Description Page through the caller's quotations, newest first
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Matches number, company or customer name"
// @Param status query string false "DRAFT or FINAL"
// @Success 200 {object} response.PageResponse[entity.Quotation]
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.QuotationFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.quotationService.ListQuotations(c.Request.Context(), *userID, &service.ListQuotationsInput{
		Page:   req.Page,
		Limit:  req.Limit,
		Search: req.Search,
		Status: req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, page)
}

// Get handles getting a single quotation
// @Summary Get Quotation
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, err := quotationID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Update handles updating a draft quotation
// @Summary Update Quotation
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body service.UpdateQuotationInput true "Fields to change"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, err := quotationID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.UpdateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), id, *userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

// Delete handles deleting a draft quotation
// @Summary Delete Quotation
// @Tags quotations
// @Security BearerAuth
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, err := quotationID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), id, *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation deleted successfully", nil)
}

// Finalize handles moving a quotation to FINAL
// @Summary Finalize Quotation
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /quotations/{id}/finalize [patch]
func (h *QuotationHandler) Finalize(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, err := quotationID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	quotation, err := h.quotationService.FinalizeQuotation(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation finalized successfully", quotation)
}

// DownloadPDF streams the quotation as a PDF attachment
// @Summary Download PDF
// @Tags quotations
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Quotation ID"
// @Success 200 {file} file
// @Failure 404 {object} response.APIResponse
// @Router /quotations/{id}/pdf [get]
func (h *QuotationHandler) DownloadPDF(c *gin.Context) {
	h.download(c, h.quotationService.ExportPDF)
}

// DownloadExcel streams the quotation as an xlsx attachment
// @Summary Download Excel
// @Tags quotations
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Quotation ID"
// @Success 200 {file} file
// @Failure 404 {object} response.APIResponse
// @Router /quotations/{id}/excel [get]
func (h *QuotationHandler) DownloadExcel(c *gin.Context) {
	h.download(c, h.quotationService.ExportExcel)
}

type exportFunc func(ctx context.Context, id, ownerID uuid.UUID) (*service.ExportFile, error)

func (h *QuotationHandler) download(c *gin.Context, render exportFunc) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, err := quotationID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := render(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}
