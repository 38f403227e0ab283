package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/kwitansi-api/internal/application/service"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/dto/request"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/dto/response"
)

// KwitansiHandler handles saved kwitansi and the Laporan pages
type KwitansiHandler struct {
	kwitansiService *service.KwitansiService
	formService     *service.FormService
	documentService *service.DocumentService
	reportService   *service.ReportService
}

// NewKwitansiHandler creates a new kwitansi handler
func NewKwitansiHandler(
	kwitansiService *service.KwitansiService,
	formService *service.FormService,
	documentService *service.DocumentService,
	reportService *service.ReportService,
) *KwitansiHandler {
	return &KwitansiHandler{
		kwitansiService: kwitansiService,
		formService:     formService,
		documentService: documentService,
		reportService:   reportService,
	}
}

// Profiles lists the receipt kinds and their tax lines
// @Summary Receipt Profiles
// @Tags kwitansi
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /kwitansi/profiles [get]
func (h *KwitansiHandler) Profiles(c *gin.Context) {
	response.OK(c, "Profiles retrieved", h.formService.Profiles())
}

// Calculate previews the figures of a kwitansi
// @Summary Calculate
// @Description Compute taxes, net amount and terbilang without saving
// @Tags kwitansi
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CalculateRequest true "Amount and rates"
// @Success 200 {object} response.APIResponse
// @Router /kwitansi/calculate [post]
func (h *KwitansiHandler) Calculate(c *gin.Context) {
	var req request.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	calc, err := h.formService.Calculate(&service.CalculateInput{
		Kind:           req.Kind,
		NotaPembayaran: string(req.NotaPembayaran),
		Rates:          req.Rates,
		Mode:           req.Mode(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Calculation completed", calc)
}

// List handles listing saved kwitansi
// @Summary List Kwitansi
// @Tags kwitansi
// @Security BearerAuth
// @Produce json
// @Param kind query string false "honor, jasa or barang"
// @Param search query string false "Search query"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Success 200 {object} response.APIResponse
// @Router /kwitansi [get]
func (h *KwitansiHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.KwitansiFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.kwitansiService.ListKwitansi(c.Request.Context(), &service.ListKwitansiInput{
		UserID:    userID,
		Kind:      kindParam(req.Kind),
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		PerPage:   req.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kwitansi retrieved successfully", result)
}

// Get handles getting a single kwitansi
// @Summary Get Kwitansi
// @Tags kwitansi
// @Security BearerAuth
// @Produce json
// @Param id path string true "Kwitansi ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /kwitansi/{id} [get]
func (h *KwitansiHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rec, err := h.kwitansiService.GetKwitansi(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kwitansi retrieved successfully", rec)
}

// Delete handles deleting a kwitansi
// @Summary Delete Kwitansi
// @Tags kwitansi
// @Security BearerAuth
// @Param id path string true "Kwitansi ID"
// @Success 200 {object} response.APIResponse
// @Router /kwitansi/{id} [delete]
func (h *KwitansiHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.kwitansiService.DeleteKwitansi(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kwitansi berhasil dihapus", nil)
}

// PDF renders a saved kwitansi as a PDF
// @Summary Kwitansi PDF
// @Tags kwitansi
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Kwitansi ID"
// @Success 200 {file} file
// @Router /kwitansi/{id}/pdf [get]
func (h *KwitansiHandler) PDF(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.PDF(c.Request.Context(), h.documentService.RecordSource(userID, id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, doc.FileName, doc.ContentType, doc.Data)
}

// Print sends a saved kwitansi to the thermal printer
// @Summary Print Kwitansi
// @Tags kwitansi
// @Security BearerAuth
// @Produce json
// @Param id path string true "Kwitansi ID"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /kwitansi/{id}/print [post]
func (h *KwitansiHandler) Print(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	snap, err := h.documentService.Print(c.Request.Context(), h.documentService.RecordSource(userID, id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kwitansi dikirim ke printer", gin.H{
		"kwitansi": snap,
	})
}

// Summary returns totals per receipt kind
// @Summary Laporan Summary
// @Tags kwitansi
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /kwitansi/summary [get]
func (h *KwitansiHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// Export downloads the Laporan as a spreadsheet
// @Summary Export Laporan
// @Tags kwitansi
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param kind query string false "honor, jasa or barang"
// @Success 200 {file} file
// @Router /kwitansi/export [get]
func (h *KwitansiHandler) Export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	doc, err := h.reportService.ExportXLSX(c.Request.Context(), userID, kindParam(c.Query("kind")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, doc.FileName, doc.ContentType, doc.Data)
}

func kindParam(s string) *enum.ReceiptKind {
	if s == "" {
		return nil
	}
	kind := enum.ReceiptKind(s)
	return &kind
}
