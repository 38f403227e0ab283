package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/kwitansi-api/internal/application/service"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/dto/request"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/dto/response"
)

// FormHandler handles the kwitansi entry form
type FormHandler struct {
	formService     *service.FormService
	documentService *service.DocumentService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formService *service.FormService, documentService *service.DocumentService) *FormHandler {
	return &FormHandler{formService: formService, documentService: documentService}
}

// New opens an empty form
// @Summary Open Form
// @Description Open an empty kwitansi form of the given kind
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.NewFormRequest true "Kind"
// @Success 201 {object} response.APIResponse
// @Router /forms [post]
func (h *FormHandler) New(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.NewFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.formService.OpenNew(userID, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Form opened", view)
}

// Edit opens a form on a saved kwitansi
// @Summary Edit Kwitansi
// @Description Open a form pre-filled from a saved kwitansi
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Kwitansi ID"
// @Success 201 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /kwitansi/{id}/edit [post]
func (h *FormHandler) Edit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.formService.OpenEdit(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Form opened", view)
}

// Get returns an open form
// @Summary Get Form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.APIResponse
// @Router /forms/{id} [get]
func (h *FormHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.formService.GetForm(userID, formID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form retrieved", view)
}

// Patch applies field edits to an open form
// @Summary Edit Form
// @Description Apply field edits and recompute the figures
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body request.PatchFormRequest true "Edited fields"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /forms/{id} [patch]
func (h *FormHandler) Patch(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.PatchFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.formService.UpdateForm(userID, formID, patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form updated", view)
}

// Reset clears an open form
// @Summary Reset Form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.APIResponse
// @Router /forms/{id}/reset [post]
func (h *FormHandler) Reset(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.formService.ResetForm(userID, formID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form reset", view)
}

// Save persists an open form
// @Summary Save Form
// @Description Validate and save the form. A failed save keeps the form open for retry.
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /forms/{id}/save [post]
func (h *FormHandler) Save(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	output, err := h.formService.SaveForm(c.Request.Context(), userID, formID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kwitansi berhasil disimpan", output)
}

// Discard closes an open form. Unsaved changes need confirm=true.
// @Summary Discard Form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Param confirm query bool false "Discard unsaved changes"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /forms/{id} [delete]
func (h *FormHandler) Discard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	confirm, _ := strconv.ParseBool(c.DefaultQuery("confirm", "false"))

	if err := h.formService.DiscardForm(c.Request.Context(), userID, formID, confirm); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form closed", nil)
}

// PDF renders the open form as a PDF
// @Summary Form PDF
// @Tags forms
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Form ID"
// @Success 200 {file} file
// @Router /forms/{id}/pdf [get]
func (h *FormHandler) PDF(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.PDF(c.Request.Context(), h.documentService.FormSource(userID, formID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, doc.FileName, doc.ContentType, doc.Data)
}

// Print sends the open form to the thermal printer
// @Summary Print Form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /forms/{id}/print [post]
func (h *FormHandler) Print(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	snap, err := h.documentService.Print(c.Request.Context(), h.documentService.FormSource(userID, formID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kwitansi dikirim ke printer", gin.H{
		"kwitansi": snap,
	})
}
