package handler

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/kwitansi-api/internal/application/service"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/dto/response"
)

// BackupHandler handles backup download and restore
type BackupHandler struct {
	backupService *service.BackupService
	maxUploadSize int64
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService, maxUploadSize int64) *BackupHandler {
	return &BackupHandler{backupService: backupService, maxUploadSize: maxUploadSize}
}

// Export downloads every kwitansi of the user as JSON
// @Summary Download Backup
// @Tags backup
// @Security BearerAuth
// @Produce application/json
// @Success 200 {file} file
// @Router /backup [get]
func (h *BackupHandler) Export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	backup, err := h.backupService.Export(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, h.backupService.FileName(GetUserEmail(c)), "application/json", data)
}

// Restore loads a backup file into the user's kwitansi
// @Summary Restore Backup
// @Description Upload a backup JSON file. A backup of another account needs confirm=true.
// @Tags backup
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Backup file"
// @Param confirm query bool false "Restore a backup of another account"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".json") {
		response.BadRequest(c, "Only .json backup files are supported")
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		response.BadRequest(c, "Backup file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	confirm, _ := strconv.ParseBool(c.DefaultQuery("confirm", "false"))
	stats, err := h.backupService.Restore(c.Request.Context(), &service.RestoreInput{
		UserID:  userID,
		Body:    file,
		Confirm: confirm,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Backup berhasil dipulihkan", stats)
}
