package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/application/form"
	"github.com/sangkips/kwitansi-api/internal/application/service"
	"github.com/sangkips/kwitansi-api/internal/config"
	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository/mocks"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/handler"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/routes"
	"github.com/sangkips/kwitansi-api/pkg/pdf"
	"github.com/sangkips/kwitansi-api/pkg/printer"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

type testServer struct {
	router      *gin.Engine
	jwt         *utils.JWTManager
	kwitansi    *mocks.MockKwitansiRepository
	users       *mocks.MockUserRepository
	idempotency *mocks.MockIdempotencyRepository
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Retryable bool            `json:"retryable"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	ts := &testServer{
		jwt:         utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour),
		kwitansi:    mocks.NewMockKwitansiRepository(ctrl),
		users:       mocks.NewMockUserRepository(ctrl),
		idempotency: mocks.NewMockIdempotencyRepository(ctrl),
	}

	log := zap.NewNop()
	nullPrinter, err := printer.New(printer.Config{Type: printer.TypeNone})
	require.NoError(t, err)

	store := form.NewStore(time.Hour, log)
	formService := service.NewFormService(ts.kwitansi, store, service.FormOptions{Location: "Nganjuk"}, log)
	kwitansiService := service.NewKwitansiService(ts.kwitansi, "Nganjuk", log)
	printerService := service.NewPrinterService(nullPrinter, printer.Width80mm, log)
	documentService := service.NewDocumentService(formService, kwitansiService, printerService, pdf.Options{Copies: 2})

	cfg := &config.Config{
		App:    config.AppConfig{Name: "kwitansi-api"},
		Backup: config.BackupConfig{MaxUploadSize: 1024},
	}

	ts.router = routes.Setup(&routes.Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(ts.users, ts.jwt)),
		User:     handler.NewUserHandler(service.NewUserService(ts.users)),
		Form:     handler.NewFormHandler(formService, documentService),
		Kwitansi: handler.NewKwitansiHandler(kwitansiService, formService, documentService, service.NewReportService(ts.kwitansi)),
		Backup:   handler.NewBackupHandler(service.NewBackupService(ts.kwitansi, log), cfg.Backup.MaxUploadSize),
		Printer:  handler.NewPrinterHandler(printerService),
	}, &routes.Deps{
		JWTManager:      ts.jwt,
		Cfg:             cfg,
		IdempotencyRepo: ts.idempotency,
		Logger:          log,
	})
	return ts
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID, role enum.UserRole) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(userID, "bendahara@example.com", role.String())
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/kwitansi", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/kwitansi", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserRoutesNeedAdmin(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, uuid.New(), enum.UserRoleBendahara)

	w, _ := ts.do(t, http.MethodGet, "/api/v1/users", tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, uuid.New(), enum.UserRoleBendahara)

	w, env := ts.do(t, http.MethodPost, "/api/v1/kwitansi/calculate", tok, gin.H{
		"kind":            "jasa",
		"nota_pembayaran": "Rp 1.110.000",
		"rates":           gin.H{"ppn": 11, "pph23": 2},
		"base_selection":  1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var calc form.Calculation
	require.NoError(t, json.Unmarshal(env.Data, &calc))
	assert.Equal(t, int64(1000000), calc.Result.EffectiveBase)
	assert.Equal(t, int64(130000), calc.Result.TotalTax)
	assert.Equal(t, int64(870000), calc.Result.Net)
	assert.Equal(t, "Delapan Ratus Tujuh Puluh Ribu Rupiah", calc.UangSebanyak)
}

func TestFormLifecycle(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	tok := ts.token(t, userID, enum.UserRoleBendahara)

	w, env := ts.do(t, http.MethodPost, "/api/v1/forms", tok, gin.H{"kind": "honor"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var view form.View
	require.NoError(t, json.Unmarshal(env.Data, &view))
	formPath := "/api/v1/forms/" + view.ID.String()

	w, env = ts.do(t, http.MethodPatch, formPath, tok, gin.H{
		"terima_dari":     "Budi Santoso",
		"nota_pembayaran": "Rp 2.000.000",
		"rates":           gin.H{"pph21": 5},
		"tanggal":         "2025-03-14",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, int64(1900000), view.Result.Net)
	assert.Equal(t, enum.FormStateReadyToSave, view.State)

	w, _ = ts.do(t, http.MethodDelete, formPath, tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	ts.idempotency.EXPECT().GetByKey(gomock.Any(), "save-1", userID).Return(nil, nil)
	ts.idempotency.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, k *entity.IdempotencyKey) error {
		assert.Equal(t, http.StatusOK, k.ResponseCode)
		assert.Equal(t, "POST "+formPath+"/save", k.Endpoint)
		return nil
	})
	ts.kwitansi.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec *entity.Kwitansi) error {
		assert.Equal(t, userID, rec.UserID)
		rec.ID = uuid.New()
		return nil
	})

	w, env = ts.do(t, http.MethodPost, formPath+"/save", tok, nil, "Idempotency-Key", "save-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved service.SaveOutput
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, int64(1900000), saved.Kwitansi.JumlahDiterimakan)
	assert.Equal(t, enum.FormStateSaved, saved.Form.State)

	w, _ = ts.do(t, http.MethodDelete, formPath, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFormSaveReplaysIdempotentResponse(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	tok := ts.token(t, userID, enum.UserRoleBendahara)
	path := "/api/v1/forms/" + uuid.NewString() + "/save"

	ts.idempotency.EXPECT().GetByKey(gomock.Any(), "save-2", userID).Return(&entity.IdempotencyKey{
		Key:          "save-2",
		UserID:       userID,
		Endpoint:     "POST " + path,
		ResponseCode: http.StatusOK,
		ResponseBody: `{"success":true,"message":"Kwitansi berhasil disimpan"}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil)

	w, env := ts.do(t, http.MethodPost, path, tok, nil, "Idempotency-Key", "save-2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))
	assert.True(t, env.Success)
}

func TestFormPrintWithoutPrinter(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, uuid.New(), enum.UserRoleBendahara)

	w, env := ts.do(t, http.MethodPost, "/api/v1/forms", tok, gin.H{"kind": "barang"})
	require.Equal(t, http.StatusCreated, w.Code)
	var view form.View
	require.NoError(t, json.Unmarshal(env.Data, &view))

	w, env = ts.do(t, http.MethodPost, "/api/v1/forms/"+view.ID.String()+"/print", tok, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, service.MsgPrinterNotConfigured, env.Message)
}

func TestFormPDF(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, uuid.New(), enum.UserRoleBendahara)

	w, env := ts.do(t, http.MethodPost, "/api/v1/forms", tok, gin.H{"kind": "honor"})
	require.Equal(t, http.StatusCreated, w.Code)
	var view form.View
	require.NoError(t, json.Unmarshal(env.Data, &view))

	w, _ = ts.do(t, http.MethodGet, "/api/v1/forms/"+view.ID.String()+"/pdf", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestInvalidFormID(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, uuid.New(), enum.UserRoleBendahara)

	w, _ := ts.do(t, http.MethodGet, "/api/v1/forms/not-a-uuid", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKwitansiGetOfAnotherUser(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, uuid.New(), enum.UserRoleBendahara)
	id := uuid.New()

	ts.kwitansi.EXPECT().GetByID(gomock.Any(), id).Return(&entity.Kwitansi{ID: id, UserID: uuid.New()}, nil)

	w, _ := ts.do(t, http.MethodGet, "/api/v1/kwitansi/"+id.String(), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBackupRestoreUpload(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	tok := ts.token(t, userID, enum.UserRoleBendahara)

	upload := func(name string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/restore", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, upload("backup.csv", []byte("{}")).Code)
	assert.Equal(t, http.StatusBadRequest, upload("backup.json", bytes.Repeat([]byte(" "), 2048)).Code)

	ts.kwitansi.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	body := []byte(`{"user_id":"` + userID.String() + `","version":"1.0","data":{"laporan_honor":[{"terima_dari":"Budi"}],"laporan_jasa":[],"laporan_barang":[]}}`)

	w := upload("backup.json", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var stats service.RestoreStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, service.RestoreStats{Honor: 1, Total: 1}, stats)
}
