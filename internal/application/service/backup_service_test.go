package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository/mocks"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

func newBackupService(t *testing.T) (*BackupService, *mocks.MockKwitansiRepository) {
	t.Helper()
	repo := mocks.NewMockKwitansiRepository(gomock.NewController(t))
	svc := NewBackupService(repo, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func encodeBackup(t *testing.T, b *Backup) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(b)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestBackupService_ExportGroupsByKind(t *testing.T) {
	svc, repo := newBackupService(t)
	userID := uuid.New()

	repo.EXPECT().ListAll(gomock.Any(), userID, nil).Return([]entity.Kwitansi{
		{Kind: enum.ReceiptKindHonor, TerimaDari: "A"},
		{Kind: enum.ReceiptKindHonor, TerimaDari: "B"},
		{Kind: enum.ReceiptKindBarang, TerimaDari: "C"},
	}, nil)

	backup, err := svc.Export(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, BackupVersion, backup.Version)
	assert.Equal(t, userID, backup.UserID)
	assert.Len(t, backup.Data.LaporanHonor, 2)
	assert.Len(t, backup.Data.LaporanBarang, 1)
	assert.NotNil(t, backup.Data.LaporanJasa)
	assert.Empty(t, backup.Data.LaporanJasa)

	data, err := json.Marshal(backup)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"laporan_jasa":[]`)
}

func TestBackupService_FileName(t *testing.T) {
	svc, _ := newBackupService(t)
	assert.Equal(t, "backup_siti_example_com_2025-03-14.json", svc.FileName("siti@example.com"))
}

func TestBackupService_RestoreOwnBackup(t *testing.T) {
	svc, repo := newBackupService(t)
	userID := uuid.New()
	keptID := uuid.New()
	foreignID := uuid.New()

	backup := &Backup{
		UserID:  userID,
		Version: BackupVersion,
		Data: &BackupData{
			LaporanHonor: []entity.Kwitansi{{ID: keptID, TerimaDari: "A"}},
			LaporanJasa:  []entity.Kwitansi{{ID: foreignID, TerimaDari: "B"}},
			LaporanBarang: []entity.Kwitansi{
				{TerimaDari: "C", Kind: enum.ReceiptKindHonor},
			},
		},
	}

	repo.EXPECT().GetByID(gomock.Any(), keptID).Return(nil, nil)
	repo.EXPECT().GetByID(gomock.Any(), foreignID).Return(&entity.Kwitansi{ID: foreignID, UserID: uuid.New()}, nil)

	var upserted []entity.Kwitansi
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(func(_ context.Context, rec *entity.Kwitansi) error {
		upserted = append(upserted, *rec)
		return nil
	})

	stats, err := svc.Restore(context.Background(), &RestoreInput{UserID: userID, Body: encodeBackup(t, backup)})
	require.NoError(t, err)
	assert.Equal(t, &RestoreStats{Honor: 1, Jasa: 1, Barang: 1, Total: 3}, stats)

	require.Len(t, upserted, 3)
	for _, rec := range upserted {
		assert.Equal(t, userID, rec.UserID)
		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	}
	assert.Equal(t, keptID, upserted[0].ID)
	assert.NotEqual(t, foreignID, upserted[1].ID)
	assert.Equal(t, enum.ReceiptKindBarang, upserted[2].Kind)
}

func TestBackupService_RestoreForeignBackupNeedsConfirm(t *testing.T) {
	svc, repo := newBackupService(t)
	userID := uuid.New()
	backup := &Backup{
		UserID:  uuid.New(),
		Version: BackupVersion,
		Data:    &BackupData{LaporanHonor: []entity.Kwitansi{{TerimaDari: "A"}}},
	}

	_, err := svc.Restore(context.Background(), &RestoreInput{UserID: userID, Body: encodeBackup(t, backup)})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	stats, err := svc.Restore(context.Background(), &RestoreInput{UserID: userID, Body: encodeBackup(t, backup), Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Honor)
}

func TestBackupService_RestoreRejectsBadInput(t *testing.T) {
	svc, _ := newBackupService(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "kwitansi"},
		{"missing data", `{"version":"1.0"}`},
		{"missing version", `{"data":{"laporan_honor":[]}}`},
		{"unknown version", `{"version":"2.0","data":{"laporan_honor":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Restore(context.Background(), &RestoreInput{UserID: uuid.New(), Body: strings.NewReader(tt.body)})
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
		})
	}
}
