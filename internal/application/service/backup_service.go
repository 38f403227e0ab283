package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// BackupVersion is the only backup format version understood by Restore
const BackupVersion = "1.0"

// Backup is the JSON document produced by Export
type Backup struct {
	UserID     uuid.UUID   `json:"user_id"`
	ExportDate time.Time   `json:"export_date"`
	Version    string      `json:"version"`
	Data       *BackupData `json:"data"`
}

// BackupData groups the kwitansi by kind under their Laporan names
type BackupData struct {
	LaporanHonor  []entity.Kwitansi `json:"laporan_honor"`
	LaporanJasa   []entity.Kwitansi `json:"laporan_jasa"`
	LaporanBarang []entity.Kwitansi `json:"laporan_barang"`
}

func (d *BackupData) byKind() map[enum.ReceiptKind][]entity.Kwitansi {
	return map[enum.ReceiptKind][]entity.Kwitansi{
		enum.ReceiptKindHonor:  d.LaporanHonor,
		enum.ReceiptKindJasa:   d.LaporanJasa,
		enum.ReceiptKindBarang: d.LaporanBarang,
	}
}

// RestoreStats counts restored kwitansi per kind
type RestoreStats struct {
	Honor  int `json:"honor"`
	Jasa   int `json:"jasa"`
	Barang int `json:"barang"`
	Total  int `json:"total"`
}

func (s *RestoreStats) add(kind enum.ReceiptKind) {
	switch kind {
	case enum.ReceiptKindHonor:
		s.Honor++
	case enum.ReceiptKindJasa:
		s.Jasa++
	case enum.ReceiptKindBarang:
		s.Barang++
	}
	s.Total++
}

// BackupService exports and restores all kwitansi of a user
type BackupService struct {
	repo   repository.KwitansiRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(repo repository.KwitansiRepository, logger *zap.Logger) *BackupService {
	return &BackupService{repo: repo, now: time.Now, logger: logger}
}

// Export collects every kwitansi of userID
func (s *BackupService) Export(ctx context.Context, userID uuid.UUID) (*Backup, error) {
	items, err := s.repo.ListAll(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	byKind := lo.GroupBy(items, func(k entity.Kwitansi) enum.ReceiptKind { return k.Kind })
	return &Backup{
		UserID:     userID,
		ExportDate: s.now().UTC(),
		Version:    BackupVersion,
		Data: &BackupData{
			LaporanHonor:  nonNil(byKind[enum.ReceiptKindHonor]),
			LaporanJasa:   nonNil(byKind[enum.ReceiptKindJasa]),
			LaporanBarang: nonNil(byKind[enum.ReceiptKindBarang]),
		},
	}, nil
}

// FileName is the download name of a backup of the account email
func (s *BackupService) FileName(email string) string {
	safe := strings.NewReplacer("@", "_", ".", "_").Replace(email)
	return fmt.Sprintf("backup_%s_%s.json", safe, s.now().Format("2006-01-02"))
}

// RestoreInput represents a restore request
type RestoreInput struct {
	UserID uuid.UUID
	Body   io.Reader
	// Confirm allows restoring a backup exported by another user
	Confirm bool
}

// Restore writes every kwitansi of a backup under the caller. Records keep
// their IDs unless the ID belongs to another user's kwitansi.
func (s *BackupService) Restore(ctx context.Context, input *RestoreInput) (*RestoreStats, error) {
	var backup Backup
	if err := json.NewDecoder(input.Body).Decode(&backup); err != nil {
		return nil, apperror.NewBadRequestError("Format backup tidak valid")
	}
	if backup.Version == "" || backup.Data == nil {
		return nil, apperror.NewBadRequestError("Format backup tidak valid")
	}
	if backup.Version != BackupVersion {
		return nil, apperror.NewBadRequestError("Versi backup tidak didukung: " + backup.Version)
	}
	if backup.UserID != uuid.Nil && backup.UserID != input.UserID && !input.Confirm {
		return nil, apperror.NewConflictError("Backup ini milik user lain. Konfirmasi untuk melanjutkan restore.")
	}

	stats := &RestoreStats{}
	groups := backup.Data.byKind()
	for _, kind := range enum.ReceiptKinds {
		for i := range groups[kind] {
			rec := groups[kind][i]
			if err := s.restoreOne(ctx, input.UserID, kind, &rec); err != nil {
				s.logger.Warn("Restore stopped",
					zap.String("user_id", input.UserID.String()),
					zap.Int("restored", stats.Total),
					zap.Error(err))
				return stats, err
			}
			stats.add(kind)
		}
	}

	s.logger.Info("Backup restored",
		zap.String("user_id", input.UserID.String()),
		zap.Int("honor", stats.Honor),
		zap.Int("jasa", stats.Jasa),
		zap.Int("barang", stats.Barang))
	return stats, nil
}

func (s *BackupService) restoreOne(ctx context.Context, userID uuid.UUID, kind enum.ReceiptKind, rec *entity.Kwitansi) error {
	rec.Kind = kind
	rec.UserID = userID
	rec.User = entity.User{}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	} else {
		existing, err := s.repo.GetByID(ctx, rec.ID)
		if err != nil {
			return err
		}
		if existing != nil && existing.UserID != userID {
			rec.ID = uuid.New()
		}
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}

	return s.repo.Upsert(ctx, rec)
}

func nonNil(items []entity.Kwitansi) []entity.Kwitansi {
	if items == nil {
		return []entity.Kwitansi{}
	}
	return items
}
