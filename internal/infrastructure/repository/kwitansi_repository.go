package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	domainRepo "github.com/sangkips/kwitansi-api/internal/domain/repository"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
	"github.com/sangkips/kwitansi-api/pkg/pagination"
)

var kwitansiSearchColumns = []string{
	"terima_dari", "untuk_pembayaran", "uraian", "bukti_kas", "kode_rekening",
}

var kwitansiSortColumns = []string{
	"created_at", "updated_at", "tanggal", "terima_dari", "nota_pembayaran", "jumlah_diterimakan",
}

type kwitansiRepository struct {
	db *gorm.DB
}

// NewKwitansiRepository creates a new kwitansi repository
func NewKwitansiRepository(db *gorm.DB) domainRepo.KwitansiRepository {
	return &kwitansiRepository{db: db}
}

func (r *kwitansiRepository) Create(ctx context.Context, rec *entity.Kwitansi) error {
	err := r.db.WithContext(ctx).Omit("User").Create(rec).Error
	return classify("create kwitansi", err)
}

func (r *kwitansiRepository) Replace(ctx context.Context, rec *entity.Kwitansi) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Kwitansi{}).
			Where("id = ?", rec.ID).
			Select("*").
			Omit("id", "user_id", "created_at", "User", "TaxLines").
			Updates(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NewNotFoundError("Kwitansi")
		}
		return replaceTaxLines(tx, rec)
	})
	if apperror.IsAppError(err) {
		return err
	}
	return classify("replace kwitansi", err)
}

func (r *kwitansiRepository) Upsert(ctx context.Context, rec *entity.Kwitansi) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Omit("User", "TaxLines").Create(rec).Error
		if err != nil {
			return err
		}
		return replaceTaxLines(tx, rec)
	})
	return classify("upsert kwitansi", err)
}

func replaceTaxLines(tx *gorm.DB, rec *entity.Kwitansi) error {
	if err := tx.Where("kwitansi_id = ?", rec.ID).Delete(&entity.KwitansiTaxLine{}).Error; err != nil {
		return err
	}
	if len(rec.TaxLines) == 0 {
		return nil
	}
	for i := range rec.TaxLines {
		rec.TaxLines[i].ID = uuid.Nil
		rec.TaxLines[i].KwitansiID = rec.ID
	}
	return tx.Create(&rec.TaxLines).Error
}

func (r *kwitansiRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Kwitansi, error) {
	var rec entity.Kwitansi
	err := r.db.WithContext(ctx).Preload("TaxLines").First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get kwitansi", err)
	}
	return &rec, nil
}

func (r *kwitansiRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kwitansi_id = ?", id).Delete(&entity.KwitansiTaxLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Kwitansi{}, "id = ?", id).Error
	})
	return classify("delete kwitansi", err)
}

func (r *kwitansiRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.KwitansiFilterParams) ([]entity.Kwitansi, int64, error) {
	var items []entity.Kwitansi
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Kwitansi{}).
		Scopes(OwnerScope(userID), SearchScope(params.Search, kwitansiSearchColumns...))

	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify("count kwitansi", err)
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.
		Scopes(SortScope(params.SortBy, params.SortOrder, "created_at", kwitansiSortColumns...)).
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("TaxLines").
		Find(&items).Error

	return items, total, classify("list kwitansi", err)
}

func (r *kwitansiRepository) ListAll(ctx context.Context, userID uuid.UUID, kind *enum.ReceiptKind) ([]entity.Kwitansi, error) {
	var items []entity.Kwitansi

	query := r.db.WithContext(ctx).Scopes(OwnerScope(userID))
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	err := query.Preload("TaxLines").Order("created_at DESC").Find(&items).Error
	return items, classify("list all kwitansi", err)
}
