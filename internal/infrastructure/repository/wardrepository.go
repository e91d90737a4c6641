package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"civicgrid/internal/domain/ward"
	"civicgrid/internal/infrastructure/persistence/mappers"
	"civicgrid/internal/infrastructure/persistence/models"
	"civicgrid/internal/shared/db"
)

type WardRepository struct {
	db     *gorm.DB
	mapper mappers.WardMapper
}

func NewWardRepository(database *gorm.DB) *WardRepository {
	return &WardRepository{
		db:     database,
		mapper: mappers.NewWardMapper(),
	}
}

var _ ward.WardRepository = (*WardRepository)(nil)

func (r *WardRepository) FindByID(ctx context.Context, id uint) (*ward.Ward, error) {
	var model models.WardModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ward: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *WardRepository) ListActive(ctx context.Context) ([]*ward.Ward, error) {
	var rows []models.WardModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("active = ?", true).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active wards: %w", err)
	}

	wards := make([]*ward.Ward, 0, len(rows))
	for idx := range rows {
		w, err := r.mapper.ToDomain(&rows[idx])
		if err != nil {
			return nil, err
		}
		wards = append(wards, w)
	}
	return wards, nil
}

type ZoneRepository struct {
	db     *gorm.DB
	mapper mappers.WardMapper
}

func NewZoneRepository(database *gorm.DB) *ZoneRepository {
	return &ZoneRepository{
		db:     database,
		mapper: mappers.NewWardMapper(),
	}
}

var _ ward.ZoneRepository = (*ZoneRepository)(nil)

func (r *ZoneRepository) FindByID(ctx context.Context, id uint) (*ward.Zone, error) {
	var model models.ZoneModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find zone: %w", err)
	}
	return r.mapper.ZoneToDomain(&model)
}
