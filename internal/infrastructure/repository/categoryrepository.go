package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"civicgrid/internal/domain/category"
	"civicgrid/internal/infrastructure/persistence/mappers"
	"civicgrid/internal/infrastructure/persistence/models"
	"civicgrid/internal/shared/db"
)

type CategoryRepository struct {
	db     *gorm.DB
	mapper mappers.CategoryMapper
}

func NewCategoryRepository(database *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		db:     database,
		mapper: mappers.NewCategoryMapper(),
	}
}

var _ category.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]*category.Category, error) {
	var rows []models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*category.Category, 0, len(rows))
	for idx := range rows {
		c, err := r.mapper.ToDomain(&rows[idx])
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}
