package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"civicgrid/internal/domain/user"
	"civicgrid/internal/infrastructure/persistence/mappers"
	"civicgrid/internal/infrastructure/persistence/models"
	"civicgrid/internal/shared/constants"
	"civicgrid/internal/shared/db"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{
		db:     database,
		mapper: mappers.NewUserMapper(),
	}
}

var _ user.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// FindWardEngineers returns active ward engineers of the ward ordered by
// creation time ascending. An empty department matches all departments.
func (r *UserRepository) FindWardEngineers(ctx context.Context, wardID uint, department string) ([]*user.User, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Where("role = ? AND ward_id = ? AND active = ?", constants.RoleWardEngineer, wardID, true)
	if department != "" {
		query = query.Where("department = ?", department)
	}

	var rows []models.UserModel
	if err := query.
		Order("created_at asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ward engineers: %w", err)
	}

	engineers := make([]*user.User, 0, len(rows))
	for idx := range rows {
		u, err := r.mapper.ToDomain(&rows[idx])
		if err != nil {
			return nil, err
		}
		engineers = append(engineers, u)
	}
	return engineers, nil
}
