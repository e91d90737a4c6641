package mappers

import (
	"civicgrid/internal/domain/user"
	"civicgrid/internal/infrastructure/persistence/models"
	"civicgrid/internal/shared/authorization"
)

type UserMapper interface {
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Name,
		model.Email,
		authorization.Role(model.Role),
		model.WardID,
		model.ZoneID,
		model.Department,
		model.Active,
		model.CreatedAt,
	)
}
