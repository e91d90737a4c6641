package mappers

import (
	"civicgrid/internal/domain/category"
	"civicgrid/internal/infrastructure/persistence/models"
)

type CategoryMapper interface {
	ToDomain(model *models.CategoryModel) (*category.Category, error)
}

type CategoryMapperImpl struct{}

func NewCategoryMapper() CategoryMapper {
	return &CategoryMapperImpl{}
}

func (m *CategoryMapperImpl) ToDomain(model *models.CategoryModel) (*category.Category, error) {
	return category.ReconstructCategory(model.ID, model.Name, model.Department, model.SLAHours)
}
