package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"civicgrid/internal/domain/ward"
	"civicgrid/internal/infrastructure/persistence/models"
)

// WardMapper handles the conversion between ward domain entities and
// persistence models. Boundaries are stored as JSON vertex arrays.
type WardMapper interface {
	ToModel(w *ward.Ward) (*models.WardModel, error)
	ToDomain(model *models.WardModel) (*ward.Ward, error)
	ZoneToDomain(model *models.ZoneModel) (*ward.Zone, error)
}

type WardMapperImpl struct{}

func NewWardMapper() WardMapper {
	return &WardMapperImpl{}
}

func (m *WardMapperImpl) ToModel(w *ward.Ward) (*models.WardModel, error) {
	boundary, err := w.Boundary().Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ward boundary: %w", err)
	}
	return &models.WardModel{
		ID:       w.ID(),
		Name:     w.Name(),
		ZoneID:   w.ZoneID(),
		Boundary: datatypes.JSON(boundary),
		Active:   w.IsActive(),
	}, nil
}

func (m *WardMapperImpl) ToDomain(model *models.WardModel) (*ward.Ward, error) {
	boundary, err := ward.ParsePolygon([]byte(model.Boundary))
	if err != nil {
		return nil, fmt.Errorf("ward %d has invalid boundary: %w", model.ID, err)
	}
	return ward.ReconstructWard(model.ID, model.Name, model.ZoneID, boundary, model.Active)
}

func (m *WardMapperImpl) ZoneToDomain(model *models.ZoneModel) (*ward.Zone, error) {
	return ward.ReconstructZone(model.ID, model.Name)
}
