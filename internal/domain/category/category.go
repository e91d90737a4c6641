// Package category holds the static issue classification reference data.
// Categories are read-only with respect to the lifecycle core.
package category

import (
	"context"
	"fmt"
)

type Category struct {
	id         uint
	name       string
	department string
	slaHours   int
}

func ReconstructCategory(id uint, name, department string, slaHours int) (*Category, error) {
	if id == 0 {
		return nil, fmt.Errorf("category ID cannot be zero")
	}
	if slaHours <= 0 {
		return nil, fmt.Errorf("category SLA hours must be positive")
	}
	return &Category{
		id:         id,
		name:       name,
		department: department,
		slaHours:   slaHours,
	}, nil
}

func (c *Category) ID() uint           { return c.id }
func (c *Category) Name() string       { return c.name }
func (c *Category) Department() string { return c.department }
func (c *Category) SLAHours() int      { return c.slaHours }

// CategoryRepository reads categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uint) (*Category, error)
	ListAll(ctx context.Context) ([]*Category, error)
}
