package models

import (
	"time"

	"gorm.io/datatypes"
)

type WardModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"size:100;not null"`
	ZoneID    uint           `gorm:"not null;index"`
	Boundary  datatypes.JSON `gorm:"not null"`
	Active    bool           `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WardModel) TableName() string {
	return "wards"
}

type ZoneModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ZoneModel) TableName() string {
	return "zones"
}
