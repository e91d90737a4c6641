package models

import "time"

type UserModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null"`
	Email      string `gorm:"uniqueIndex;size:255;not null"`
	Role       string `gorm:"size:20;not null;index"`
	WardID     *uint  `gorm:"index"`
	ZoneID     *uint  `gorm:"index"`
	Department string `gorm:"size:50;index"`
	Active     bool   `gorm:"not null;default:true;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UserModel) TableName() string {
	return "users"
}
