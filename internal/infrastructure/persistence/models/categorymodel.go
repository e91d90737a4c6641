package models

import "time"

type CategoryModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;size:100;not null"`
	Department string `gorm:"size:50;not null;index"`
	SLAHours   int    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CategoryModel) TableName() string {
	return "issue_categories"
}
