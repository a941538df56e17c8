package models

import (
	"time"

	"gorm.io/gorm"
)

type Priority struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Level     string         `gorm:"type:varchar(50);not null" json:"level"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks []Task `gorm:"foreignKey:PriorityID" json:"tasks,omitempty"`
}
