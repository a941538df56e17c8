package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	DueDate     *time.Time     `json:"due_date"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	CategoryID  *uint64        `gorm:"index" json:"category_id"`
	PriorityID  *uint64        `gorm:"index" json:"priority_id"`
	AssigneeID  *uint64        `gorm:"index" json:"assignee_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Priority *Priority `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
