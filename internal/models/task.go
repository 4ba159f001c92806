package models

import "time"

type TaskStatus string

const (
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	DueDate      *time.Time `gorm:"column:due_date;index" json:"due_date"`
	CreationDate time.Time  `gorm:"column:creation_date;not null;<-:create;index" json:"creation_date"`
	UpdateDate   time.Time  `gorm:"column:update_date;not null" json:"update_date"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS';index" json:"status"`
	ProjectID    uint64     `gorm:"not null;index" json:"project_id"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
