package models

import (
	"math"
	"time"
)

type Project struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	Title            string    `gorm:"type:varchar(255);not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	CreationDate     time.Time `gorm:"column:creation_date;not null;<-:create" json:"creation_date"`
	LastModifiedDate time.Time `gorm:"column:last_modified_date;not null;index" json:"last_modified_date"`
	UserID           uint64    `gorm:"not null;index" json:"user_id"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

// TotalTasks reports the number of tasks in the loaded snapshot.
func (p *Project) TotalTasks() int {
	return len(p.Tasks)
}

// CompletedTasks reports how many tasks in the loaded snapshot are
// completed.
func (p *Project) CompletedTasks() int {
	count := 0
	for _, t := range p.Tasks {
		if t.Status == TaskStatusCompleted {
			count++
		}
	}
	return count
}

// ProgressPercentage derives completion progress from the loaded
// snapshot, rounded to one decimal place. Empty projects report 0.0.
func (p *Project) ProgressPercentage() float64 {
	total := p.TotalTasks()
	if total == 0 {
		return 0.0
	}
	percentage := float64(p.CompletedTasks()) * 100.0 / float64(total)
	return math.Round(percentage*10.0) / 10.0
}
