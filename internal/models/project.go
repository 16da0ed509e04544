package models

import "time"

type Project struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_projects_owner_name" json:"name"`
	Desc      string    `gorm:"type:text" json:"desc"`
	OwnerID   uint64    `gorm:"not null;index;uniqueIndex:uq_projects_owner_name" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner  User    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Issues []Issue `gorm:"foreignKey:ProjectID" json:"issues,omitempty"`
}
