package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name          string `json:"name" gorm:"unique;not null"`
	Slug          string `json:"slug" gorm:"unique;not null"`
	Color         string `json:"color" gorm:"default:'gray'"`
	Description   string `json:"description" gorm:"default:''"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
	SortOrder     int    `json:"sort_order" gorm:"default:0"`
	SLAHours      int    `json:"sla_hours" gorm:"default:48"`
	CrisisEnabled bool   `json:"crisis_enabled" gorm:"default:false"`
	IsDeleted     bool   `json:"is_deleted" gorm:"default:false"`

	// Derived on list responses, never stored.
	FAQCount int64 `json:"faq_count" gorm:"-"`
}
