package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FAQ is a published help article. Rows with IsPublished=false created by a
// non-staff user are content suggestions awaiting review; approving publishes
// them in place, rejecting soft-deletes them.
type FAQ struct {
	gorm.Model
	CategoryID  uint           `json:"category_id"`
	Question    string         `json:"question" gorm:"not null"`
	Answer      string         `json:"answer" gorm:"not null"`
	Tags        datatypes.JSON `json:"tags"` // ordered list of strings
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsFeatured  bool           `json:"is_featured" gorm:"default:false"`
	Helpful     int            `json:"helpful" gorm:"default:0"`
	NotHelpful  int            `json:"not_helpful" gorm:"default:0"`
	CreatedBy   uint           `json:"created_by"`
	IsDeleted   bool           `json:"is_deleted" gorm:"default:false"`

	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
}
