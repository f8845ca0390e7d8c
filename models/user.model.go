package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent   = "STUDENT"
	RoleCounselor = "COUNSELOR"
	RoleAdvisor   = "ADVISOR"
	RoleAdmin     = "ADMIN"
)

// User account statuses
const (
	UserStatusActive    = "ACTIVE"
	UserStatusInactive  = "INACTIVE"
	UserStatusSuspended = "SUSPENDED"
)

type User struct {
	gorm.Model
	Name       string     `json:"name" gorm:"default:''"`
	Email      string     `json:"email" gorm:"unique;not null"`
	Password   string     `json:"-" gorm:"not null"`
	Role       string     `json:"role" gorm:"default:'STUDENT'"`
	Status     string     `json:"status" gorm:"default:'ACTIVE'"`
	Phone      string     `json:"phone" gorm:"default:''"`
	StudentID  string     `json:"student_id" gorm:"default:''"`
	EmployeeID string     `json:"employee_id" gorm:"default:''"`
	LastLogin  *time.Time `json:"last_login"`
	IsDeleted  bool       `json:"is_deleted" gorm:"default:false"`
}
