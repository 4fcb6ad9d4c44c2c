package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
)

type User struct {
	gorm.Model
	ProfileImage string     `json:"profile_image" gorm:"default:''"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"unique;not null"`
	Password     string     `json:"-" gorm:"not null"`
	Role         string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER
	LastLogin    *time.Time `json:"last_login"`
	IsDeleted    bool       `json:"-" gorm:"default:false"`
}
