package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

type Education struct {
	Degree        string `json:"degree"`
	College       string `json:"college"`
	YearOfPassing string `json:"yearOfPassing"`
	Percentage    string `json:"percentage"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// swagger:model User
type User struct {
	UUIDBase
	FullName         string                          `gorm:"size:100;not null" json:"fullName"`
	Email            string                          `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password         string                          `gorm:"size:100;not null" json:"-"`
	Role             UserRole                        `gorm:"size:20;not null;index" json:"role"`
	Phone            string                          `gorm:"size:30" json:"phone"`
	Skills           datatypes.JSONSlice[string]     `gorm:"type:json" json:"skills"`
	Education        datatypes.JSONSlice[Education]  `gorm:"type:json" json:"education"`
	Experience       datatypes.JSONSlice[Experience] `gorm:"type:json" json:"experience"`
	ProfileCompleted bool                            `json:"profileCompleted"`
	LastLogin        *time.Time                      `json:"lastLogin"`
	LastSeen         *time.Time                      `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary 联表展示时只暴露的身份字段
type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email}
}
