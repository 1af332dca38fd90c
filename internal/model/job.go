package model

import (
	"time"

	"gorm.io/datatypes"
)

type LocationType string

const (
	LocationOnSite LocationType = "On-site"
	LocationRemote LocationType = "Remote"
	LocationHybrid LocationType = "Hybrid"
)

func (l LocationType) Valid() bool {
	switch l {
	case LocationOnSite, LocationRemote, LocationHybrid:
		return true
	}
	return false
}

type JobType string

const (
	JobFullTime   JobType = "Full-time"
	JobPartTime   JobType = "Part-time"
	JobContract   JobType = "Contract"
	JobInternship JobType = "Internship"
)

func (j JobType) Valid() bool {
	switch j {
	case JobFullTime, JobPartTime, JobContract, JobInternship:
		return true
	}
	return false
}

const DefaultCompany = "Our Company"

type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `gorm:"size:10" json:"currency"`
}

// swagger:model Job
type Job struct {
	UUIDBase
	Title            string                      `gorm:"size:255;not null" json:"title"`
	Company          string                      `gorm:"size:255;not null" json:"company"`
	Location         string                      `gorm:"size:255;not null" json:"location"`
	LocationType     LocationType                `gorm:"size:20;not null" json:"locationType"`
	JobType          JobType                     `gorm:"size:20;not null;index" json:"jobType"`
	Experience       string                      `gorm:"size:100" json:"experience"`
	Salary           Salary                      `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Description      string                      `gorm:"type:text;not null" json:"description"`
	Responsibilities datatypes.JSONSlice[string] `gorm:"type:json" json:"responsibilities"`
	Requirements     datatypes.JSONSlice[string] `gorm:"type:json" json:"requirements"`
	Skills           datatypes.JSONSlice[string] `gorm:"type:json" json:"skills"`
	Benefits         datatypes.JSONSlice[string] `gorm:"type:json" json:"benefits"`
	Deadline         *time.Time                  `json:"deadline"`
	IsActive         bool                        `gorm:"not null;index" json:"isActive"`
	ApplicantCount   int                         `gorm:"not null" json:"applicantCount"`
	PostedBy         string                      `gorm:"type:varchar(36);not null;index" json:"postedBy"`
}

func (Job) TableName() string {
	return "jobs"
}
