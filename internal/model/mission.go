package model

import (
	"time"
)

const (
	MissionTypeTime = "TIME"
	MissionTypeGoal = "GOAL"
)

// Derived mission status values. There is no stored status field - the
// status is always computed from isActive and the mission dates.
const (
	StatusInactive  = "inactive"
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

type Mission struct {
	ID                   uint       `gorm:"primarykey" json:"id"`
	Title                string     `gorm:"size:200;not null;index" json:"title"`
	Description          string     `gorm:"size:2000;not null" json:"description"`
	OrganisationName     string     `gorm:"size:200;not null" json:"organisationName"`
	OrganisationDetail   string     `gorm:"size:1000" json:"organisationDetail"`
	CountryID            uint       `gorm:"not null;index" json:"countryId"`
	CityID               uint       `gorm:"not null;index" json:"cityId"`
	ThemeID              uint       `gorm:"not null;index" json:"themeId"`
	SkillID              *uint      `json:"skillId"`
	StartDate            time.Time  `gorm:"not null;index" json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	MissionType          string     `gorm:"size:50;not null" json:"missionType"`
	TotalSeats           *int       `json:"totalSeats"`
	Images               string     `gorm:"size:2000" json:"images"`
	Documents            string     `gorm:"size:2000" json:"documents"`
	VideoURL             string     `gorm:"size:500" json:"videoUrl"`
	IsActive             bool       `gorm:"index" json:"isActive"`
	CreatedAt            time.Time  `gorm:"autoCreateTime:false;index" json:"createdAt"`
	UpdatedAt            *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (m *Mission) DerivedStatus(now time.Time) string {
	switch {
	case !m.IsActive:
		return StatusInactive
	case now.Before(m.StartDate):
		return StatusUpcoming
	case m.EndDate == nil || !now.After(*m.EndDate):
		return StatusOngoing
	default:
		return StatusCompleted
	}
}
