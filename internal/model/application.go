package model

import (
	"time"
)

type ApplicationState string

const (
	StatePending  ApplicationState = "pending"
	StateApproved ApplicationState = "approved"
	StateRejected ApplicationState = "rejected"
)

// Application is a user's request for seats on a mission. The unique index
// on (mission_id, user_id) is the authority for the one-application-per-user
// invariant - racing writers lose at the store, not in application code.
type Application struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	MissionID   uint             `gorm:"not null;uniqueIndex:idx_applications_mission_user" json:"missionId"`
	UserID      uint             `gorm:"not null;uniqueIndex:idx_applications_mission_user" json:"userId"`
	AppliedDate time.Time        `gorm:"index" json:"appliedDate"`
	Seats       int              `gorm:"not null" json:"seats"`
	Message     string           `gorm:"size:500" json:"message"`
	State       ApplicationState `gorm:"size:20;not null;index" json:"state"`
	Comments    string           `gorm:"size:500" json:"comments"`
}
