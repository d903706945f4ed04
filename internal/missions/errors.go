package missions

import (
	"errors"
	"strings"
)

var (
	ErrMissionNotFound        = errors.New("mission not found")
	ErrMissionInactive        = errors.New("mission is not active")
	ErrAlreadyApplied         = errors.New("already applied for this mission")
	ErrApplicationNotFound    = errors.New("application not found")
	ErrCannotCancelApproved   = errors.New("cannot cancel an approved application")
	ErrMissionHasApplications = errors.New("mission has pending or approved applications")
)

// ValidationError carries every violation found before any mutation.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}
