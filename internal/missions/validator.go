package missions

import (
	"fmt"

	"github.com/openvol/missionhub/internal/database"
	"github.com/openvol/missionhub/internal/model"
)

// Validator checks that every reference on a mission resolves and that the
// city belongs to the mission's country. All violations are collected, on
// create and update alike, so the caller can report them in one round trip.
type Validator struct {
	dbm *database.DatabaseManager
}

func NewValidator(dbm *database.DatabaseManager) *Validator {
	return &Validator{dbm: dbm}
}

func (v *Validator) Validate(m *model.Mission) []string {
	var violations []string

	if !v.dbm.CountryExists(m.CountryID) {
		violations = append(violations, fmt.Sprintf("country with id %d does not exist", m.CountryID))
	}

	city := v.dbm.CityByID(m.CityID)

	switch {
	case city == nil:
		violations = append(violations, fmt.Sprintf("city with id %d does not exist", m.CityID))
	case city.CountryID != m.CountryID:
		violations = append(violations,
			fmt.Sprintf("city %d does not belong to country %d", m.CityID, m.CountryID))
	}

	if !v.dbm.ThemeExists(m.ThemeID) {
		violations = append(violations, fmt.Sprintf("theme with id %d does not exist", m.ThemeID))
	}

	if m.SkillID != nil && !v.dbm.SkillExists(*m.SkillID) {
		violations = append(violations, fmt.Sprintf("skill with id %d does not exist", *m.SkillID))
	}

	return violations
}
