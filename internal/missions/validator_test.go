package missions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openvol/missionhub/internal/model"
)

func TestValidator_AllReferencesResolve(t *testing.T) {
	v := NewValidator(prepare(t))

	m := validMission()
	assert.Empty(t, v.Validate(m))

	skill := uint(1)
	m.SkillID = &skill
	assert.Empty(t, v.Validate(m))
}

func TestValidator_CollectsEveryViolation(t *testing.T) {
	v := NewValidator(prepare(t))

	skill := uint(99)
	m := &model.Mission{CountryID: 99, CityID: 99, ThemeID: 99, SkillID: &skill}

	got := v.Validate(m)

	assert.Equal(t, []string{
		"country with id 99 does not exist",
		"city with id 99 does not exist",
		"theme with id 99 does not exist",
		"skill with id 99 does not exist",
	}, got)
}

func TestValidator_CityCountryMismatch(t *testing.T) {
	v := NewValidator(prepare(t))

	m := validMission()
	m.CityID = 2 // Madrid, country 2

	got := v.Validate(m)

	assert.Equal(t, []string{"city 2 does not belong to country 1"}, got)
}

func TestValidator_SkillOptional(t *testing.T) {
	v := NewValidator(prepare(t))

	m := validMission()
	m.SkillID = nil

	assert.Empty(t, v.Validate(m))
}
