package model

import (
	"time"
)

// RefNames resolves reference-data ids to display names. Implemented by the
// database layer; DTO conversion never walks object graphs.
type RefNames interface {
	CountryName(id uint) string
	CityName(id uint) string
	ThemeName(id uint) string
	SkillName(id uint) string
}

// Page is the envelope returned by every list endpoint. TotalCount is
// computed over the filtered set before windowing.
type Page[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](data []T, totalCount int64, page, pageSize int) *Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return &Page[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

type MissionDTO struct {
	ID                   uint       `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	OrganisationName     string     `json:"organisationName"`
	OrganisationDetail   string     `json:"organisationDetail,omitempty"`
	CountryID            uint       `json:"countryId"`
	CountryName          string     `json:"countryName"`
	CityID               uint       `json:"cityId"`
	CityName             string     `json:"cityName"`
	ThemeID              uint       `json:"themeId"`
	ThemeName            string     `json:"themeName"`
	SkillID              *uint      `json:"skillId,omitempty"`
	SkillName            string     `json:"skillName,omitempty"`
	StartDate            time.Time  `json:"startDate"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	MissionType          string     `json:"missionType"`
	TotalSeats           *int       `json:"totalSeats,omitempty"`
	Images               string     `json:"images,omitempty"`
	Documents            string     `json:"documents,omitempty"`
	VideoURL             string     `json:"videoUrl,omitempty"`
	IsActive             bool       `json:"isActive"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
}

func ToMissionDTO(m *Mission, names RefNames, now time.Time) *MissionDTO {
	if m == nil {
		return nil
	}

	dto := &MissionDTO{
		ID:                   m.ID,
		Title:                m.Title,
		Description:          m.Description,
		OrganisationName:     m.OrganisationName,
		OrganisationDetail:   m.OrganisationDetail,
		CountryID:            m.CountryID,
		CityID:               m.CityID,
		ThemeID:              m.ThemeID,
		SkillID:              m.SkillID,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		RegistrationDeadline: m.RegistrationDeadline,
		MissionType:          m.MissionType,
		TotalSeats:           m.TotalSeats,
		Images:               m.Images,
		Documents:            m.Documents,
		VideoURL:             m.VideoURL,
		IsActive:             m.IsActive,
		Status:               m.DerivedStatus(now),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	if names != nil {
		dto.CountryName = names.CountryName(m.CountryID)
		dto.CityName = names.CityName(m.CityID)
		dto.ThemeName = names.ThemeName(m.ThemeID)

		if m.SkillID != nil {
			dto.SkillName = names.SkillName(*m.SkillID)
		}
	}

	return dto
}

type ApplicationDTO struct {
	ID               uint             `json:"id"`
	MissionID        uint             `json:"missionId"`
	UserID           uint             `json:"userId"`
	AppliedDate      time.Time        `json:"appliedDate"`
	Seats            int              `json:"seats"`
	Message          string           `json:"message,omitempty"`
	State            ApplicationState `json:"state"`
	Comments         string           `json:"comments,omitempty"`
	MissionTitle     string           `json:"missionTitle,omitempty"`
	MissionStartDate *time.Time       `json:"missionStartDate,omitempty"`
	MissionEndDate   *time.Time       `json:"missionEndDate,omitempty"`
}

// ToApplicationDTO joins an application with its mission, loaded by the
// caller. The mission may be nil if it was removed after the application
// was rejected.
func ToApplicationDTO(a *Application, m *Mission) *ApplicationDTO {
	if a == nil {
		return nil
	}

	dto := &ApplicationDTO{
		ID:          a.ID,
		MissionID:   a.MissionID,
		UserID:      a.UserID,
		AppliedDate: a.AppliedDate,
		Seats:       a.Seats,
		Message:     a.Message,
		State:       a.State,
		Comments:    a.Comments,
	}

	if m != nil {
		dto.MissionTitle = m.Title
		start := m.StartDate
		dto.MissionStartDate = &start
		dto.MissionEndDate = m.EndDate
	}

	return dto
}
