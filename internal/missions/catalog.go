package missions

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/openvol/missionhub/internal/database"
	"github.com/openvol/missionhub/internal/model"
)

// MissionFilter describes one list request. Zero values are no-ops.
type MissionFilter struct {
	Title              string
	Organisation       string
	Search             string
	CountryID          uint
	CityID             uint
	ThemeID            uint
	MissionType        string
	StartFrom          *time.Time
	StartTo            *time.Time
	IsActive           *bool
	DeadlineWithinDays int
	SortBy             string
	SortDescending     bool
	Page               int
	PageSize           int
}

// MissionStats is the admin rollup over the catalog.
type MissionStats struct {
	Total    int64 `json:"totalMissions"`
	Active   int64 `json:"activeMissions"`
	Upcoming int64 `json:"upcomingMissions"`
	Ongoing  int64 `json:"ongoingMissions"`
}

// Catalog owns mission records. All writes run the referential validator
// first; nothing is persisted on a validation failure.
type Catalog struct {
	dbm       *database.DatabaseManager
	validator *Validator
	logger    *slog.Logger
}

func NewCatalog(dbm *database.DatabaseManager) *Catalog {
	return &Catalog{
		dbm:       dbm,
		validator: NewValidator(dbm),
		logger:    slog.Default().With("logger", "catalog"),
	}
}

func (c *Catalog) Get(id uint) *model.Mission {
	return c.dbm.MissionQuery().Id(id).One()
}

func (c *Catalog) Create(m *model.Mission, actorID uint) error {
	violations := validateFields(m)
	violations = append(violations, c.validator.Validate(m)...)

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	m.CreatedAt = time.Now()
	m.UpdatedAt = nil

	if err := c.dbm.Create(m); err != nil {
		return fmt.Errorf("create mission: %w", err)
	}

	c.logger.Info("mission created",
		slog.Uint64("id", uint64(m.ID)), slog.Uint64("actor", uint64(actorID)))

	return nil
}

// Update applies scalar fields only; id and createdAt never change.
func (c *Catalog) Update(id uint, patch *model.Mission, actorID uint) (*model.Mission, error) {
	existing := c.Get(id)

	if existing == nil {
		return nil, ErrMissionNotFound
	}

	violations := validateFields(patch)
	violations = append(violations, c.validator.Validate(patch)...)

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	existing.Title = patch.Title
	existing.Description = patch.Description
	existing.OrganisationName = patch.OrganisationName
	existing.OrganisationDetail = patch.OrganisationDetail
	existing.CountryID = patch.CountryID
	existing.CityID = patch.CityID
	existing.ThemeID = patch.ThemeID
	existing.SkillID = patch.SkillID
	existing.StartDate = patch.StartDate
	existing.EndDate = patch.EndDate
	existing.RegistrationDeadline = patch.RegistrationDeadline
	existing.MissionType = patch.MissionType
	existing.TotalSeats = patch.TotalSeats
	existing.Images = patch.Images
	existing.Documents = patch.Documents
	existing.VideoURL = patch.VideoURL
	existing.IsActive = patch.IsActive

	now := time.Now()
	existing.UpdatedAt = &now

	if err := c.dbm.Save(existing); err != nil {
		return nil, fmt.Errorf("update mission: %w", err)
	}

	c.logger.Info("mission updated",
		slog.Uint64("id", uint64(id)), slog.Uint64("actor", uint64(actorID)))

	return existing, nil
}

// Delete is a hard delete. It is refused while pending or approved
// applications reference the mission; remaining rejected applications are
// removed with the mission.
func (c *Catalog) Delete(id uint) error {
	if c.Get(id) == nil {
		return ErrMissionNotFound
	}

	if n := c.dbm.ApplicationQuery().MissionId(id).Blocking().Count(); n > 0 {
		return ErrMissionHasApplications
	}

	if err := c.dbm.MissionQuery().Delete(id); err != nil {
		return fmt.Errorf("delete mission: %w", err)
	}

	c.logger.Info("mission deleted", slog.Uint64("id", uint64(id)))

	return nil
}

func (c *Catalog) List(f MissionFilter) ([]*model.Mission, int64) {
	q := c.query(f)

	return q.Get(), q.Count()
}

// Upcoming lists active missions that have not started yet, soonest first.
func (c *Catalog) Upcoming(now time.Time) []*model.Mission {
	return c.dbm.MissionQuery().
		Active(true).
		StartsAfter(now).
		SortBy("startDate", false).
		Get()
}

// Ongoing lists active missions that have started and not ended.
func (c *Catalog) Ongoing(now time.Time) []*model.Mission {
	return c.dbm.MissionQuery().
		Active(true).
		OngoingAt(now).
		SortBy("startDate", false).
		Get()
}

func (c *Catalog) Statistics(now time.Time) *MissionStats {
	return &MissionStats{
		Total:    c.dbm.MissionQuery().Count(),
		Active:   c.dbm.MissionQuery().Active(true).Count(),
		Upcoming: c.dbm.MissionQuery().Active(true).StartsAfter(now).Count(),
		Ongoing:  c.dbm.MissionQuery().Active(true).OngoingAt(now).Count(),
	}
}

func (c *Catalog) query(f MissionFilter) *database.MissionQuery {
	q := c.dbm.MissionQuery().
		Title(f.Title).
		Organisation(f.Organisation).
		Search(f.Search).
		CountryId(f.CountryID).
		CityId(f.CityID).
		ThemeId(f.ThemeID).
		MissionType(f.MissionType).
		SortBy(f.SortBy, f.SortDescending).
		Page(f.Page, f.PageSize)

	if f.StartFrom != nil {
		q = q.StartFrom(*f.StartFrom)
	}

	if f.StartTo != nil {
		q = q.StartTo(*f.StartTo)
	}

	if f.IsActive != nil {
		q = q.Active(*f.IsActive)
	}

	if f.DeadlineWithinDays > 0 {
		now := time.Now()
		q = q.DeadlineBetween(now, now.AddDate(0, 0, f.DeadlineWithinDays))
	}

	return q
}

func validateFields(m *model.Mission) []string {
	var violations []string

	if m.Title == "" {
		violations = append(violations, "title is required")
	} else if len(m.Title) > 200 {
		violations = append(violations, "title is longer than 200 characters")
	}

	if m.Description == "" {
		violations = append(violations, "description is required")
	} else if len(m.Description) > 2000 {
		violations = append(violations, "description is longer than 2000 characters")
	}

	if m.OrganisationName == "" {
		violations = append(violations, "organisation name is required")
	} else if len(m.OrganisationName) > 200 {
		violations = append(violations, "organisation name is longer than 200 characters")
	}

	if len(m.OrganisationDetail) > 1000 {
		violations = append(violations, "organisation detail is longer than 1000 characters")
	}

	if m.MissionType != model.MissionTypeTime && m.MissionType != model.MissionTypeGoal {
		violations = append(violations, fmt.Sprintf("mission type must be %s or %s",
			model.MissionTypeTime, model.MissionTypeGoal))
	}

	if m.StartDate.IsZero() {
		violations = append(violations, "start date is required")
	}

	if m.EndDate != nil && !m.EndDate.After(m.StartDate) {
		violations = append(violations, "end date must be after start date")
	}

	if m.RegistrationDeadline != nil && !m.RegistrationDeadline.Before(m.StartDate) {
		violations = append(violations, "registration deadline must precede start date")
	}

	if m.TotalSeats != nil && *m.TotalSeats < 0 {
		violations = append(violations, "total seats must not be negative")
	}

	return violations
}
