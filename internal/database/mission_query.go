package database

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/openvol/missionhub/internal/model"
)

// missionSortColumns is the fixed sort-key enumeration for missions. An
// unrecognized key falls back to created_at. Keys are matched lowercased.
var missionSortColumns = map[string]string{
	"title":        "missions.title",
	"organisation": "missions.organisation_name",
	"organization": "missions.organisation_name",
	"startdate":    "missions.start_date",
	"enddate":      "missions.end_date",
	"missiontype":  "missions.mission_type",
	"country":      "countries.name",
	"city":         "cities.name",
	"theme":        "themes.name",
	"updatedat":    "missions.updated_at",
	"createdat":    "missions.created_at",
}

var missionSortJoins = map[string]string{
	"country": "LEFT JOIN countries ON countries.id = missions.country_id",
	"city":    "LEFT JOIN cities ON cities.id = missions.city_id",
	"theme":   "LEFT JOIN themes ON themes.id = missions.theme_id",
}

type MissionQuery struct {
	Query[model.Mission]
	id             uint
	title          string
	organisation   string
	search         string
	countryID      uint
	cityID         uint
	themeID        uint
	missionType    string
	startFrom      *time.Time
	startTo        *time.Time
	active         *bool
	startsAfter    *time.Time
	ongoingAt      *time.Time
	deadlineFrom   *time.Time
	deadlineTo     *time.Time
	sortKey        string
	sortDescending bool
}

func NewMissionQuery(db *gorm.DB) *MissionQuery {
	return &MissionQuery{
		Query: Query[model.Mission]{db: db},
	}
}

func (q *MissionQuery) Id(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.id = id

	return q
}

func (q *MissionQuery) Title(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.title = s

	return q
}

func (q *MissionQuery) Organisation(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.organisation = s

	return q
}

// Search matches title, description or organisation name.
func (q *MissionQuery) Search(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.search = s

	return q
}

func (q *MissionQuery) CountryId(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.countryID = id

	return q
}

func (q *MissionQuery) CityId(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.cityID = id

	return q
}

func (q *MissionQuery) ThemeId(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.themeID = id

	return q
}

func (q *MissionQuery) MissionType(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.missionType = s

	return q
}

func (q *MissionQuery) StartFrom(t time.Time) *MissionQuery {
	if q == nil {
		return nil
	}

	q.startFrom = &t

	return q
}

func (q *MissionQuery) StartTo(t time.Time) *MissionQuery {
	if q == nil {
		return nil
	}

	q.startTo = &t

	return q
}

func (q *MissionQuery) Active(v bool) *MissionQuery {
	if q == nil {
		return nil
	}

	q.active = &v

	return q
}

// StartsAfter selects missions that have not started at t.
func (q *MissionQuery) StartsAfter(t time.Time) *MissionQuery {
	if q == nil {
		return nil
	}

	q.startsAfter = &t

	return q
}

// OngoingAt selects missions that have started at t and not yet ended.
func (q *MissionQuery) OngoingAt(t time.Time) *MissionQuery {
	if q == nil {
		return nil
	}

	q.ongoingAt = &t

	return q
}

// DeadlineBetween selects missions whose registration deadline falls in
// [from, to].
func (q *MissionQuery) DeadlineBetween(from, to time.Time) *MissionQuery {
	if q == nil {
		return nil
	}

	q.deadlineFrom = &from
	q.deadlineTo = &to

	return q
}

func (q *MissionQuery) SortBy(key string, descending bool) *MissionQuery {
	if q == nil {
		return nil
	}

	q.sortKey = strings.ToLower(key)
	q.sortDescending = descending

	return q
}

func (q *MissionQuery) Page(page, pageSize int) *MissionQuery {
	if q == nil {
		return nil
	}

	q.page = page
	q.pageSize = pageSize

	return q
}

func (q *MissionQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("missions.id = ?", q.id)
	}

	if q.title != "" {
		tx = tx.Where("LOWER(missions.title) LIKE ?", substring(q.title))
	}

	if q.organisation != "" {
		tx = tx.Where("LOWER(missions.organisation_name) LIKE ?", substring(q.organisation))
	}

	if q.search != "" {
		s := substring(q.search)
		tx = tx.Where(
			"LOWER(missions.title) LIKE ? OR LOWER(missions.description) LIKE ? OR LOWER(missions.organisation_name) LIKE ?",
			s, s, s)
	}

	if q.countryID != 0 {
		tx = tx.Where("missions.country_id = ?", q.countryID)
	}

	if q.cityID != 0 {
		tx = tx.Where("missions.city_id = ?", q.cityID)
	}

	if q.themeID != 0 {
		tx = tx.Where("missions.theme_id = ?", q.themeID)
	}

	if q.missionType != "" {
		tx = tx.Where("missions.mission_type = ?", q.missionType)
	}

	if q.startFrom != nil {
		tx = tx.Where("missions.start_date >= ?", *q.startFrom)
	}

	if q.startTo != nil {
		tx = tx.Where("missions.start_date <= ?", *q.startTo)
	}

	if q.active != nil {
		tx = tx.Where("missions.is_active = ?", *q.active)
	}

	if q.startsAfter != nil {
		tx = tx.Where("missions.start_date > ?", *q.startsAfter)
	}

	if q.ongoingAt != nil {
		tx = tx.Where("missions.start_date <= ? AND (missions.end_date IS NULL OR missions.end_date >= ?)",
			*q.ongoingAt, *q.ongoingAt)
	}

	if q.deadlineFrom != nil && q.deadlineTo != nil {
		tx = tx.Where("missions.registration_deadline IS NOT NULL AND missions.registration_deadline BETWEEN ? AND ?",
			*q.deadlineFrom, *q.deadlineTo)
	}

	if join, ok := missionSortJoins[q.sortKey]; ok {
		tx = tx.Joins(join)
	}

	return tx
}

// orderClause appends the mission id so ties resolve by insertion order.
func (q *MissionQuery) orderClause() string {
	col, ok := missionSortColumns[q.sortKey]
	if !ok {
		col = "missions.created_at"
	}

	if q.sortDescending {
		col += " DESC"
	}

	return col + ", missions.id"
}

func (q *MissionQuery) Get() []*model.Mission {
	q.order = q.orderClause()

	return q.get(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) One() *model.Mission {
	return q.one(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) Count() int64 {
	return q.count(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Mission{}), updates)
}

// Delete removes the mission and its remaining applications in one
// transaction. Callers are expected to have checked for blocking
// applications first.
func (q *MissionQuery) Delete(id uint) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Mission{})

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNoRecord
		}

		return tx.Where("mission_id = ?", id).Delete(&model.Application{}).Error
	})
}
