package database

import (
	"gorm.io/gorm"

	"github.com/openvol/missionhub/internal/model"
)

type ApplicationQuery struct {
	Query[model.Application]
	id        uint
	missionID uint
	userID    uint
	state     model.ApplicationState
	blocking  bool
}

func NewApplicationQuery(db *gorm.DB) *ApplicationQuery {
	return &ApplicationQuery{
		Query: Query[model.Application]{
			db: db,
			// applications list oldest-first; id breaks appliedDate ties
			order: "applications.applied_date, applications.id",
		},
	}
}

func (q *ApplicationQuery) Id(id uint) *ApplicationQuery {
	if q == nil {
		return nil
	}

	q.id = id

	return q
}

func (q *ApplicationQuery) MissionId(id uint) *ApplicationQuery {
	if q == nil {
		return nil
	}

	q.missionID = id

	return q
}

func (q *ApplicationQuery) UserId(id uint) *ApplicationQuery {
	if q == nil {
		return nil
	}

	q.userID = id

	return q
}

func (q *ApplicationQuery) State(s model.ApplicationState) *ApplicationQuery {
	if q == nil {
		return nil
	}

	q.state = s

	return q
}

// Blocking selects applications that block mission deletion, i.e. pending
// or approved ones.
func (q *ApplicationQuery) Blocking() *ApplicationQuery {
	if q == nil {
		return nil
	}

	q.blocking = true

	return q
}

func (q *ApplicationQuery) Page(page, pageSize int) *ApplicationQuery {
	if q == nil {
		return nil
	}

	q.page = page
	q.pageSize = pageSize

	return q
}

func (q *ApplicationQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("applications.id = ?", q.id)
	}

	if q.missionID != 0 {
		tx = tx.Where("applications.mission_id = ?", q.missionID)
	}

	if q.userID != 0 {
		tx = tx.Where("applications.user_id = ?", q.userID)
	}

	if q.state != "" {
		tx = tx.Where("applications.state = ?", q.state)
	}

	if q.blocking {
		tx = tx.Where("applications.state IN ?",
			[]model.ApplicationState{model.StatePending, model.StateApproved})
	}

	return tx
}

func (q *ApplicationQuery) Get() []*model.Application {
	return q.get(q.where().Model(&model.Application{}))
}

func (q *ApplicationQuery) One() *model.Application {
	return q.one(q.where().Model(&model.Application{}))
}

func (q *ApplicationQuery) Count() int64 {
	return q.count(q.where().Model(&model.Application{}))
}

func (q *ApplicationQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Application{}), updates)
}
