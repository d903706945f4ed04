package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/openvol/missionhub/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	mn := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return mn
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) MissionQuery() *MissionQuery {
	return NewMissionQuery(mm.db)
}

func (mm *DatabaseManager) ApplicationQuery() *ApplicationQuery {
	return NewApplicationQuery(mm.db)
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	// Migrate the schema
	if err := mm.db.AutoMigrate(
		&model.Mission{},
		&model.Application{},
		&model.Country{},
		&model.City{},
		&model.Theme{},
		&model.Skill{},
	); err != nil {
		return err
	}

	return nil
}

func (mm *DatabaseManager) DeleteApplication(id uint) error {
	res := mm.db.Where("id = ?", id).Delete(&model.Application{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNoRecord
	}

	return nil
}

// MissionsByID loads the missions for a page of applications in one query.
func (mm *DatabaseManager) MissionsByID(ids []uint) map[uint]*model.Mission {
	res := make(map[uint]*model.Mission, len(ids))

	if len(ids) == 0 {
		return res
	}

	var list []*model.Mission

	if err := mm.db.Where("id IN ?", ids).Find(&list).Error; err != nil {
		mm.logger.Error("error loading missions", slog.Any("error", err))

		return res
	}

	for _, m := range list {
		res[m.ID] = m
	}

	return res
}
