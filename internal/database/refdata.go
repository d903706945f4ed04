package database

import (
	"log/slog"

	"github.com/openvol/missionhub/internal/model"
)

func (mm *DatabaseManager) Countries() []*model.Country {
	var res []*model.Country

	mm.db.Order("name").Find(&res)

	return res
}

func (mm *DatabaseManager) Cities(countryID uint) []*model.City {
	var res []*model.City

	tx := mm.db.Order("name")

	if countryID != 0 {
		tx = tx.Where("country_id = ?", countryID)
	}

	tx.Find(&res)

	return res
}

func (mm *DatabaseManager) Themes() []*model.Theme {
	var res []*model.Theme

	mm.db.Order("name").Find(&res)

	return res
}

func (mm *DatabaseManager) Skills() []*model.Skill {
	var res []*model.Skill

	mm.db.Order("name").Find(&res)

	return res
}

func (mm *DatabaseManager) CountryExists(id uint) bool {
	var n int64

	mm.db.Model(&model.Country{}).Where("id = ?", id).Count(&n)

	return n > 0
}

func (mm *DatabaseManager) CityByID(id uint) *model.City {
	var cities []*model.City

	if err := mm.db.Where("id = ?", id).Limit(1).Find(&cities).Error; err != nil {
		mm.logger.Error("error loading city", slog.Any("error", err))

		return nil
	}

	if len(cities) == 0 {
		return nil
	}

	return cities[0]
}

func (mm *DatabaseManager) ThemeExists(id uint) bool {
	var n int64

	mm.db.Model(&model.Theme{}).Where("id = ?", id).Count(&n)

	return n > 0
}

func (mm *DatabaseManager) SkillExists(id uint) bool {
	var n int64

	mm.db.Model(&model.Skill{}).Where("id = ?", id).Count(&n)

	return n > 0
}

type nameIndex struct {
	countries map[uint]string
	cities    map[uint]string
	themes    map[uint]string
	skills    map[uint]string
}

func (n *nameIndex) CountryName(id uint) string { return n.countries[id] }
func (n *nameIndex) CityName(id uint) string    { return n.cities[id] }
func (n *nameIndex) ThemeName(id uint) string   { return n.themes[id] }
func (n *nameIndex) SkillName(id uint) string   { return n.skills[id] }

// NameIndex snapshots all reference-data names for DTO conversion. The
// reference sets are small, one load per request is cheaper than a join
// per row.
func (mm *DatabaseManager) NameIndex() model.RefNames {
	idx := &nameIndex{
		countries: make(map[uint]string),
		cities:    make(map[uint]string),
		themes:    make(map[uint]string),
		skills:    make(map[uint]string),
	}

	for _, c := range mm.Countries() {
		idx.countries[c.ID] = c.Name
	}

	for _, c := range mm.Cities(0) {
		idx.cities[c.ID] = c.Name
	}

	for _, t := range mm.Themes() {
		idx.themes[t.ID] = t.Name
	}

	for _, s := range mm.Skills() {
		idx.skills[s.ID] = s.Name
	}

	return idx
}
