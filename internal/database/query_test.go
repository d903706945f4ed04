package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openvol/missionhub/internal/model"
)

func getTestDatabase(t *testing.T) *DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := New(db)
	require.NoError(t, dbm.Migrate())

	return dbm
}

func seedMissions(t *testing.T, dbm *DatabaseManager, n int) []*model.Mission {
	t.Helper()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	res := make([]*model.Mission, 0, n)

	for i := 0; i < n; i++ {
		m := &model.Mission{
			Title:            fmt.Sprintf("mission %c", 'a'+i),
			Description:      "desc",
			OrganisationName: "org",
			CountryID:        1,
			CityID:           1,
			ThemeID:          1,
			StartDate:        base.AddDate(0, 0, i),
			MissionType:      model.MissionTypeTime,
			IsActive:         true,
			CreatedAt:        base.AddDate(0, 0, -n+i),
		}
		require.NoError(t, dbm.Create(m))
		res = append(res, m)
	}

	return res
}

func TestMissionQuery_Pagination(t *testing.T) {
	dbm := getTestDatabase(t)
	seedMissions(t, dbm, 5)

	assert.EqualValues(t, 5, dbm.MissionQuery().Count())

	p1 := dbm.MissionQuery().SortBy("title", false).Page(1, 2).Get()
	require.Len(t, p1, 2)
	assert.Equal(t, "mission a", p1[0].Title)
	assert.Equal(t, "mission b", p1[1].Title)

	p2 := dbm.MissionQuery().SortBy("title", false).Page(2, 2).Get()
	require.Len(t, p2, 2)
	assert.Equal(t, "mission c", p2[0].Title)

	p3 := dbm.MissionQuery().SortBy("title", false).Page(3, 2).Get()
	require.Len(t, p3, 1)
	assert.Equal(t, "mission e", p3[0].Title)

	// out of range page is an empty window, not an error
	assert.Empty(t, dbm.MissionQuery().SortBy("title", false).Page(10, 2).Get())

	// count is not affected by the window
	assert.EqualValues(t, 5, dbm.MissionQuery().Page(10, 2).Count())
}

func TestMissionQuery_SortFallback(t *testing.T) {
	dbm := getTestDatabase(t)
	seedMissions(t, dbm, 3)

	// unknown sort key falls back to creation order
	list := dbm.MissionQuery().SortBy("bogus", false).Get()
	require.Len(t, list, 3)
	assert.Equal(t, "mission a", list[0].Title)
	assert.Equal(t, "mission c", list[2].Title)

	desc := dbm.MissionQuery().SortBy("startDate", true).Get()
	require.Len(t, desc, 3)
	assert.Equal(t, "mission c", desc[0].Title)
}

func TestMissionQuery_SortTieBreak(t *testing.T) {
	dbm := getTestDatabase(t)

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, dbm.Create(&model.Mission{
			Title:            "same",
			Description:      "d",
			OrganisationName: "o",
			CountryID:        1, CityID: 1, ThemeID: 1,
			StartDate:   created,
			MissionType: model.MissionTypeTime,
			CreatedAt:   created,
		}))
	}

	list := dbm.MissionQuery().SortBy("title", false).Get()
	require.Len(t, list, 3)
	assert.Less(t, list[0].ID, list[1].ID)
	assert.Less(t, list[1].ID, list[2].ID)
}

func TestMissionQuery_SortByCountryName(t *testing.T) {
	dbm := getTestDatabase(t)

	require.NoError(t, dbm.Create(&model.Country{ID: 1, Name: "Zimbabwe"}))
	require.NoError(t, dbm.Create(&model.Country{ID: 2, Name: "Albania"}))

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, dbm.Create(&model.Mission{
		Title: "first", Description: "d", OrganisationName: "o",
		CountryID: 1, CityID: 1, ThemeID: 1,
		StartDate: start, MissionType: model.MissionTypeTime, CreatedAt: start,
	}))
	require.NoError(t, dbm.Create(&model.Mission{
		Title: "second", Description: "d", OrganisationName: "o",
		CountryID: 2, CityID: 1, ThemeID: 1,
		StartDate: start, MissionType: model.MissionTypeTime, CreatedAt: start,
	}))

	list := dbm.MissionQuery().SortBy("country", false).Get()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestMissionQuery_Filters(t *testing.T) {
	dbm := getTestDatabase(t)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, -5)

	require.NoError(t, dbm.Create(&model.Mission{
		Title: "Beach Cleanup", Description: "clean the shore", OrganisationName: "Green Org",
		CountryID: 1, CityID: 1, ThemeID: 1,
		StartDate: start, RegistrationDeadline: &deadline,
		MissionType: model.MissionTypeTime, IsActive: true, CreatedAt: start,
	}))
	require.NoError(t, dbm.Create(&model.Mission{
		Title: "Food Drive", Description: "collect food", OrganisationName: "Food Bank",
		CountryID: 2, CityID: 2, ThemeID: 2,
		StartDate:   start.AddDate(0, 1, 0),
		MissionType: model.MissionTypeGoal, IsActive: false, CreatedAt: start,
	}))

	// title match is case-insensitive substring
	assert.EqualValues(t, 1, dbm.MissionQuery().Title("beach").Count())
	assert.EqualValues(t, 1, dbm.MissionQuery().Organisation("bank").Count())

	// search spans title, description and organisation
	assert.EqualValues(t, 1, dbm.MissionQuery().Search("shore").Count())
	assert.EqualValues(t, 1, dbm.MissionQuery().Search("FOOD BANK").Count())

	assert.EqualValues(t, 1, dbm.MissionQuery().CountryId(2).Count())
	assert.EqualValues(t, 1, dbm.MissionQuery().MissionType(model.MissionTypeGoal).Count())
	assert.EqualValues(t, 1, dbm.MissionQuery().Active(true).Count())

	assert.EqualValues(t, 1, dbm.MissionQuery().StartFrom(start.AddDate(0, 0, 15)).Count())
	assert.EqualValues(t, 1, dbm.MissionQuery().StartTo(start.AddDate(0, 0, 15)).Count())

	assert.EqualValues(t, 1,
		dbm.MissionQuery().DeadlineBetween(start.AddDate(0, 0, -10), start).Count())
	assert.EqualValues(t, 0,
		dbm.MissionQuery().DeadlineBetween(start.AddDate(0, 0, -4), start).Count())
}

func TestMissionQuery_UpcomingOngoing(t *testing.T) {
	dbm := getTestDatabase(t)

	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, 10)

	require.NoError(t, dbm.Create(&model.Mission{
		Title: "future", Description: "d", OrganisationName: "o",
		CountryID: 1, CityID: 1, ThemeID: 1,
		StartDate: now.AddDate(0, 0, 5), MissionType: model.MissionTypeTime,
		IsActive: true, CreatedAt: now,
	}))
	require.NoError(t, dbm.Create(&model.Mission{
		Title: "running", Description: "d", OrganisationName: "o",
		CountryID: 1, CityID: 1, ThemeID: 1,
		StartDate: now.AddDate(0, 0, -5), EndDate: &end, MissionType: model.MissionTypeTime,
		IsActive: true, CreatedAt: now,
	}))
	require.NoError(t, dbm.Create(&model.Mission{
		Title: "open ended", Description: "d", OrganisationName: "o",
		CountryID: 1, CityID: 1, ThemeID: 1,
		StartDate: now.AddDate(0, 0, -30), MissionType: model.MissionTypeTime,
		IsActive: true, CreatedAt: now,
	}))

	up := dbm.MissionQuery().StartsAfter(now).Get()
	require.Len(t, up, 1)
	assert.Equal(t, "future", up[0].Title)

	on := dbm.MissionQuery().OngoingAt(now).Get()
	assert.Len(t, on, 2)
}

func TestMissionQuery_DeleteCascades(t *testing.T) {
	dbm := getTestDatabase(t)
	ms := seedMissions(t, dbm, 2)

	require.NoError(t, dbm.Create(&model.Application{
		MissionID: ms[0].ID, UserID: 1, AppliedDate: time.Now(),
		Seats: 1, State: model.StateRejected,
	}))
	require.NoError(t, dbm.Create(&model.Application{
		MissionID: ms[1].ID, UserID: 1, AppliedDate: time.Now(),
		Seats: 1, State: model.StatePending,
	}))

	require.NoError(t, dbm.MissionQuery().Delete(ms[0].ID))

	assert.Nil(t, dbm.MissionQuery().Id(ms[0].ID).One())
	assert.EqualValues(t, 0, dbm.ApplicationQuery().MissionId(ms[0].ID).Count())
	assert.EqualValues(t, 1, dbm.ApplicationQuery().MissionId(ms[1].ID).Count())

	assert.ErrorIs(t, dbm.MissionQuery().Delete(ms[0].ID), ErrNoRecord)
}

func TestApplicationQuery(t *testing.T) {
	dbm := getTestDatabase(t)
	ms := seedMissions(t, dbm, 1)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i, st := range []model.ApplicationState{model.StatePending, model.StateApproved, model.StateRejected} {
		require.NoError(t, dbm.Create(&model.Application{
			MissionID: ms[0].ID, UserID: uint(i + 1),
			AppliedDate: base.AddDate(0, 0, i), Seats: 1, State: st,
		}))
	}

	assert.EqualValues(t, 3, dbm.ApplicationQuery().MissionId(ms[0].ID).Count())
	assert.EqualValues(t, 1, dbm.ApplicationQuery().State(model.StatePending).Count())

	// pending and approved block deletion, rejected does not
	assert.EqualValues(t, 2, dbm.ApplicationQuery().MissionId(ms[0].ID).Blocking().Count())

	list := dbm.ApplicationQuery().MissionId(ms[0].ID).Get()
	require.Len(t, list, 3)
	assert.Equal(t, model.StatePending, list[0].State)

	require.NoError(t, dbm.ApplicationQuery().Id(list[0].ID).Update(map[string]any{"state": model.StateApproved}))
	assert.Equal(t, model.StateApproved, dbm.ApplicationQuery().Id(list[0].ID).One().State)

	assert.ErrorIs(t, dbm.ApplicationQuery().Id(9999).Update(map[string]any{"state": model.StateApproved}), ErrNoRecord)
}

func TestApplicationUniqueIndex(t *testing.T) {
	dbm := getTestDatabase(t)
	ms := seedMissions(t, dbm, 1)

	require.NoError(t, dbm.Create(&model.Application{
		MissionID: ms[0].ID, UserID: 7, AppliedDate: time.Now(), Seats: 1, State: model.StatePending,
	}))

	err := dbm.Create(&model.Application{
		MissionID: ms[0].ID, UserID: 7, AppliedDate: time.Now(), Seats: 1, State: model.StatePending,
	})

	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// same user on another mission is fine
	ms2 := &model.Mission{
		Title: "other", Description: "d", OrganisationName: "o",
		CountryID: 1, CityID: 1, ThemeID: 1,
		StartDate: time.Now(), MissionType: model.MissionTypeTime, CreatedAt: time.Now(),
	}
	require.NoError(t, dbm.Create(ms2))
	require.NoError(t, dbm.Create(&model.Application{
		MissionID: ms2.ID, UserID: 7, AppliedDate: time.Now(), Seats: 1, State: model.StatePending,
	}))
}
