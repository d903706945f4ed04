package main

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openvol/missionhub/internal/missions"
	"github.com/openvol/missionhub/internal/model"
	"github.com/openvol/missionhub/pkg/log"
)

// UserAPI is the public surface: mission browsing is open, applying and
// managing own applications needs a token.
type UserAPI struct {
	f    *fiber.App
	addr string
}

func NewUserAPI(app *App, addr string) *UserAPI {
	api := &UserAPI{addr: addr}

	api.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true})

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "user_api", UserGetter: Username, DoMetrics: true}))

	api.f.Get("/api/missions", getMissionsHandler(app))
	api.f.Get("/api/missions/upcoming", getUpcomingMissionsHandler(app))
	api.f.Get("/api/missions/ongoing", getOngoingMissionsHandler(app))
	api.f.Get("/api/missions/:id", getMissionHandler(app))

	api.f.Get("/api/refdata/countries", getCountriesHandler(app))
	api.f.Get("/api/refdata/cities", getCitiesHandler(app))
	api.f.Get("/api/refdata/themes", getThemesHandler(app))
	api.f.Get("/api/refdata/skills", getSkillsHandler(app))

	auth := authRequired(app, false)

	api.f.Post("/api/missions/:id/apply", auth, getApplyHandler(app))
	api.f.Get("/api/my/applications", auth, getMyApplicationsHandler(app))
	api.f.Delete("/api/applications/:id", auth, getCancelHandler(app))

	return api
}

func (api *UserAPI) Address() string {
	return api.addr
}

func (api *UserAPI) Listen() error {
	return api.f.Listen(api.addr)
}

func (api *UserAPI) Shutdown() error {
	return api.f.Shutdown()
}

func missionFilterFromQuery(ctx *fiber.Ctx) (missions.MissionFilter, error) {
	startFrom, err := queryTime(ctx, "startFrom")
	if err != nil {
		return missions.MissionFilter{}, err
	}

	startTo, err := queryTime(ctx, "startTo")
	if err != nil {
		return missions.MissionFilter{}, err
	}

	page, pageSize := pageParams(ctx)

	return missions.MissionFilter{
		Title:              ctx.Query("title"),
		Organisation:       ctx.Query("organisation"),
		Search:             ctx.Query("search"),
		CountryID:          queryUint(ctx, "countryId"),
		CityID:             queryUint(ctx, "cityId"),
		ThemeID:            queryUint(ctx, "themeId"),
		MissionType:        ctx.Query("missionType"),
		StartFrom:          startFrom,
		StartTo:            startTo,
		IsActive:           queryBool(ctx, "isActive"),
		DeadlineWithinDays: ctx.QueryInt("deadlineWithinDays", 0),
		SortBy:             ctx.Query("sortBy"),
		SortDescending:     ctx.QueryBool("sortDesc", false),
		Page:               page,
		PageSize:           pageSize,
	}, nil
}

func toMissionDTOs(app *App, list []*model.Mission) []*model.MissionDTO {
	names := app.dbm.NameIndex()
	now := time.Now()

	res := make([]*model.MissionDTO, len(list))

	for i, m := range list {
		res[i] = model.ToMissionDTO(m, names, now)
	}

	return res
}

func getMissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		f, err := missionFilterFromQuery(ctx)
		if err != nil {
			return err
		}

		list, total := app.catalog.List(f)

		return ctx.JSON(model.NewPage(toMissionDTOs(app, list), total, f.Page, f.PageSize))
	}
}

func getUpcomingMissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(toMissionDTOs(app, app.catalog.Upcoming(time.Now())))
	}
}

func getOngoingMissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(toMissionDTOs(app, app.catalog.Ongoing(time.Now())))
	}
}

func getMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := paramID(ctx)

		if err != nil {
			return err
		}

		m := app.catalog.Get(id)

		if m == nil {
			return sendError(ctx, missions.ErrMissionNotFound)
		}

		return ctx.JSON(model.ToMissionDTO(m, app.dbm.NameIndex(), time.Now()))
	}
}

func getCountriesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.dbm.Countries())
	}
}

func getCitiesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.dbm.Cities(queryUint(ctx, "countryId")))
	}
}

func getThemesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.dbm.Themes())
	}
}

func getSkillsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.dbm.Skills())
	}
}

type applyRequest struct {
	Seats   int    `json:"seats"`
	Message string `json:"message"`
}

func getApplyHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := paramID(ctx)

		if err != nil {
			return err
		}

		req := new(applyRequest)

		if len(ctx.Body()) > 0 {
			if err := ctx.BodyParser(req); err != nil {
				return fiber.ErrBadRequest
			}
		}

		appID, err := app.workflow.Apply(User(ctx).ID, id, req.Seats, req.Message)

		if err != nil {
			return sendError(ctx, err)
		}

		applicationsCounter.WithLabelValues("apply").Inc()

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"id": appID, "state": model.StatePending})
	}
}

func getMyApplicationsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		list := app.workflow.ListMy(User(ctx).ID)

		ids := make([]uint, len(list))
		for i, a := range list {
			ids[i] = a.MissionID
		}

		byID := app.dbm.MissionsByID(ids)

		res := make([]*model.ApplicationDTO, len(list))
		for i, a := range list {
			res[i] = model.ToApplicationDTO(a, byID[a.MissionID])
		}

		return ctx.JSON(res)
	}
}

func getCancelHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := paramID(ctx)

		if err != nil {
			return err
		}

		if err := app.workflow.Cancel(id, User(ctx).ID); err != nil {
			return sendError(ctx, err)
		}

		applicationsCounter.WithLabelValues("cancel").Inc()

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}
