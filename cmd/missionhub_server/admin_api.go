package main

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openvol/missionhub/internal/model"
	"github.com/openvol/missionhub/pkg/log"
)

// AdminAPI carries mission management and application review. Every route
// needs an admin token except /metrics.
type AdminAPI struct {
	f    *fiber.App
	addr string
}

func NewAdminAPI(app *App, addr string) *AdminAPI {
	api := &AdminAPI{addr: addr}

	api.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true})

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "admin_api", UserGetter: Username}))

	api.f.Get("/metrics", getMetricsHandler())

	auth := authRequired(app, true)

	api.f.Get("/api/config", auth, getConfigHandler(app))

	api.f.Post("/api/missions", auth, getCreateMissionHandler(app))
	api.f.Put("/api/missions/:id", auth, getUpdateMissionHandler(app))
	api.f.Delete("/api/missions/:id", auth, getDeleteMissionHandler(app))

	api.f.Get("/api/applications", auth, getApplicationsHandler(app))
	api.f.Get("/api/applications/pending", auth, getPendingApplicationsHandler(app))
	api.f.Put("/api/applications/:id/approve", auth, getDecisionHandler(app, true))
	api.f.Put("/api/applications/:id/reject", auth, getDecisionHandler(app, false))

	api.f.Get("/api/statistics", auth, getStatisticsHandler(app))
	api.f.Get("/api/statistics/missions", auth, getMissionStatisticsHandler(app))

	return api
}

func (api *AdminAPI) Address() string {
	return api.addr
}

func (api *AdminAPI) Listen() error {
	return api.f.Listen(api.addr)
}

func (api *AdminAPI) Shutdown() error {
	return api.f.Shutdown()
}

type missionRequest struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	OrganisationName     string     `json:"organisationName"`
	OrganisationDetail   string     `json:"organisationDetail"`
	CountryID            uint       `json:"countryId"`
	CityID               uint       `json:"cityId"`
	ThemeID              uint       `json:"themeId"`
	SkillID              *uint      `json:"skillId"`
	StartDate            time.Time  `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	MissionType          string     `json:"missionType"`
	TotalSeats           *int       `json:"totalSeats"`
	Images               string     `json:"images"`
	Documents            string     `json:"documents"`
	VideoURL             string     `json:"videoUrl"`
	IsActive             bool       `json:"isActive"`
}

func (r *missionRequest) toModel() *model.Mission {
	return &model.Mission{
		Title:                r.Title,
		Description:          r.Description,
		OrganisationName:     r.OrganisationName,
		OrganisationDetail:   r.OrganisationDetail,
		CountryID:            r.CountryID,
		CityID:               r.CityID,
		ThemeID:              r.ThemeID,
		SkillID:              r.SkillID,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		RegistrationDeadline: r.RegistrationDeadline,
		MissionType:          r.MissionType,
		TotalSeats:           r.TotalSeats,
		Images:               r.Images,
		Documents:            r.Documents,
		VideoURL:             r.VideoURL,
		IsActive:             r.IsActive,
	}
}

func getCreateMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(missionRequest)

		if err := ctx.BodyParser(req); err != nil {
			return fiber.ErrBadRequest
		}

		m := req.toModel()

		if err := app.catalog.Create(m, User(ctx).ID); err != nil {
			return sendError(ctx, err)
		}

		missionsCounter.WithLabelValues("create").Inc()

		return ctx.Status(fiber.StatusCreated).
			JSON(model.ToMissionDTO(m, app.dbm.NameIndex(), time.Now()))
	}
}

func getUpdateMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := paramID(ctx)

		if err != nil {
			return err
		}

		req := new(missionRequest)

		if err := ctx.BodyParser(req); err != nil {
			return fiber.ErrBadRequest
		}

		m, err := app.catalog.Update(id, req.toModel(), User(ctx).ID)

		if err != nil {
			return sendError(ctx, err)
		}

		missionsCounter.WithLabelValues("update").Inc()

		return ctx.JSON(model.ToMissionDTO(m, app.dbm.NameIndex(), time.Now()))
	}
}

func getDeleteMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := paramID(ctx)

		if err != nil {
			return err
		}

		if err := app.catalog.Delete(id); err != nil {
			return sendError(ctx, err)
		}

		missionsCounter.WithLabelValues("delete").Inc()

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func applicationPage(app *App, list []*model.Application, total int64, page, pageSize int) *model.Page[*model.ApplicationDTO] {
	ids := make([]uint, len(list))
	for i, a := range list {
		ids[i] = a.MissionID
	}

	byID := app.dbm.MissionsByID(ids)

	res := make([]*model.ApplicationDTO, len(list))
	for i, a := range list {
		res[i] = model.ToApplicationDTO(a, byID[a.MissionID])
	}

	return model.NewPage(res, total, page, pageSize)
}

func getApplicationsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		page, pageSize := pageParams(ctx)
		state := model.ApplicationState(ctx.Query("state"))
		missionID := queryUint(ctx, "missionId")

		list, total := app.workflow.ListAll(page, pageSize, state, missionID)

		return ctx.JSON(applicationPage(app, list, total, page, pageSize))
	}
}

func getPendingApplicationsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		page, pageSize := pageParams(ctx)

		list, total := app.workflow.ListPending(page, pageSize)

		return ctx.JSON(applicationPage(app, list, total, page, pageSize))
	}
}

type decisionRequest struct {
	Comments string `json:"comments"`
}

func getDecisionHandler(app *App, approve bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := paramID(ctx)

		if err != nil {
			return err
		}

		req := new(decisionRequest)

		if len(ctx.Body()) > 0 {
			if err := ctx.BodyParser(req); err != nil {
				return fiber.ErrBadRequest
			}
		}

		if approve {
			err = app.workflow.Approve(id, User(ctx).ID, req.Comments)
		} else {
			err = app.workflow.Reject(id, User(ctx).ID, req.Comments)
		}

		if err != nil {
			return sendError(ctx, err)
		}

		if approve {
			applicationsCounter.WithLabelValues("approve").Inc()
		} else {
			applicationsCounter.WithLabelValues("reject").Inc()
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getConfigHandler(app *App) fiber.Handler {
	m := map[string]any{
		"uid":     app.uid,
		"version": gitRevision + " " + gitBranch,
	}

	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(m)
	}
}

func getStatisticsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.workflow.Statistics())
	}
}

func getMissionStatisticsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.catalog.Statistics(time.Now()))
	}
}
