package main

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openvol/missionhub/internal/missions"
)

const defaultPageSize = 20

// sendError maps service errors to HTTP statuses. Validation failures come
// back as 400 with the violation list, missing records as 404, state
// conflicts as 409.
func sendError(ctx *fiber.Ctx, err error) error {
	var ve *missions.ValidationError

	if errors.As(err, &ve) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "validation failed",
			"violations": ve.Violations,
		})
	}

	switch {
	case errors.Is(err, missions.ErrMissionNotFound),
		errors.Is(err, missions.ErrApplicationNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, missions.ErrMissionInactive),
		errors.Is(err, missions.ErrAlreadyApplied),
		errors.Is(err, missions.ErrCannotCancelApproved),
		errors.Is(err, missions.ErrMissionHasApplications):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func queryUint(ctx *fiber.Ctx, name string) uint {
	return uint(ctx.QueryInt(name, 0))
}

// queryTime accepts RFC3339 or a plain date. A malformed value is a client
// error, not an absent filter.
func queryTime(ctx *fiber.Ctx, name string) (*time.Time, error) {
	s := ctx.Query(name)

	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}

	return nil, fiber.ErrBadRequest
}

// pageParams clamps the window to sane values so a negative or zero
// pageSize cannot disable windowing.
func pageParams(ctx *fiber.Ctx) (int, int) {
	page := ctx.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := ctx.QueryInt("pageSize", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return page, pageSize
}

func queryBool(ctx *fiber.Ctx, name string) *bool {
	switch ctx.Query(name) {
	case "true", "1":
		v := true

		return &v
	case "false", "0":
		v := false

		return &v
	default:
		return nil
	}
}

func paramID(ctx *fiber.Ctx) (uint, error) {
	id, err := ctx.ParamsInt("id")

	if err != nil || id < 1 {
		return 0, fiber.ErrBadRequest
	}

	return uint(id), nil
}
