package main

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userKey = "user"

// tokenClaims is the payload of the bearer tokens issued by the identity
// service. Only verification happens here.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
	Admin  bool `json:"admin"`
}

// UserInfo identifies an authenticated caller for the rest of the request.
type UserInfo struct {
	ID    uint
	Admin bool
}

func authRequired(app *App, adminOnly bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if app.config.tokenKey == "" {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		auth := ctx.Get(fiber.HeaderAuthorization)

		if !strings.HasPrefix(auth, "Bearer ") {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		claims := new(tokenClaims)

		_, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims,
			func(t *jwt.Token) (any, error) {
				return []byte(app.config.tokenKey), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || claims.UserID == 0 {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		if adminOnly && !claims.Admin {
			return ctx.SendStatus(fiber.StatusForbidden)
		}

		ctx.Locals(userKey, &UserInfo{ID: claims.UserID, Admin: claims.Admin})

		return ctx.Next()
	}
}

func User(ctx *fiber.Ctx) *UserInfo {
	if u, ok := ctx.Locals(userKey).(*UserInfo); ok {
		return u
	}

	return nil
}

func Username(ctx *fiber.Ctx) string {
	if u := User(ctx); u != nil {
		if u.Admin {
			return "admin:" + strconv.Itoa(int(u.ID))
		}

		return "user:" + strconv.Itoa(int(u.ID))
	}

	return ""
}
