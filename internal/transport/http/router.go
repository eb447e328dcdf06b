package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"trivia-client/internal/app"
)

type highScorePayload struct {
	HighScore int `json:"highScore"`
}

// NewRouter wires the health check, the read-only JSON endpoints and the quiz websocket.
func NewRouter(ws *WSHandler, categories app.CategoryRepository, scores *app.HighScores) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := e.Group("/api")
	api.GET("/categories", func(c echo.Context) error {
		list, err := categories.GetCategories(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return c.JSON(http.StatusOK, list)
	})
	api.GET("/highscore", func(c echo.Context) error {
		high, err := scores.Get(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, highScorePayload{HighScore: high})
	})

	e.GET("/ws", ws.ServeWS)
	return e
}
