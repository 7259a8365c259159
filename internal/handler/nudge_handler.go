package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GenerateNudge always answers 200; generator failures degrade to a static nudge
func (h *Handler) GenerateNudge(c echo.Context) error {
	result := h.nudges.Generate(c.Request().Context(), ownerID(c))
	return c.JSON(http.StatusOK, result.Nudge)
}

func (h *Handler) NudgeHistory(c echo.Context) error {
	nudges, err := h.nudges.History(c.Request().Context(), ownerID(c))
	if err != nil {
		return fail(c, err, "Nudge")
	}
	return c.JSON(http.StatusOK, nudges)
}
