package handlers

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/internal/api/presenters"
	"EcoBite-Backend/pkg/stats"

	"github.com/gofiber/fiber/v2"
)

type (
	StatsHandler interface {
		GetGlobalStats(c *fiber.Ctx) error
		GetMyStats(c *fiber.Ctx) error
		GetImpactSummary(c *fiber.Ctx) error
	}

	statsHandler struct {
		statsService stats.StatsService
	}
)

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandler{statsService: statsService}
}

func (h *statsHandler) GetGlobalStats(c *fiber.Ctx) error {
	res, err := h.statsService.GetGlobalStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *statsHandler) GetMyStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.statsService.GetUserStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}

// GetImpactSummary serves the home page counters. With a token and
// ?mine=true it scopes the summary to the caller.
func (h *statsHandler) GetImpactSummary(c *fiber.Ctx) error {
	var userID uint
	if c.QueryBool("mine") {
		if v, ok := c.Locals("user_id").(uint); ok {
			userID = v
		}
	}

	res, err := h.statsService.GetImpactSummary(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}
