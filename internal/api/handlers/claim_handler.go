package handlers

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/internal/api/presenters"
	"EcoBite-Backend/pkg/claim"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ClaimHandler interface {
		CreateClaim(c *fiber.Ctx) error
		GetMyClaims(c *fiber.Ctx) error
		GetIncomingClaims(c *fiber.Ctx) error
		DecideClaim(c *fiber.Ctx) error
		CancelClaim(c *fiber.Ctx) error
	}

	claimHandler struct {
		claimService claim.ClaimService
		validator    *validator.Validate
	}
)

func NewClaimHandler(claimService claim.ClaimService, validator *validator.Validate) ClaimHandler {
	return &claimHandler{
		claimService: claimService,
		validator:    validator,
	}
}

func (h *claimHandler) CreateClaim(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	postID, err := c.ParamsInt("id")
	if err != nil || postID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateClaim, domain.ErrPostNotFound)
	}

	req := new(domain.CreateClaimRequest)
	if err := c.BodyParser(req); err != nil && err != fiber.ErrUnprocessableEntity {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.PostID = uint(postID)

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateClaim, err)
	}

	res, err := h.claimService.CreateClaim(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateClaim, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateClaim)
}

func (h *claimHandler) GetMyClaims(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.claimService.GetUserClaims(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetClaims, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"claims": res}, fiber.StatusOK, domain.MessageSuccessGetClaims)
}

func (h *claimHandler) GetIncomingClaims(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.claimService.GetIncomingClaims(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetClaims, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"claims": res}, fiber.StatusOK, domain.MessageSuccessGetClaims)
}

func (h *claimHandler) DecideClaim(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	claimID, err := c.ParamsInt("id")
	if err != nil || claimID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecideClaim, domain.ErrClaimNotFound)
	}

	req := new(domain.DecideClaimRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.ClaimID = uint(claimID)

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecideClaim, err)
	}

	res, err := h.claimService.DecideClaim(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDecideClaim, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDecideClaim)
}

func (h *claimHandler) CancelClaim(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	claimID, err := c.ParamsInt("id")
	if err != nil || claimID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelClaim, domain.ErrClaimNotFound)
	}

	if err := h.claimService.CancelClaim(c.Context(), uint(claimID), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCancelClaim, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelClaim)
}
