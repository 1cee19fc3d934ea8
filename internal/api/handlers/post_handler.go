package handlers

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/internal/api/presenters"
	"EcoBite-Backend/pkg/post"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PostHandler interface {
		CreatePost(c *fiber.Ctx) error
		GetPosts(c *fiber.Ctx) error
		GetMyPosts(c *fiber.Ctx) error
		GetPostByID(c *fiber.Ctx) error
		UpdatePostStatus(c *fiber.Ctx) error
	}

	postHandler struct {
		postService post.PostService
		validator   *validator.Validate
	}
)

func NewPostHandler(postService post.PostService, validator *validator.Validate) PostHandler {
	return &postHandler{
		postService: postService,
		validator:   validator,
	}
}

func (h *postHandler) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	req := new(domain.CreatePostRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Optional food photo.
	req.Image, _ = c.FormFile("image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePost, err)
	}

	res, err := h.postService.CreatePost(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreatePost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePost)
}

func (h *postHandler) GetPosts(c *fiber.Ctx) error {
	q := domain.ListPostsQuery{
		Status:   c.Query("status", domain.PostFilterAvailable),
		Search:   c.Query("search"),
		Category: c.Query("type"),
		Dietary:  c.Query("dietary"),
		Sort:     c.Query("sort", domain.PostSortNewest),
	}

	res, err := h.postService.GetPosts(c.Context(), q)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPosts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"posts": res}, fiber.StatusOK, domain.MessageSuccessGetPosts)
}

func (h *postHandler) GetMyPosts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.postService.GetUserPosts(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPosts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"posts": res}, fiber.StatusOK, domain.MessageSuccessGetPosts)
}

func (h *postHandler) GetPostByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPost, domain.ErrPostNotFound)
	}

	var viewerID uint
	if v, ok := c.Locals("user_id").(uint); ok {
		viewerID = v
	}

	res, err := h.postService.GetPostByID(c.Context(), uint(id), viewerID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPost)
}

func (h *postHandler) UpdatePostStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePostStatus, domain.ErrPostNotFound)
	}

	req := new(domain.UpdatePostStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.PostID = uint(id)

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePostStatus, err)
	}

	if err := h.postService.UpdatePostStatus(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdatePostStatus, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"status": req.Status}, fiber.StatusOK, domain.MessageSuccessUpdatePostStatus)
}
