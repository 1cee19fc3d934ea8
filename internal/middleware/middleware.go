package middleware

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/internal/api/presenters"
	"EcoBite-Backend/pkg/jwt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware requires a valid bearer token and exposes the resolved
// identity as numeric locals. Handlers never assume a default user.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := resolveToken(c, jwtService)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when a token is present and
// lets anonymous requests through untouched.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, role, err := resolveToken(c, jwtService); err == nil {
			c.Locals("user_id", userID)
			c.Locals("role", role)
		}
		return c.Next()
	}
}

func resolveToken(c *fiber.Ctx, jwtService jwt.JWTService) (uint, string, error) {
	header := c.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return 0, "", domain.ErrTokenNotFound
	}

	token := strings.TrimPrefix(header, "Bearer ")
	idStr, role, err := jwtService.GetUserIDByToken(token)
	if err != nil {
		return 0, "", err
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, "", domain.ErrTokenInvalid
	}
	return uint(id), role, nil
}
