package routes

import (
	"EcoBite-Backend/internal/api/handlers"
	"EcoBite-Backend/internal/middleware"
	"EcoBite-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App          *fiber.App
	UserHandler  handlers.UserHandler
	PostHandler  handlers.PostHandler
	ClaimHandler handlers.ClaimHandler
	StatsHandler handlers.StatsHandler
	Middleware   middleware.Middleware
	JWTService   jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.FoodPosts()
	c.Claims()
	c.Stats()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) FoodPosts() {
	posts := c.App.Group("/api/v1/food-posts")

	posts.Get("", c.PostHandler.GetPosts)
	posts.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.PostHandler.CreatePost)
	posts.Get("/mine", c.Middleware.AuthMiddleware(c.JWTService), c.PostHandler.GetMyPosts)

	// Viewer identity is optional here; owners additionally get the
	// claims attached to their own post.
	posts.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.PostHandler.GetPostByID)
	posts.Patch("/:id/status", c.Middleware.AuthMiddleware(c.JWTService), c.PostHandler.UpdatePostStatus)
	posts.Post("/:id/claims", c.Middleware.AuthMiddleware(c.JWTService), c.ClaimHandler.CreateClaim)
}

func (c *Config) Claims() {
	claims := c.App.Group("/api/v1/claims", c.Middleware.AuthMiddleware(c.JWTService))

	claims.Get("/mine", c.ClaimHandler.GetMyClaims)
	claims.Get("/for-my-posts", c.ClaimHandler.GetIncomingClaims)
	claims.Patch("/:id/cancel", c.ClaimHandler.CancelClaim)
	claims.Patch("/:id", c.ClaimHandler.DecideClaim)
}

func (c *Config) Stats() {
	stats := c.App.Group("/api/v1/stats")

	stats.Get("/global", c.StatsHandler.GetGlobalStats)
	stats.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.StatsHandler.GetMyStats)
	stats.Get("/summary", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.StatsHandler.GetImpactSummary)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
