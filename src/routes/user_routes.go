package routes

import (
	"github.com/gofiber/fiber/v2"
)

func userRoutes(router fiber.Router, h Handlers) {
	router.Post("/users", h.Users.RegisterUser)
	router.Post("/login", h.Users.LoginUser)
	router.Post("/logout", h.Auth, h.Users.LogoutUser)

	me := router.Group("/users/me", h.Auth)
	me.Get("/", h.Users.GetMe)
	me.Delete("/", h.Users.DeleteMe)
}
