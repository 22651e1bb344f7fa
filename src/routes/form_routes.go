package routes

import (
	"github.com/gofiber/fiber/v2"
)

// formRoutes กำหนด route สำหรับ form management
func formRoutes(router fiber.Router, h Handlers) {
	forms := router.Group("/forms", h.Auth)

	forms.Post("/", h.Forms.CreateForm)
	forms.Get("/", h.Forms.GetAllForms)
	forms.Get("/:formId", h.Forms.GetFormByID)
	forms.Put("/:formId", h.Forms.UpdateForm)
	forms.Delete("/:formId", h.Forms.DeleteForm)
	forms.Get("/:formId/qr", h.Forms.GetFormQRCode)

	submissionRoutes(forms.Group("/:formId/submissions"), h)
}
