package routes

import (
	"github.com/gofiber/fiber/v2"
)

// submissionRoutes is mounted under /forms/:formId/submissions, behind Auth.
func submissionRoutes(subs fiber.Router, h Handlers) {
	subs.Post("/", h.Submissions.CreateSubmission)
	subs.Get("/", h.Submissions.GetSubmissions)
	subs.Delete("/", h.Submissions.DeleteAllSubmissions)
	subs.Get("/:submissionId", h.Submissions.GetSubmissionByID)
	subs.Put("/:submissionId", h.Submissions.UpdateSubmission)
	subs.Delete("/:submissionId", h.Submissions.DeleteSubmission)
}
