package controllers

import (
	"context"
	"fmt"
	"strconv"

	"Bizonii-Backend/src/middleware"
	"Bizonii-Backend/src/models"
	"Bizonii-Backend/src/services/submissions"

	"github.com/gofiber/fiber/v2"
)

// SubmissionService is what the submission endpoints need from services/submissions.
type SubmissionService interface {
	Create(ctx context.Context, callerID, formID string, req models.SubmissionRequest) (*models.Submission, error)
	List(ctx context.Context, callerID, formID string, q submissions.Query, page models.PaginationParams) (*models.PaginatedResponse, error)
	Get(ctx context.Context, callerID, formID, submissionID string) (*models.Submission, error)
	Update(ctx context.Context, callerID, formID, submissionID string, req models.SubmissionRequest) (*models.Submission, error)
	Delete(ctx context.Context, callerID, formID, submissionID string) error
	DeleteAll(ctx context.Context, callerID, formID string) (int64, error)
}

type SubmissionController struct {
	submissions SubmissionService
}

func NewSubmissionController(s SubmissionService) *SubmissionController {
	return &SubmissionController{submissions: s}
}

// CreateSubmission godoc
// @Summary      Submit a form
// @Description  Every mandatory field must have a value; missing ones are listed together
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Param        body body models.SubmissionRequest true "Completed fields"
// @Success      201  {object}  models.Submission
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId}/submissions [post]
func (sc *SubmissionController) CreateSubmission(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	var req models.SubmissionRequest
	if err := bindBody(c, &req); err != nil {
		return HandleServiceError(c, err)
	}

	sub, err := sc.submissions.Create(c.UserContext(), callerID, c.Params("formId"), req)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetSubmissions godoc
// @Summary      List submissions of a form
// @Description  Form owner only. Sorted by expiration time, filtered by a keyword over the first fields and by creation time components, then paged
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Param        order  query string false "asc or desc" default(asc)
// @Param        search query string false "Keyword"
// @Param        hour   query int    false "Creation hour (0-23)"
// @Param        day    query int    false "Creation day of month (1-31)"
// @Param        month  query int    false "Creation month (1-12)"
// @Param        year   query int    false "Creation year"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Items per page, 0 for all" default(0)
// @Success      200  {object}  models.PaginatedResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId}/submissions [get]
func (sc *SubmissionController) GetSubmissions(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	q, err := parseQuery(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	var page models.PaginationParams
	if err := c.QueryParser(&page); err != nil {
		return HandleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
	}

	res, err := sc.submissions.List(c.UserContext(), callerID, c.Params("formId"), q, page)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(res)
}

// GetSubmissionByID godoc
// @Summary      Get a submission
// @Description  Form owner or submitter
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        formId       path string true "Form ID"
// @Param        submissionId path string true "Submission ID"
// @Success      200  {object}  models.Submission
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId}/submissions/{submissionId} [get]
func (sc *SubmissionController) GetSubmissionByID(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	sub, err := sc.submissions.Get(c.UserContext(), callerID, c.Params("formId"), c.Params("submissionId"))
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(sub)
}

// UpdateSubmission godoc
// @Summary      Replace the completed fields of a submission
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        formId       path string true "Form ID"
// @Param        submissionId path string true "Submission ID"
// @Param        body body models.SubmissionRequest true "Completed fields"
// @Success      200  {object}  models.Submission
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId}/submissions/{submissionId} [put]
func (sc *SubmissionController) UpdateSubmission(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	var req models.SubmissionRequest
	if err := bindBody(c, &req); err != nil {
		return HandleServiceError(c, err)
	}

	sub, err := sc.submissions.Update(c.UserContext(), callerID, c.Params("formId"), c.Params("submissionId"), req)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(sub)
}

// DeleteSubmission godoc
// @Summary      Delete a submission
// @Tags         submissions
// @Security     BearerAuth
// @Param        formId       path string true "Form ID"
// @Param        submissionId path string true "Submission ID"
// @Success      204
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId}/submissions/{submissionId} [delete]
func (sc *SubmissionController) DeleteSubmission(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	if err := sc.submissions.Delete(c.UserContext(), callerID, c.Params("formId"), c.Params("submissionId")); err != nil {
		return HandleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAllSubmissions godoc
// @Summary      Delete every submission of a form
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Success      200  {object}  models.DeleteAllResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId}/submissions [delete]
func (sc *SubmissionController) DeleteAllSubmissions(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	n, err := sc.submissions.DeleteAll(c.UserContext(), callerID, c.Params("formId"))
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(models.DeleteAllResponse{Deleted: n})
}

func parseQuery(c *fiber.Ctx) (submissions.Query, error) {
	order, err := submissions.ParseSortOrder(c.Query("order"))
	if err != nil {
		return submissions.Query{}, err
	}
	q := submissions.Query{Order: order}

	if c.Context().QueryArgs().Has("search") {
		search := c.Query("search")
		q.Search = &search
	}

	var window submissions.TimeWindow
	components := []struct {
		name     string
		min, max int
		dst      **int
	}{
		{"hour", 0, 23, &window.Hour},
		{"day", 1, 31, &window.Day},
		{"month", 1, 12, &window.Month},
		{"year", 1, 9999, &window.Year},
	}
	for _, comp := range components {
		raw := c.Query(comp.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < comp.min || v > comp.max {
			return submissions.Query{}, fmt.Errorf("%w: %s must be an integer between %d and %d", models.ErrInvalidInput, comp.name, comp.min, comp.max)
		}
		*comp.dst = &v
	}
	if !window.IsZero() {
		q.Window = &window
	}
	return q, nil
}
