package controllers

import (
	"context"

	"Bizonii-Backend/src/middleware"
	"Bizonii-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// FormService is what the form endpoints need from services/forms.
type FormService interface {
	CreateForm(ctx context.Context, ownerID string, req models.FormRequest) (*models.Form, error)
	ListForms(ctx context.Context, ownerID string) ([]models.ShortForm, error)
	GetForm(ctx context.Context, formID string) (*models.Form, error)
	UpdateForm(ctx context.Context, callerID, formID string, req models.FormRequest) (*models.Form, error)
	DeleteForm(ctx context.Context, callerID, formID string) (*models.Form, error)
	QRCode(ctx context.Context, callerID, formID string) ([]byte, error)
}

type FormController struct {
	forms FormService
}

func NewFormController(forms FormService) *FormController {
	return &FormController{forms: forms}
}

// CreateForm godoc
// @Summary      Create a form
// @Description  Validates the field schema and retention period, then stores the form owned by the caller
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.FormRequest true "Form definition"
// @Success      201  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /forms [post]
func (fc *FormController) CreateForm(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	var req models.FormRequest
	if err := bindBody(c, &req); err != nil {
		return HandleServiceError(c, err)
	}

	form, err := fc.forms.CreateForm(c.UserContext(), callerID, req)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// GetAllForms godoc
// @Summary      List my forms
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.ShortForm
// @Failure      401  {object}  models.ErrorResponse
// @Router       /forms [get]
func (fc *FormController) GetAllForms(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	list, err := fc.forms.ListForms(c.UserContext(), callerID)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// GetFormByID godoc
// @Summary      Get a form
// @Description  Any authenticated user can read a form in order to fill it in
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Success      200  {object}  models.Form
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId} [get]
func (fc *FormController) GetFormByID(c *fiber.Ctx) error {
	form, err := fc.forms.GetForm(c.UserContext(), c.Params("formId"))
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(form)
}

// UpdateForm godoc
// @Summary      Replace a form
// @Description  Full replace by the owner; id and owner are kept
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Param        body body models.FormRequest true "Form definition"
// @Success      200  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId} [put]
func (fc *FormController) UpdateForm(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	var req models.FormRequest
	if err := bindBody(c, &req); err != nil {
		return HandleServiceError(c, err)
	}

	form, err := fc.forms.UpdateForm(c.UserContext(), callerID, c.Params("formId"), req)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(form)
}

// DeleteForm godoc
// @Summary      Delete a form
// @Description  Owner only; every submission of the form is deleted first
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Success      200  {object}  models.Form
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId} [delete]
func (fc *FormController) DeleteForm(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	form, err := fc.forms.DeleteForm(c.UserContext(), callerID, c.Params("formId"))
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(form)
}

// GetFormQRCode godoc
// @Summary      QR code of the submission link
// @Tags         forms
// @Produce      png
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Success      200  {file}    binary
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{formId}/qr [get]
func (fc *FormController) GetFormQRCode(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	png, err := fc.forms.QRCode(c.UserContext(), callerID, c.Params("formId"))
	if err != nil {
		return HandleServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
