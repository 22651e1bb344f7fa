package forms

import (
	"context"
	"fmt"
	"time"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists forms. Get and Replace return models.ErrNotFound for unknown ids.
type Store interface {
	Create(ctx context.Context, form *models.Form) error
	Get(ctx context.Context, id string) (*models.Form, error)
	Replace(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Form, error)
}

// SubmissionPurger removes every submission of a form.
type SubmissionPurger interface {
	DeleteByForm(ctx context.Context, formID string) (int64, error)
}

// QREncoder renders content as a PNG QR code.
type QREncoder interface {
	Encode(content string) ([]byte, error)
}

// Deps are the collaborators of Service.
type Deps struct {
	Store       Store
	Submissions SubmissionPurger
	QR          QREncoder
	BaseURL     string
	Clock       func() time.Time
}

type Service struct {
	store       Store
	submissions SubmissionPurger
	qr          QREncoder
	baseURL     string
	now         func() time.Time
	log         zerolog.Logger
}

func NewService(deps Deps) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		store:       deps.Store,
		submissions: deps.Submissions,
		qr:          deps.QR,
		baseURL:     deps.BaseURL,
		now:         clock,
		log:         logger.Component("forms"),
	}
}

// Validate runs every form-definition rule against req.
func (s *Service) Validate(req models.FormRequest) error {
	if err := ValidateSchema(req.DynamicFields, req.Sections); err != nil {
		return err
	}
	if err := ValidateRetention(req.DataRetentionPeriod, s.now()); err != nil {
		return err
	}
	if unused := UnreferencedFields(req.DynamicFields, req.Sections); len(unused) > 0 {
		s.log.Debug().Strs("placeholders", unused).Msg("form declares fields no section references")
	}
	return nil
}

// CreateForm - validates and stores a new form owned by ownerID
func (s *Service) CreateForm(ctx context.Context, ownerID string, req models.FormRequest) (*models.Form, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	form := &models.Form{
		ID:                  uuid.NewString(),
		OwnerID:             ownerID,
		Title:               req.Title,
		DataRetentionPeriod: req.DataRetentionPeriod,
		Sections:            req.Sections,
		DynamicFields:       req.DynamicFields,
	}
	if err := s.store.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}

	s.log.Info().Str("form_id", form.ID).Str("owner_id", ownerID).Msg("✅ form created")
	return form, nil
}

// ListForms - short views of every form owned by ownerID
func (s *Service) ListForms(ctx context.Context, ownerID string) ([]models.ShortForm, error) {
	forms, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	out := make([]models.ShortForm, 0, len(forms))
	for _, f := range forms {
		out = append(out, f.Short())
	}
	return out, nil
}

// GetForm - any authenticated caller may read a form in order to fill it in
func (s *Service) GetForm(ctx context.Context, formID string) (*models.Form, error) {
	return s.store.Get(ctx, formID)
}

// UpdateForm - full replace by the owner; id and owner are preserved
func (s *Service) UpdateForm(ctx context.Context, callerID, formID string, req models.FormRequest) (*models.Form, error) {
	form, err := s.ownedForm(ctx, callerID, formID)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	form.Title = req.Title
	form.DataRetentionPeriod = req.DataRetentionPeriod
	form.Sections = req.Sections
	form.DynamicFields = req.DynamicFields

	if err := s.store.Replace(ctx, form); err != nil {
		return nil, fmt.Errorf("replace form: %w", err)
	}
	return form, nil
}

// DeleteForm - owner only; submissions go first so none outlive their form
func (s *Service) DeleteForm(ctx context.Context, callerID, formID string) (*models.Form, error) {
	form, err := s.ownedForm(ctx, callerID, formID)
	if err != nil {
		return nil, err
	}

	purged, err := s.submissions.DeleteByForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("delete submissions of form %s: %w", formID, err)
	}
	if err := s.store.Delete(ctx, formID); err != nil {
		return nil, fmt.Errorf("delete form: %w", err)
	}

	s.log.Info().Str("form_id", formID).Int64("submissions_deleted", purged).Msg("🗑️ form deleted")
	return form, nil
}

// SubmissionLink is the URL a respondent opens to fill in the form.
func (s *Service) SubmissionLink(formID string) string {
	return fmt.Sprintf("%s/forms/%s/submissions", s.baseURL, formID)
}

// QRCode - PNG pointing at the form's submission link, owner only
func (s *Service) QRCode(ctx context.Context, callerID, formID string) ([]byte, error) {
	if _, err := s.ownedForm(ctx, callerID, formID); err != nil {
		return nil, err
	}
	png, err := s.qr.Encode(s.SubmissionLink(formID))
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

func (s *Service) ownedForm(ctx context.Context, callerID, formID string) (*models.Form, error) {
	form, err := s.store.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the form owner can change form %s", models.ErrForbidden, formID)
	}
	return form, nil
}
