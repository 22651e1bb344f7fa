package submissions

import (
	"context"
	"fmt"
	"time"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/metrics"
	"Bizonii-Backend/src/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists submissions. Get and Replace return models.ErrNotFound for
// unknown ids; Delete reports false when the record was already gone.
type Store interface {
	Create(ctx context.Context, s *models.Submission) error
	Get(ctx context.Context, id string) (*models.Submission, error)
	Replace(ctx context.Context, s *models.Submission) error
	Delete(ctx context.Context, id string) (bool, error)
	ListByForm(ctx context.Context, formID string) ([]models.Submission, error)
	DeleteByForm(ctx context.Context, formID string) (int64, error)
}

// FormReader resolves the form a submission belongs to.
type FormReader interface {
	Get(ctx context.Context, id string) (*models.Form, error)
}

type Deps struct {
	Store    Store
	Forms    FormReader
	Metrics  *metrics.Metrics
	Clock    func() time.Time
	Location *time.Location
}

type Service struct {
	store   Store
	forms   FormReader
	metrics *metrics.Metrics
	now     func() time.Time
	loc     *time.Location
	log     zerolog.Logger
}

func NewService(deps Deps) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:   deps.Store,
		forms:   deps.Forms,
		metrics: deps.Metrics,
		now:     clock,
		loc:     loc,
		log:     logger.Component("submissions"),
	}
}

// Create - any authenticated caller may fill in an existing form
func (s *Service) Create(ctx context.Context, callerID, formID string, req models.SubmissionRequest) (*models.Submission, error) {
	form, err := s.forms.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := ValidateSubmission(form.DynamicFields, req.CompletedDynamicFields); err != nil {
		return nil, err
	}

	created := s.now().Unix()
	sub := &models.Submission{
		ID:                       uuid.NewString(),
		FormID:                   form.ID,
		UserThatCompletedID:      callerID,
		SubmissionCreationTime:   created,
		SubmissionExpirationTime: ExpirationTime(created, form.DataRetentionPeriod),
		CompletedDynamicFields:   req.CompletedDynamicFields,
	}
	if sub.CompletedDynamicFields == nil {
		sub.CompletedDynamicFields = models.FieldValues{}
	}
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.metrics.RecordSubmissionCreated()
	s.log.Info().
		Str("submission_id", sub.ID).
		Str("form_id", form.ID).
		Int64("expires_at", sub.SubmissionExpirationTime).
		Msg("✅ submission created")
	return sub, nil
}

// List - form owner only. The query runs over every submission of the form,
// then the page is cut.
func (s *Service) List(ctx context.Context, callerID, formID string, q Query, page models.PaginationParams) (*models.PaginatedResponse, error) {
	if _, err := s.ownedForm(ctx, callerID, formID); err != nil {
		return nil, err
	}

	all, err := s.store.ListByForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if q.Location == nil {
		q.Location = s.loc
	}
	matched := q.Apply(all)

	return models.NewPaginatedResponse(models.Paginate(matched, page), int64(len(matched)), page), nil
}

// Get - form owner or submitter
func (s *Service) Get(ctx context.Context, callerID, formID, submissionID string) (*models.Submission, error) {
	sub, _, err := s.accessible(ctx, callerID, formID, submissionID)
	return sub, err
}

// Update replaces completed_dynamic_fields only; identity, submitter and both
// timestamps are preserved. The fields are checked against the current schema.
func (s *Service) Update(ctx context.Context, callerID, formID, submissionID string, req models.SubmissionRequest) (*models.Submission, error) {
	sub, form, err := s.accessible(ctx, callerID, formID, submissionID)
	if err != nil {
		return nil, err
	}
	if err := ValidateSubmission(form.DynamicFields, req.CompletedDynamicFields); err != nil {
		return nil, err
	}

	sub.CompletedDynamicFields = req.CompletedDynamicFields
	if sub.CompletedDynamicFields == nil {
		sub.CompletedDynamicFields = models.FieldValues{}
	}
	if err := s.store.Replace(ctx, sub); err != nil {
		return nil, fmt.Errorf("replace submission: %w", err)
	}
	return sub, nil
}

// Delete - form owner or submitter
func (s *Service) Delete(ctx context.Context, callerID, formID, submissionID string) error {
	if _, _, err := s.accessible(ctx, callerID, formID, submissionID); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: submission %s", models.ErrNotFound, submissionID)
	}
	s.log.Info().Str("submission_id", submissionID).Msg("🗑️ submission deleted")
	return nil
}

// DeleteAll - form owner only
func (s *Service) DeleteAll(ctx context.Context, callerID, formID string) (int64, error) {
	if _, err := s.ownedForm(ctx, callerID, formID); err != nil {
		return 0, err
	}
	n, err := s.store.DeleteByForm(ctx, formID)
	if err != nil {
		return 0, fmt.Errorf("delete submissions of form %s: %w", formID, err)
	}
	s.log.Info().Str("form_id", formID).Int64("deleted", n).Msg("🗑️ submissions deleted")
	return n, nil
}

func (s *Service) ownedForm(ctx context.Context, callerID, formID string) (*models.Form, error) {
	form, err := s.forms.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the form owner can access its submissions", models.ErrForbidden)
	}
	return form, nil
}

// accessible loads a submission of formID that callerID may see: the form
// owner or the submitter. A submission of another form is reported as missing.
func (s *Service) accessible(ctx context.Context, callerID, formID, submissionID string) (*models.Submission, *models.Form, error) {
	form, err := s.forms.Get(ctx, formID)
	if err != nil {
		return nil, nil, err
	}
	sub, err := s.store.Get(ctx, submissionID)
	if err != nil {
		return nil, nil, err
	}
	if sub.FormID != form.ID {
		return nil, nil, fmt.Errorf("%w: submission %s does not belong to form %s", models.ErrNotFound, submissionID, formID)
	}
	if callerID != form.OwnerID && callerID != sub.UserThatCompletedID {
		return nil, nil, fmt.Errorf("%w: only the form owner or the submitter can access submission %s", models.ErrForbidden, submissionID)
	}
	return sub, form, nil
}
