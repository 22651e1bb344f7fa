package seeder

import (
	"context"
	"errors"
	"fmt"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/models"
)

type UserRegistrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

type FormCreator interface {
	CreateForm(ctx context.Context, ownerID string, req models.FormRequest) (*models.Form, error)
}

type SubmissionCreator interface {
	Create(ctx context.Context, callerID, formID string, req models.SubmissionRequest) (*models.Submission, error)
}

const (
	DemoEmail    = "demo@bizonii.local"
	DemoPassword = "demo1234"
)

// SampleForms are created for the demo account.
func SampleForms() []models.FormRequest {
	return []models.FormRequest{
		{
			Title:               "Cerere adeverinta student",
			DataRetentionPeriod: 30,
			Sections: []models.DocumentSection{
				{ScanDocumentType: models.StudentCard, Text: "Subsemnatul <nume> <prenume>, student in anul <anul>, grupa <grupa>,"},
				{ScanDocumentType: models.IdentityCard, Text: "posesor al CNP <cnp>, solicit eliberarea unei adeverinte."},
			},
			DynamicFields: []models.DynamicField{
				{Placeholder: "nume", Type: models.FieldText, Mandatory: true, Keywords: []string{"nume", "last name"}},
				{Placeholder: "prenume", Type: models.FieldText, Mandatory: true, Keywords: []string{"prenume", "first name"}},
				{Placeholder: "anul", Type: models.FieldSingleChoice, Mandatory: true, Options: []string{"1", "2", "3", "4"}},
				{Placeholder: "grupa", Type: models.FieldText, Mandatory: false, Keywords: []string{"grupa"}},
				{Placeholder: "cnp", Type: models.FieldNumber, Mandatory: true, Keywords: []string{"cnp"}},
			},
		},
		{
			Title:               "Document Permis Conducere",
			DataRetentionPeriod: 14,
			Sections: []models.DocumentSection{
				{ScanDocumentType: models.DriverLicense, Text: "Titular <nume>, categorii <categorii>, valabil pana la <expirare>."},
			},
			DynamicFields: []models.DynamicField{
				{Placeholder: "nume", Type: models.FieldText, Mandatory: true, Keywords: []string{"nume"}},
				{Placeholder: "categorii", Type: models.FieldMultipleChoice, Mandatory: true, Options: []string{"A", "B", "C", "D"}},
				{Placeholder: "expirare", Type: models.FieldDate, Mandatory: true, Keywords: []string{"valabil"}},
			},
		},
	}
}

func sampleSubmissions() []models.FieldValues {
	return []models.FieldValues{
		{{Placeholder: "nume", Value: "Popescu"}, {Placeholder: "prenume", Value: "Ana"}, {Placeholder: "anul", Value: "2"}, {Placeholder: "cnp", Value: int64(2990101123456)}},
		{{Placeholder: "nume", Value: "Ionescu"}, {Placeholder: "prenume", Value: "Mihai"}, {Placeholder: "anul", Value: "4"}, {Placeholder: "grupa", Value: "B2"}, {Placeholder: "cnp", Value: int64(1980202123456)}},
	}
}

// SeedDemo registers the demo account and its sample forms, plus a few
// submissions to the first form. An existing demo account means the data was
// seeded before and nothing is done.
func SeedDemo(ctx context.Context, users UserRegistrar, forms FormCreator, subs SubmissionCreator) error {
	log := logger.Component("seeder")

	owner, err := users.Register(ctx, models.RegisterRequest{
		AccountType: models.AccountCompany,
		Name:        "Bizonii Demo",
		Email:       DemoEmail,
		Password:    DemoPassword,
		Address:     "Iasi",
		FiscalCode:  "RO0000000",
	})
	if errors.Is(err, models.ErrConflict) {
		log.Info().Msg("demo account exists, skipping seed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	var first *models.Form
	for _, req := range SampleForms() {
		form, err := forms.CreateForm(ctx, owner.ID, req)
		if err != nil {
			return fmt.Errorf("seed form %q: %w", req.Title, err)
		}
		if first == nil {
			first = form
		}
		log.Info().Str("form_id", form.ID).Str("title", form.Title).Msg("✅ Created form")
	}

	for i, fields := range sampleSubmissions() {
		sub, err := subs.Create(ctx, owner.ID, first.ID, models.SubmissionRequest{CompletedDynamicFields: fields})
		if err != nil {
			return fmt.Errorf("seed submission %d: %w", i+1, err)
		}
		log.Info().Str("submission_id", sub.ID).Msg("✅ Created submission")
	}
	return nil
}
