package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Bizonii-Backend/src/middleware"
	"Bizonii-Backend/src/models"
	"Bizonii-Backend/src/services/forms"
	"Bizonii-Backend/src/services/submissions"
	"Bizonii-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFormService is a mock implementation of FormService
type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) CreateForm(ctx context.Context, ownerID string, req models.FormRequest) (*models.Form, error) {
	return formResult(m.Called(ctx, ownerID, req))
}

func (m *MockFormService) ListForms(ctx context.Context, ownerID string) ([]models.ShortForm, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.ShortForm), args.Error(1)
}

func (m *MockFormService) GetForm(ctx context.Context, formID string) (*models.Form, error) {
	return formResult(m.Called(ctx, formID))
}

func (m *MockFormService) UpdateForm(ctx context.Context, callerID, formID string, req models.FormRequest) (*models.Form, error) {
	return formResult(m.Called(ctx, callerID, formID, req))
}

func (m *MockFormService) DeleteForm(ctx context.Context, callerID, formID string) (*models.Form, error) {
	return formResult(m.Called(ctx, callerID, formID))
}

func (m *MockFormService) QRCode(ctx context.Context, callerID, formID string) ([]byte, error) {
	args := m.Called(ctx, callerID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func formResult(args mock.Arguments) (*models.Form, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

// MockSubmissionService is a mock implementation of SubmissionService
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Create(ctx context.Context, callerID, formID string, req models.SubmissionRequest) (*models.Submission, error) {
	return submissionResult(m.Called(ctx, callerID, formID, req))
}

func (m *MockSubmissionService) List(ctx context.Context, callerID, formID string, q submissions.Query, page models.PaginationParams) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, callerID, formID, q, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *MockSubmissionService) Get(ctx context.Context, callerID, formID, submissionID string) (*models.Submission, error) {
	return submissionResult(m.Called(ctx, callerID, formID, submissionID))
}

func (m *MockSubmissionService) Update(ctx context.Context, callerID, formID, submissionID string, req models.SubmissionRequest) (*models.Submission, error) {
	return submissionResult(m.Called(ctx, callerID, formID, submissionID, req))
}

func (m *MockSubmissionService) Delete(ctx context.Context, callerID, formID, submissionID string) error {
	return m.Called(ctx, callerID, formID, submissionID).Error(0)
}

func (m *MockSubmissionService) DeleteAll(ctx context.Context, callerID, formID string) (int64, error) {
	args := m.Called(ctx, callerID, formID)
	return args.Get(0).(int64), args.Error(1)
}

func submissionResult(args mock.Arguments) (*models.Submission, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

type stubUsers struct {
	registerErr error
	loginErr    error
	loggedOut   string
}

func (s *stubUsers) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &models.User{ID: "u1", Name: req.Name, Email: req.Email, Password: "hash"}, nil
}

func (s *stubUsers) Login(context.Context, models.LoginRequest) (*models.TokenResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &models.TokenResponse{AccessToken: "tok", TokenType: "bearer"}, nil
}

func (s *stubUsers) Logout(_ context.Context, token string, _ time.Time) error {
	s.loggedOut = token
	return nil
}

func (s *stubUsers) Get(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (s *stubUsers) Delete(context.Context, string) error { return nil }

var testTokens = utils.NewJWTManager("controller-test", time.Hour)

type testApp struct {
	app         *fiber.App
	forms       *MockFormService
	submissions *MockSubmissionService
	users       *stubUsers
}

func newTestApp() *testApp {
	t := &testApp{
		app:         fiber.New(),
		forms:       new(MockFormService),
		submissions: new(MockSubmissionService),
		users:       &stubUsers{},
	}
	auth := middleware.AuthJWT(testTokens, nil)
	fc := NewFormController(t.forms)
	sc := NewSubmissionController(t.submissions)
	uc := NewUserController(t.users)

	api := t.app.Group("/api/v1")
	api.Post("/users", uc.RegisterUser)
	api.Post("/login", uc.LoginUser)
	api.Post("/logout", auth, uc.LogoutUser)
	api.Get("/users/me", auth, uc.GetMe)
	api.Post("/forms", auth, fc.CreateForm)
	api.Get("/forms", auth, fc.GetAllForms)
	api.Get("/forms/:formId", auth, fc.GetFormByID)
	api.Put("/forms/:formId", auth, fc.UpdateForm)
	api.Delete("/forms/:formId", auth, fc.DeleteForm)
	api.Get("/forms/:formId/qr", auth, fc.GetFormQRCode)
	api.Post("/forms/:formId/submissions", auth, sc.CreateSubmission)
	api.Get("/forms/:formId/submissions", auth, sc.GetSubmissions)
	api.Delete("/forms/:formId/submissions", auth, sc.DeleteAllSubmissions)
	api.Get("/forms/:formId/submissions/:submissionId", auth, sc.GetSubmissionByID)
	api.Put("/forms/:formId/submissions/:submissionId", auth, sc.UpdateSubmission)
	api.Delete("/forms/:formId/submissions/:submissionId", auth, sc.DeleteSubmission)
	return t
}

func (t *testApp) do(tb testing.TB, method, path, userID, body string) (*http.Response, []byte) {
	tb.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		token, err := testTokens.Generate(userID, userID+"@example.com")
		require.NoError(tb, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := t.app.Test(req)
	require.NoError(tb, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(tb, err)
	return resp, data
}

func decodeError(t *testing.T, data []byte) models.ErrorResponse {
	t.Helper()
	var er models.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &er))
	return er
}

const validFormBody = `{
	"title": "Cerere",
	"data_retention_period": 30,
	"sections": [{"scan_document_type": "identity_card", "text": "Subsemnatul <nume>"}],
	"dynamic_fields": [{"placeholder": "nume", "type": "text", "mandatory": true, "keywords": ["nume"]}]
}`

func TestFormEndpoints(t *testing.T) {
	t.Run("TestCreateForm", func(t *testing.T) {
		app := newTestApp()
		app.forms.On("CreateForm", mock.Anything, "owner", mock.MatchedBy(func(req models.FormRequest) bool {
			return req.Title == "Cerere" && len(req.DynamicFields) == 1 && req.DynamicFields[0].Placeholder == "nume"
		})).Return(&models.Form{ID: "f1", OwnerID: "owner"}, nil)

		resp, _ := app.do(t, "POST", "/api/v1/forms", "owner", validFormBody)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		app.forms.AssertExpectations(t)
	})

	t.Run("TestCreateFormRequiresToken", func(t *testing.T) {
		app := newTestApp()
		resp, _ := app.do(t, "POST", "/api/v1/forms", "", validFormBody)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("TestUnknownFieldTypeRejectedBeforeService", func(t *testing.T) {
		app := newTestApp()
		body := strings.Replace(validFormBody, `"type": "text"`, `"type": "colour"`, 1)

		resp, _ := app.do(t, "POST", "/api/v1/forms", "owner", body)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		app.forms.AssertNotCalled(t, "CreateForm", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TestSchemaErrorIsBadRequest", func(t *testing.T) {
		app := newTestApp()
		app.forms.On("CreateForm", mock.Anything, "owner", mock.Anything).
			Return(nil, &forms.SchemaError{Reason: forms.UnspecifiedField, Placeholder: "ssn"})

		resp, data := app.do(t, "POST", "/api/v1/forms", "owner", validFormBody)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, data).Message, "ssn")
	})

	t.Run("TestRetentionErrorIsBadRequest", func(t *testing.T) {
		app := newTestApp()
		app.forms.On("UpdateForm", mock.Anything, "owner", "f1", mock.Anything).Return(nil, forms.ErrInvalidRetentionPeriod)

		resp, _ := app.do(t, "PUT", "/api/v1/forms/f1", "owner", validFormBody)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("TestForbiddenAndNotFound", func(t *testing.T) {
		app := newTestApp()
		app.forms.On("DeleteForm", mock.Anything, "intruder", "f1").Return(nil, fmt.Errorf("%w: not yours", models.ErrForbidden))
		app.forms.On("GetForm", mock.Anything, "missing").Return(nil, models.ErrNotFound)

		resp, _ := app.do(t, "DELETE", "/api/v1/forms/f1", "intruder", "")
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		resp, _ = app.do(t, "GET", "/api/v1/forms/missing", "anyone", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("TestQRCode", func(t *testing.T) {
		app := newTestApp()
		app.forms.On("QRCode", mock.Anything, "owner", "f1").Return([]byte("\x89PNG"), nil)

		resp, data := app.do(t, "GET", "/api/v1/forms/f1/qr", "owner", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, []byte("\x89PNG"), data)
	})

	t.Run("TestInternalErrorIsHidden", func(t *testing.T) {
		app := newTestApp()
		app.forms.On("ListForms", mock.Anything, "owner").Return([]models.ShortForm(nil), errors.New("connection refused at 10.0.0.3"))

		resp, data := app.do(t, "GET", "/api/v1/forms", "owner", "")

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, string(data), "10.0.0.3")
	})
}

func TestSubmissionEndpoints(t *testing.T) {
	t.Run("TestMissingFieldsListed", func(t *testing.T) {
		app := newTestApp()
		app.submissions.On("Create", mock.Anything, "respondent", "f1", mock.Anything).
			Return(nil, &submissions.MissingFieldsError{Placeholders: []string{"nume", "cnp"}})

		resp, data := app.do(t, "POST", "/api/v1/forms/f1/submissions", "respondent", `{"completed_dynamic_fields": {"anul": "3"}}`)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"nume", "cnp"}, decodeError(t, data).Fields)
	})

	t.Run("TestCreateKeepsFieldOrder", func(t *testing.T) {
		app := newTestApp()
		app.submissions.On("Create", mock.Anything, "respondent", "f1", mock.MatchedBy(func(req models.SubmissionRequest) bool {
			f := req.CompletedDynamicFields
			return len(f) == 2 && f[0].Placeholder == "zeta" && f[1].Placeholder == "alpha"
		})).Return(&models.Submission{ID: "s1"}, nil)

		resp, _ := app.do(t, "POST", "/api/v1/forms/f1/submissions", "respondent", `{"completed_dynamic_fields": {"zeta": "z", "alpha": 1}}`)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		app.submissions.AssertExpectations(t)
	})

	t.Run("TestListParsesQuery", func(t *testing.T) {
		app := newTestApp()
		app.submissions.On("List", mock.Anything, "owner", "f1", mock.MatchedBy(func(q submissions.Query) bool {
			return q.Order == submissions.Descending &&
				q.Search != nil && *q.Search == "Ana" &&
				q.Window != nil && q.Window.Hour != nil && *q.Window.Hour == 9 &&
				q.Window.Day == nil && q.Window.Year != nil && *q.Window.Year == 2026
		}), models.PaginationParams{Page: 2, Limit: 5}).
			Return(models.NewPaginatedResponse([]models.Submission{}, 0, models.PaginationParams{Page: 2, Limit: 5}), nil)

		resp, _ := app.do(t, "GET", "/api/v1/forms/f1/submissions?order=desc&search=Ana&hour=9&year=2026&page=2&limit=5", "owner", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		app.submissions.AssertExpectations(t)
	})

	t.Run("TestListWithoutFilters", func(t *testing.T) {
		app := newTestApp()
		app.submissions.On("List", mock.Anything, "owner", "f1", mock.MatchedBy(func(q submissions.Query) bool {
			return q.Order == submissions.Ascending && q.Search == nil && q.Window == nil
		}), models.PaginationParams{}).
			Return(models.NewPaginatedResponse([]models.Submission{}, 0, models.PaginationParams{}), nil)

		resp, _ := app.do(t, "GET", "/api/v1/forms/f1/submissions", "owner", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("TestListRejectsBadComponents", func(t *testing.T) {
		app := newTestApp()
		for _, q := range []string{"hour=24", "month=0", "day=abc", "order=sideways"} {
			resp, _ := app.do(t, "GET", "/api/v1/forms/f1/submissions?"+q, "owner", "")
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, q)
		}
		app.submissions.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TestDeleteSubmission", func(t *testing.T) {
		app := newTestApp()
		app.submissions.On("Delete", mock.Anything, "respondent", "f1", "s1").Return(nil)
		app.submissions.On("Delete", mock.Anything, "respondent", "f1", "gone").Return(models.ErrNotFound)

		resp, _ := app.do(t, "DELETE", "/api/v1/forms/f1/submissions/s1", "respondent", "")
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		resp, _ = app.do(t, "DELETE", "/api/v1/forms/f1/submissions/gone", "respondent", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("TestDeleteAll", func(t *testing.T) {
		app := newTestApp()
		app.submissions.On("DeleteAll", mock.Anything, "owner", "f1").Return(int64(4), nil)

		resp, data := app.do(t, "DELETE", "/api/v1/forms/f1/submissions", "owner", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"deleted":4}`, string(data))
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Run("TestRegister", func(t *testing.T) {
		app := newTestApp()
		body := `{"account_type":"individual","name":"Ana Pop","email":"ana@example.com","password":"1234","address":"Iasi"}`

		resp, data := app.do(t, "POST", "/api/v1/users", "", body)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.NotContains(t, string(data), "hash")
	})

	t.Run("TestRegisterConflict", func(t *testing.T) {
		app := newTestApp()
		app.users.registerErr = fmt.Errorf("%w: email already registered", models.ErrConflict)
		body := `{"account_type":"company","name":"Firma SRL","email":"office@example.com","password":"1234","address":"Iasi","fiscal_code":"RO1"}`

		resp, _ := app.do(t, "POST", "/api/v1/users", "", body)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("TestRegisterInvalidEmail", func(t *testing.T) {
		app := newTestApp()
		body := `{"account_type":"individual","name":"Ana Pop","email":"nope","password":"1234","address":"Iasi"}`

		resp, _ := app.do(t, "POST", "/api/v1/users", "", body)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("TestLoginInvalidCredentials", func(t *testing.T) {
		app := newTestApp()
		app.users.loginErr = models.ErrUnauthorized

		resp, _ := app.do(t, "POST", "/api/v1/login", "", `{"email":"a@example.com","password":"x"}`)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("TestLogoutRevokesPresentedToken", func(t *testing.T) {
		app := newTestApp()

		resp, _ := app.do(t, "POST", "/api/v1/logout", "u1", "")

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.NotEmpty(t, app.users.loggedOut)
	})

	t.Run("TestMe", func(t *testing.T) {
		app := newTestApp()

		resp, data := app.do(t, "GET", "/api/v1/users/me", "u7", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, string(data), `"id":"u7"`)
	})
}

type countingSweeper struct{ calls int }

func (s *countingSweeper) Sweep(context.Context, time.Time) (int, error) {
	s.calls++
	return 2, nil
}

func TestJobEndpoints(t *testing.T) {
	sweeper := &countingSweeper{}
	jc := NewJobsController(nil, sweeper, nil)
	app := fiber.New()
	app.Post("/sweep", jc.TriggerSweep)
	app.Post("/sweep/run-now", jc.RunSweepNow)

	resp, err := app.Test(httptest.NewRequest("POST", "/sweep", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/sweep/run-now", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, sweeper.calls)
}
