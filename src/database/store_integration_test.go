//go:build integration

package database_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"Bizonii-Backend/src/database"
	"Bizonii-Backend/src/models"
	"Bizonii-Backend/src/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	db, cleanup := testutils.SetupMongoForIntegration()
	testDB = db
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func TestFormStore(t *testing.T) {
	ctx := context.Background()
	store := database.NewFormStore(testDB)

	form := &models.Form{
		ID:                  "form-1",
		OwnerID:             "owner",
		Title:               "Cerere",
		DataRetentionPeriod: 30,
		Sections:            []models.DocumentSection{{ScanDocumentType: models.IdentityCard, Text: "<nume>"}},
		DynamicFields:       []models.DynamicField{{Placeholder: "nume", Type: models.FieldText, Mandatory: true, Keywords: []string{"nume"}}},
	}
	require.NoError(t, store.Create(ctx, form))

	got, err := store.Get(ctx, "form-1")
	require.NoError(t, err)
	assert.Equal(t, form, got)

	form.Title = "Cerere noua"
	require.NoError(t, store.Replace(ctx, form))
	list, err := store.ListByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cerere noua", list[0].Title)

	require.NoError(t, store.Delete(ctx, "form-1"))
	_, err = store.Get(ctx, "form-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, store.Replace(ctx, form), models.ErrNotFound)
}

func TestSubmissionStore(t *testing.T) {
	ctx := context.Background()
	store := database.NewSubmissionStore(testDB)
	now := time.Unix(1_700_000_000, 0)

	var fields models.FieldValues
	require.NoError(t, json.Unmarshal([]byte(`{"zeta":"z","alpha":42,"mid":1.5}`), &fields))

	subs := []*models.Submission{
		{ID: "expired", FormID: "f", SubmissionExpirationTime: now.Unix() - 1, CompletedDynamicFields: fields},
		{ID: "boundary", FormID: "f", SubmissionExpirationTime: now.Unix(), CompletedDynamicFields: fields},
		{ID: "alive", FormID: "f", SubmissionExpirationTime: now.Unix() + 1, CompletedDynamicFields: fields},
		{ID: "other", FormID: "g", SubmissionExpirationTime: now.Unix() + 1, CompletedDynamicFields: fields},
	}
	for _, s := range subs {
		require.NoError(t, store.Create(ctx, s))
	}

	got, err := store.Get(ctx, "alive")
	require.NoError(t, err)
	require.Len(t, got.CompletedDynamicFields, 3)
	assert.Equal(t, "zeta", got.CompletedDynamicFields[0].Placeholder)
	assert.Equal(t, int64(42), got.CompletedDynamicFields[1].Value)

	expired, err := store.ListExpired(ctx, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"expired", "boundary"}, expired)

	ok, err := store.Delete(ctx, "expired")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Delete(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := store.ListByForm(ctx, "f")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	n, err := store.DeleteByForm(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestUserStoreUniqueEmail(t *testing.T) {
	ctx := context.Background()
	store := database.NewUserStore(testDB)

	require.NoError(t, store.Create(ctx, &models.User{ID: "u1", Name: "Ana Pop", Email: "ana@example.com"}))
	err := store.Create(ctx, &models.User{ID: "u2", Name: "Alt Nume", Email: "ana@example.com"})
	assert.ErrorIs(t, err, models.ErrConflict)

	u, err := store.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = store.GetByName(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
