package database

import (
	"context"
	"fmt"

	"Bizonii-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FormStore keeps form definitions in the forms collection.
type FormStore struct {
	coll *mongo.Collection
}

func NewFormStore(db *mongo.Database) *FormStore {
	return &FormStore{coll: db.Collection(FormsCollection)}
}

func (s *FormStore) Create(ctx context.Context, form *models.Form) error {
	_, err := s.coll.InsertOne(ctx, form)
	return err
}

func (s *FormStore) Get(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&form); err != nil {
		return nil, notFound(err, "form", id)
	}
	return &form, nil
}

func (s *FormStore) Replace(ctx context.Context, form *models.Form) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": form.ID}, form)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: form %s", models.ErrNotFound, form.ID)
	}
	return nil
}

func (s *FormStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: form %s", models.ErrNotFound, id)
	}
	return nil
}

func (s *FormStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Form, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	forms := []models.Form{}
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}
