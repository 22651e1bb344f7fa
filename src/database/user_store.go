package database

import (
	"context"
	"fmt"

	"Bizonii-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(UsersCollection)}
}

// Create maps a unique-index violation to models.ErrConflict.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: user already registered", models.ErrConflict)
	}
	return err
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id}, id)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email}, email)
}

func (s *UserStore) GetByName(ctx context.Context, name string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"name": name}, name)
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, id)
	}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M, key string) (*models.User, error) {
	var u models.User
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, notFound(err, "user", key)
	}
	return &u, nil
}
