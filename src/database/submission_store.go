package database

import (
	"context"
	"fmt"
	"time"

	"Bizonii-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionStore keeps form submissions in the submissions collection. It
// serves both the submission service and the retention sweeper.
type SubmissionStore struct {
	coll *mongo.Collection
}

func NewSubmissionStore(db *mongo.Database) *SubmissionStore {
	return &SubmissionStore{coll: db.Collection(SubmissionsCollection)}
}

func (s *SubmissionStore) Create(ctx context.Context, sub *models.Submission) error {
	_, err := s.coll.InsertOne(ctx, sub)
	return err
}

func (s *SubmissionStore) Get(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		return nil, notFound(err, "submission", id)
	}
	return &sub, nil
}

// Replace is last-writer-wins; there is no version check.
func (s *SubmissionStore) Replace(ctx context.Context, sub *models.Submission) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sub.ID}, sub)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: submission %s", models.ErrNotFound, sub.ID)
	}
	return nil
}

// Delete reports whether this call removed the record.
func (s *SubmissionStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListByForm returns the form's submissions in insertion order.
func (s *SubmissionStore) ListByForm(ctx context.Context, formID string) ([]models.Submission, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"form_id": formID}, options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *SubmissionStore) DeleteByForm(ctx context.Context, formID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"form_id": formID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListExpired returns the ids of submissions expiring at or before now.
func (s *SubmissionStore) ListExpired(ctx context.Context, now time.Time) ([]string, error) {
	filter := bson.M{"submission_expiration_time": bson.M{"$lte": now.Unix()}}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}
