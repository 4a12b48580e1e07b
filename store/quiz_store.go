package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raushankrgupta/student-insight-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrAlreadySubmitted = errors.New("quiz has already been submitted")

// QuizStore owns the quizanswers collection. The unique index on
// user_id enforces one submission per user: there is no separate
// existence check, the insert itself is the check. Two near-simultaneous
// submissions race on the index, and the loser gets ErrAlreadySubmitted.
type QuizStore struct {
	coll *mongo.Collection
}

func NewQuizStore(coll *mongo.Collection) *QuizStore {
	return &QuizStore{coll: coll}
}

// Submit validates and persists the one-time quiz record for the user.
func (s *QuizStore) Submit(ctx context.Context, userID primitive.ObjectID, answer *models.QuizAnswer) (*models.QuizAnswer, error) {
	if violations := answer.Validate(); len(violations) > 0 {
		return nil, &models.ValidationError{Violations: violations}
	}

	answer.ID = primitive.NewObjectID()
	answer.UserID = userID
	answer.CreatedAt = time.Now()

	if _, err := s.coll.InsertOne(ctx, answer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to save quiz answers: %w", err)
	}

	return answer, nil
}

// GetByUser returns the user's quiz record. ErrNotFound means the quiz
// has not been completed yet, which callers surface as a 404, not a
// server error.
func (s *QuizStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.QuizAnswer, error) {
	var answer models.QuizAnswer
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&answer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch quiz answers: %w", err)
	}
	return &answer, nil
}
