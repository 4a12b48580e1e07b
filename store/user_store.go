package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/student-insight-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail = errors.New("user with this email already exists")
	ErrNotFound       = errors.New("record not found")
)

// UserStore owns the users collection. Uniqueness on email is backed by
// a unique index, so concurrent signups with the same address cannot
// both succeed.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(coll *mongo.Collection) *UserStore {
	return &UserStore{coll: coll}
}

// Create hashes the plaintext exactly once and inserts the user. The
// email is normalized before storage so uniqueness is case-insensitive.
func (s *UserStore) Create(ctx context.Context, name, email, plaintext string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = models.NormalizeEmail(email)

	var violations []models.FieldViolation
	if name == "" {
		violations = append(violations, models.FieldViolation{Field: "name", Reason: "must not be empty"})
	}
	if email == "" {
		violations = append(violations, models.FieldViolation{Field: "email", Reason: "must not be empty"})
	} else if !strings.Contains(email, "@") {
		violations = append(violations, models.FieldViolation{Field: "email", Reason: "must be a valid email address"})
	}
	if len(plaintext) < models.MinPasswordLength {
		violations = append(violations, models.FieldViolation{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", models.MinPasswordLength),
		})
	}
	if len(violations) > 0 {
		return nil, &models.ValidationError{Violations: violations}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindByEmail returns the full record including the password hash. Only
// the login flow should use it; everything else goes through FindByID.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// FindByID looks a user up by its hex object id. An unparseable id is
// treated as not-found rather than an internal error, since tokens are
// the usual source of ids.
func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = s.coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// VerifyPassword compares the candidate against the stored hash.
// bcrypt's comparison is constant-time.
func (s *UserStore) VerifyPassword(user *models.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

// UpdateProfile applies only the supplied fields ($set on individual
// paths); everything else is left untouched. Validation happens before
// any write, so a rejected update never changes stored state.
func (s *UserStore) UpdateProfile(ctx context.Context, id string, update *models.ProfileUpdate) (*models.User, error) {
	if violations := update.Validate(); len(violations) > 0 {
		return nil, &models.ValidationError{Violations: violations}
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = strings.TrimSpace(*update.Name)
	}
	if update.CollegeName != nil {
		set["profile.college_name"] = strings.TrimSpace(*update.CollegeName)
	}
	if update.CurrentCGPA != nil {
		set["profile.current_cgpa"] = *update.CurrentCGPA
	}
	if update.CurrentYear != nil {
		set["profile.current_year"] = *update.CurrentYear
	}
	if update.Branch != nil {
		set["profile.branch"] = strings.TrimSpace(*update.Branch)
	}
	if update.Hobbies != nil {
		set["profile.hobbies"] = update.Hobbies
	}
	if update.Achievements != nil {
		set["profile.achievements"] = update.Achievements
	}
	for name, marks := range update.Subjects {
		if marks != nil {
			set["profile.subjects."+name] = *marks
		}
	}

	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	var user models.User
	err = s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}
