package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinPasswordLength is enforced on the plaintext before hashing.
const MinPasswordLength = 6

// User represents a registered student
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Password hash is not returned in JSON
	Profile   Profile            `bson:"profile,omitempty" json:"profile"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Profile is the mutable academic-detail portion of a User record
type Profile struct {
	CollegeName  string             `bson:"college_name,omitempty" json:"collegeName,omitempty"`
	CurrentCGPA  *float64           `bson:"current_cgpa,omitempty" json:"currentCGPA,omitempty"`
	CurrentYear  *int               `bson:"current_year,omitempty" json:"currentYear,omitempty"`
	Branch       string             `bson:"branch,omitempty" json:"branch,omitempty"`
	Hobbies      []string           `bson:"hobbies,omitempty" json:"hobbies,omitempty"`
	Achievements []string           `bson:"achievements,omitempty" json:"achievements,omitempty"`
	Subjects     map[string]float64 `bson:"subjects,omitempty" json:"subjects,omitempty"`
}

// ProfileUpdate carries a partial profile payload. Nil pointers mean
// "leave unchanged"; only supplied fields are validated and persisted.
type ProfileUpdate struct {
	Name         *string             `json:"name,omitempty"`
	CollegeName  *string             `json:"collegeName,omitempty"`
	CurrentCGPA  *float64            `json:"currentCGPA,omitempty"`
	CurrentYear  *int                `json:"currentYear,omitempty"`
	Branch       *string             `json:"branch,omitempty"`
	Hobbies      []string            `json:"hobbies,omitempty"`
	Achievements []string            `json:"achievements,omitempty"`
	Subjects     map[string]*float64 `json:"subjects,omitempty"`
}

// FieldViolation describes a single validation failure
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates field violations into one error value
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NormalizeEmail trims and lower-cases an email so uniqueness and
// lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks every supplied field against its declared range.
// Unset (nil) fields are skipped since they will not be persisted.
func (p *ProfileUpdate) Validate() []FieldViolation {
	var violations []FieldViolation

	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		violations = append(violations, FieldViolation{"name", "must not be empty"})
	}
	if p.CurrentCGPA != nil && (*p.CurrentCGPA < 0 || *p.CurrentCGPA > 10) {
		violations = append(violations, FieldViolation{"currentCGPA", "must be between 0 and 10"})
	}
	if p.CurrentYear != nil && (*p.CurrentYear < 1 || *p.CurrentYear > 4) {
		violations = append(violations, FieldViolation{"currentYear", "must be between 1 and 4"})
	}
	for name, marks := range p.Subjects {
		// Subject names end up as $set path segments, so only the
		// fixed keys are allowed through.
		if !contains(SubjectKeys, name) {
			violations = append(violations, FieldViolation{"subjects." + name, "unknown subject"})
			continue
		}
		if marks != nil && (*marks < 0 || *marks > 100) {
			violations = append(violations, FieldViolation{"subjects." + name, "marks must be between 0 and 100"})
		}
	}

	return violations
}
