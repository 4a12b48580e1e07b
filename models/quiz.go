package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubjectKeys are the five fixed subjects tracked by the quiz, in the
// order the external predictor expects them.
var SubjectKeys = []string{"ads", "ds", "am", "java", "dbms"}

var (
	EducationLevels = []string{"btech1", "btech2", "btech3", "btech4"}
	StudyStyles     = []string{"visual", "auditory", "reading", "kinesthetic"}
	ParentEducation = []string{"high_school", "bachelors", "masters", "phd"}
	CareerAims      = []string{"software", "data", "ai", "other"}
)

// SubjectScore holds the self-reported numbers for one subject.
// Assignments, quizzes and participation are optional; the prediction
// builder substitutes a default when they are absent.
type SubjectScore struct {
	Marks         *float64 `bson:"marks,omitempty" json:"marks,omitempty"`
	Attendance    *float64 `bson:"attendance,omitempty" json:"attendance,omitempty"`
	Interest      *float64 `bson:"interest,omitempty" json:"interest,omitempty"`
	Assignments   *float64 `bson:"assignments,omitempty" json:"assignments,omitempty"`
	Quizzes       *float64 `bson:"quizzes,omitempty" json:"quizzes,omitempty"`
	Participation *float64 `bson:"participation,omitempty" json:"participation,omitempty"`
}

// QuizAnswer is the single, immutable per-user record of self-reported
// academic and lifestyle data. There is no update path: a second
// submission is rejected, never merged.
type QuizAnswer struct {
	ID              primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID      `bson:"user_id" json:"userId"`
	CurrentCGPA     float64                 `bson:"current_cgpa" json:"currentCGPA"`
	Education       string                  `bson:"education" json:"education"`
	Subjects        map[string]SubjectScore `bson:"subjects" json:"subjects"`
	Achievements    string                  `bson:"achievements,omitempty" json:"achievements,omitempty"`
	Hobbies         string                  `bson:"hobbies,omitempty" json:"hobbies,omitempty"`
	StudyStyle      string                  `bson:"study_style" json:"studyStyle"`
	ParentEducation string                  `bson:"parent_education" json:"parentEducation"`
	Aim             string                  `bson:"aim" json:"aim"`
	Goal            float64                 `bson:"goal" json:"goal"`
	ScreenTime      float64                 `bson:"screen_time" json:"screenTime"`
	SleepTime       float64                 `bson:"sleep_time" json:"sleepTime"`
	CreatedAt       time.Time               `bson:"created_at" json:"createdAt"`
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func enumReason(values []string) string {
	return fmt.Sprintf("must be one of %v", values)
}

// Validate checks every field against its declared range or enum.
// Per-subject numbers are optional in storage but range-checked when
// supplied; unknown subject keys are rejected.
func (q *QuizAnswer) Validate() []FieldViolation {
	var violations []FieldViolation

	if q.CurrentCGPA < 0 || q.CurrentCGPA > 10 {
		violations = append(violations, FieldViolation{"currentCGPA", "must be between 0 and 10"})
	}
	if !contains(EducationLevels, q.Education) {
		violations = append(violations, FieldViolation{"education", enumReason(EducationLevels)})
	}
	if !contains(StudyStyles, q.StudyStyle) {
		violations = append(violations, FieldViolation{"studyStyle", enumReason(StudyStyles)})
	}
	if !contains(ParentEducation, q.ParentEducation) {
		violations = append(violations, FieldViolation{"parentEducation", enumReason(ParentEducation)})
	}
	if !contains(CareerAims, q.Aim) {
		violations = append(violations, FieldViolation{"aim", enumReason(CareerAims)})
	}
	if q.Goal < 0 || q.Goal > 10 {
		violations = append(violations, FieldViolation{"goal", "must be between 0 and 10"})
	}
	if q.ScreenTime < 0 || q.ScreenTime > 24 {
		violations = append(violations, FieldViolation{"screenTime", "must be between 0 and 24"})
	}
	if q.SleepTime < 0 || q.SleepTime > 12 {
		violations = append(violations, FieldViolation{"sleepTime", "must be between 0 and 12"})
	}

	for name, score := range q.Subjects {
		if !contains(SubjectKeys, name) {
			violations = append(violations, FieldViolation{"subjects." + name, "unknown subject"})
			continue
		}
		violations = append(violations, score.validate("subjects."+name)...)
	}

	return violations
}

func (s *SubjectScore) validate(prefix string) []FieldViolation {
	var violations []FieldViolation

	percent := []struct {
		field string
		value *float64
	}{
		{"marks", s.Marks},
		{"attendance", s.Attendance},
		{"assignments", s.Assignments},
		{"quizzes", s.Quizzes},
		{"participation", s.Participation},
	}
	for _, p := range percent {
		if p.value != nil && (*p.value < 0 || *p.value > 100) {
			violations = append(violations, FieldViolation{prefix + "." + p.field, "must be between 0 and 100"})
		}
	}
	if s.Interest != nil && (*s.Interest < 1 || *s.Interest > 10) {
		violations = append(violations, FieldViolation{prefix + ".interest", "must be between 1 and 10"})
	}

	return violations
}
