package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestUserPasswordNeverSerialized(t *testing.T) {
	user := User{
		Name:     "Asha",
		Email:    "a@x.com",
		Password: "$2a$12$somebcrypthash",
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "bcrypt")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
	assert.Equal(t, "asha@example.com", NormalizeEmail("ASHA@EXAMPLE.COM"))
}

func TestProfileUpdateValidateEmpty(t *testing.T) {
	update := &ProfileUpdate{}
	assert.Empty(t, update.Validate())
}

func TestProfileUpdateValidateValid(t *testing.T) {
	update := &ProfileUpdate{
		Name:        strPtr("Asha"),
		CollegeName: strPtr("IIT Delhi"),
		CurrentCGPA: floatPtr(8.2),
		CurrentYear: intPtr(3),
		Subjects:    map[string]*float64{"java": floatPtr(88)},
	}
	assert.Empty(t, update.Validate())
}

func TestProfileUpdateValidateViolations(t *testing.T) {
	tests := []struct {
		name   string
		update ProfileUpdate
		field  string
	}{
		{"cgpa too high", ProfileUpdate{CurrentCGPA: floatPtr(11)}, "currentCGPA"},
		{"cgpa negative", ProfileUpdate{CurrentCGPA: floatPtr(-0.5)}, "currentCGPA"},
		{"year too high", ProfileUpdate{CurrentYear: intPtr(5)}, "currentYear"},
		{"year zero", ProfileUpdate{CurrentYear: intPtr(0)}, "currentYear"},
		{"blank name", ProfileUpdate{Name: strPtr("   ")}, "name"},
		{"marks out of range", ProfileUpdate{Subjects: map[string]*float64{"dbms": floatPtr(101)}}, "subjects.dbms"},
		{"unknown subject", ProfileUpdate{Subjects: map[string]*float64{"os": floatPtr(70)}}, "subjects.os"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := tt.update.Validate()
			require.Len(t, violations, 1)
			assert.Equal(t, tt.field, violations[0].Field)
		})
	}
}

func TestProfileUpdateValidateRejectsUnsafeSubjectKeys(t *testing.T) {
	// Subject names become document paths; operator-looking or dotted
	// keys must fail validation instead of reaching the database.
	for _, key := range []string{"$gt", "a.b", "subjects.$[]", ""} {
		update := &ProfileUpdate{Subjects: map[string]*float64{key: floatPtr(50)}}
		violations := update.Validate()
		require.Len(t, violations, 1, "key %q", key)
		assert.Equal(t, "subjects."+key, violations[0].Field)
		assert.Equal(t, "unknown subject", violations[0].Reason)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Violations: []FieldViolation{
		{Field: "currentCGPA", Reason: "must be between 0 and 10"},
		{Field: "currentYear", Reason: "must be between 1 and 4"},
	}}
	assert.Equal(t, "validation failed: currentCGPA: must be between 0 and 10; currentYear: must be between 1 and 4", err.Error())
}
