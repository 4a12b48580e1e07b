package api

import (
	"testing"

	"github.com/raushankrgupta/student-insight-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func reportAnswer(marks map[string]float64) *models.QuizAnswer {
	subjects := make(map[string]models.SubjectScore, len(marks))
	for name, m := range marks {
		subjects[name] = models.SubjectScore{
			Marks:      floatPtr(m),
			Attendance: floatPtr(90),
			Interest:   floatPtr(7),
		}
	}
	return &models.QuizAnswer{Subjects: subjects}
}

func TestBuildStudentReportAverageAndRows(t *testing.T) {
	user := testUser()
	answer := reportAnswer(map[string]float64{
		"ads": 70, "ds": 75, "am": 80, "java": 65, "dbms": 72,
	})

	report := buildStudentReport(user, answer)

	assert.Equal(t, "Asha", report.StudentName)
	assert.Equal(t, "a@x.com", report.Email)
	assert.Equal(t, 72.4, report.AverageScore)
	require.Len(t, report.Subjects, 5)
	// rows come back in the fixed subject order
	assert.Equal(t, "ads", report.Subjects[0].Subject)
	assert.Equal(t, "dbms", report.Subjects[4].Subject)
	assert.Equal(t, "Good progress. Focus on improving weaker areas.", report.Recommendations)
}

func TestBuildStudentReportRecommendationTiers(t *testing.T) {
	user := testUser()

	high := buildStudentReport(user, reportAnswer(map[string]float64{
		"ads": 85, "ds": 90, "am": 88, "java": 82, "dbms": 95,
	}))
	assert.Equal(t, "Excellent performance! Keep up the great work.", high.Recommendations)

	low := buildStudentReport(user, reportAnswer(map[string]float64{
		"ads": 40, "ds": 55, "am": 30, "java": 45, "dbms": 50,
	}))
	assert.Equal(t, "Additional practice recommended. Review core concepts.", low.Recommendations)
}

func TestBuildStudentReportSkipsMissingSubjects(t *testing.T) {
	user := testUser()
	report := buildStudentReport(user, reportAnswer(map[string]float64{
		"ads": 60, "java": 80,
	}))

	require.Len(t, report.Subjects, 2)
	assert.Equal(t, 70.0, report.AverageScore)
}

func TestBuildStudentReportNoMarks(t *testing.T) {
	report := buildStudentReport(testUser(), &models.QuizAnswer{})
	assert.Zero(t, report.AverageScore)
	assert.Empty(t, report.Subjects)
	assert.Equal(t, "Additional practice recommended. Review core concepts.", report.Recommendations)
}
