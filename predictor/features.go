package predictor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raushankrgupta/student-insight-backend/models"
)

// ErrIncompleteQuizData means a required scalar was missing from the
// stored quiz record; partial data is never sent upstream.
var ErrIncompleteQuizData = errors.New("quiz data is incomplete")

// DefaultEngagement fills in the optional assignments/quizzes/
// participation numbers the quiz does not collect.
const DefaultEngagement = 50

// FeaturePayload is the flat field set the prediction service expects.
// Field order matches the externally documented feature order.
type FeaturePayload struct {
	CurrentCGPA     float64 `json:"current_cgpa"`
	EducationLevel  string  `json:"education_level"`
	StudyStyle      string  `json:"study_style"`
	ParentEducation string  `json:"parent_education"`
	ScreenTime      float64 `json:"screen_time"`
	SleepTime       float64 `json:"sleep_time"`

	AdsMarks         float64 `json:"ads_marks"`
	AdsAttendance    float64 `json:"ads_attendance"`
	AdsInterest      float64 `json:"ads_interest"`
	AdsAssignments   float64 `json:"ads_assignments"`
	AdsQuizzes       float64 `json:"ads_quizzes"`
	AdsParticipation float64 `json:"ads_participation"`

	DsMarks         float64 `json:"ds_marks"`
	DsAttendance    float64 `json:"ds_attendance"`
	DsInterest      float64 `json:"ds_interest"`
	DsAssignments   float64 `json:"ds_assignments"`
	DsQuizzes       float64 `json:"ds_quizzes"`
	DsParticipation float64 `json:"ds_participation"`

	AmMarks         float64 `json:"am_marks"`
	AmAttendance    float64 `json:"am_attendance"`
	AmInterest      float64 `json:"am_interest"`
	AmAssignments   float64 `json:"am_assignments"`
	AmQuizzes       float64 `json:"am_quizzes"`
	AmParticipation float64 `json:"am_participation"`

	JavaMarks         float64 `json:"java_marks"`
	JavaAttendance    float64 `json:"java_attendance"`
	JavaInterest      float64 `json:"java_interest"`
	JavaAssignments   float64 `json:"java_assignments"`
	JavaQuizzes       float64 `json:"java_quizzes"`
	JavaParticipation float64 `json:"java_participation"`

	DbmsMarks         float64 `json:"dbms_marks"`
	DbmsAttendance    float64 `json:"dbms_attendance"`
	DbmsInterest      float64 `json:"dbms_interest"`
	DbmsAssignments   float64 `json:"dbms_assignments"`
	DbmsQuizzes       float64 `json:"dbms_quizzes"`
	DbmsParticipation float64 `json:"dbms_participation"`
}

type subjectFeatures struct {
	marks, attendance, interest         float64
	assignments, quizzes, participation float64
}

func extractSubject(answer *models.QuizAnswer, name string) (subjectFeatures, []string) {
	var feats subjectFeatures
	var missing []string

	score, ok := answer.Subjects[name]
	if !ok {
		return feats, []string{name + ".marks", name + ".attendance", name + ".interest"}
	}

	if score.Marks == nil {
		missing = append(missing, name+".marks")
	} else {
		feats.marks = *score.Marks
	}
	if score.Attendance == nil {
		missing = append(missing, name+".attendance")
	} else {
		feats.attendance = *score.Attendance
	}
	if score.Interest == nil {
		missing = append(missing, name+".interest")
	} else {
		feats.interest = *score.Interest
	}

	feats.assignments = valueOrDefault(score.Assignments)
	feats.quizzes = valueOrDefault(score.Quizzes)
	feats.participation = valueOrDefault(score.Participation)

	return feats, missing
}

func valueOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultEngagement
	}
	return *v
}

// BuildFeaturePayload reshapes a stored quiz record into the flat
// payload the prediction service expects. No inference happens here;
// missing optional engagement numbers default, missing required ones
// fail the whole build.
func BuildFeaturePayload(answer *models.QuizAnswer) (*FeaturePayload, error) {
	var missing []string
	if answer.Education == "" {
		missing = append(missing, "education")
	}
	if answer.StudyStyle == "" {
		missing = append(missing, "studyStyle")
	}
	if answer.ParentEducation == "" {
		missing = append(missing, "parentEducation")
	}

	subjects := make(map[string]subjectFeatures, len(models.SubjectKeys))
	for _, name := range models.SubjectKeys {
		feats, miss := extractSubject(answer, name)
		subjects[name] = feats
		missing = append(missing, miss...)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteQuizData, strings.Join(missing, ", "))
	}

	ads, ds, am, java, dbms := subjects["ads"], subjects["ds"], subjects["am"], subjects["java"], subjects["dbms"]

	return &FeaturePayload{
		CurrentCGPA:     answer.CurrentCGPA,
		EducationLevel:  answer.Education,
		StudyStyle:      answer.StudyStyle,
		ParentEducation: answer.ParentEducation,
		ScreenTime:      answer.ScreenTime,
		SleepTime:       answer.SleepTime,

		AdsMarks:         ads.marks,
		AdsAttendance:    ads.attendance,
		AdsInterest:      ads.interest,
		AdsAssignments:   ads.assignments,
		AdsQuizzes:       ads.quizzes,
		AdsParticipation: ads.participation,

		DsMarks:         ds.marks,
		DsAttendance:    ds.attendance,
		DsInterest:      ds.interest,
		DsAssignments:   ds.assignments,
		DsQuizzes:       ds.quizzes,
		DsParticipation: ds.participation,

		AmMarks:         am.marks,
		AmAttendance:    am.attendance,
		AmInterest:      am.interest,
		AmAssignments:   am.assignments,
		AmQuizzes:       am.quizzes,
		AmParticipation: am.participation,

		JavaMarks:         java.marks,
		JavaAttendance:    java.attendance,
		JavaInterest:      java.interest,
		JavaAssignments:   java.assignments,
		JavaQuizzes:       java.quizzes,
		JavaParticipation: java.participation,

		DbmsMarks:         dbms.marks,
		DbmsAttendance:    dbms.attendance,
		DbmsInterest:      dbms.interest,
		DbmsAssignments:   dbms.assignments,
		DbmsQuizzes:       dbms.quizzes,
		DbmsParticipation: dbms.participation,
	}, nil
}
