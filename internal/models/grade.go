package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Scores are recorded on a 0-20 scale.
const MaxScore = 20.0

// GradeSentinel is rendered when a record holds no computable score. It is
// distinct from zero: an empty gradebook is "not computable", not a fail.
const GradeSentinel = "-"

// GradeRecord holds the three score fields for one student in one subject.
// Scores arrive as raw form values and may be empty, so they are kept as
// strings and validated at computation time.
type GradeRecord struct {
	Nota1        string `json:"nota1"`
	Nota2        string `json:"nota2"`
	FinalExam    string `json:"final_exam"`
	Observations string `json:"observations"`
}

// ValidScores returns the scores that parse to a finite number within
// [0, MaxScore]. Out-of-range and non-numeric values are excluded, never
// coerced to zero.
func (r GradeRecord) ValidScores() []float64 {
	raw := []string{r.Nota1, r.Nota2, r.FinalExam}
	scores := make([]float64, 0, len(raw))
	for _, field := range raw {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < 0 || v > MaxScore {
			continue
		}
		scores = append(scores, v)
	}
	return scores
}

// Average computes the arithmetic mean of the valid scores rounded to two
// decimal places. The second return is false when no score is valid.
func (r GradeRecord) Average() (float64, bool) {
	scores := r.ValidScores()
	if len(scores) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range scores {
		sum += v
	}
	return math.Round(sum/float64(len(scores))*100) / 100, true
}

// AverageDisplay formats the average with two decimals, or the sentinel when
// the record holds no valid score.
func (r GradeRecord) AverageDisplay() string {
	avg, ok := r.Average()
	if !ok {
		return GradeSentinel
	}
	return strconv.FormatFloat(avg, 'f', 2, 64)
}

// StudentGradebook maps subject IDs to the student's grade records.
type StudentGradebook struct {
	ID        string                 `json:"id"`
	StudentID string                 `json:"student_id"`
	Grades    map[string]GradeRecord `json:"grades"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// RecordFor returns the grade record for a subject, zero-valued when absent.
func (g StudentGradebook) RecordFor(subjectID string) GradeRecord {
	if g.Grades == nil {
		return GradeRecord{}
	}
	return g.Grades[subjectID]
}

// GradeSheetRow is one line of a class grade sheet for a subject.
type GradeSheetRow struct {
	StudentID   string      `json:"student_id"`
	StudentName string      `json:"student_name"`
	Record      GradeRecord `json:"record"`
	Average     string      `json:"average"`
}

// ClassGradeSheet aggregates grade rows for a class and subject.
type ClassGradeSheet struct {
	ClassID     string          `json:"class_id"`
	ClassName   string          `json:"class_name"`
	SubjectID   string          `json:"subject_id"`
	SubjectName string          `json:"subject_name"`
	Rows        []GradeSheetRow `json:"rows"`
}
