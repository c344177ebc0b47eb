package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeAverageAllScoresValid(t *testing.T) {
	r := GradeRecord{Nota1: "15", Nota2: "18", FinalExam: "16"}
	assert.Equal(t, "16.33", r.AverageDisplay())
}

func TestGradeAverageEmptyRecord(t *testing.T) {
	r := GradeRecord{}
	_, ok := r.Average()
	assert.False(t, ok)
	assert.Equal(t, GradeSentinel, r.AverageDisplay())
}

func TestGradeAverageSkipsInvalidScores(t *testing.T) {
	// 25 is above the scale and the final exam is missing, so only the 10
	// counts. Invalid values never collapse to zero.
	r := GradeRecord{Nota1: "25", Nota2: "10", FinalExam: ""}
	avg, ok := r.Average()
	assert.True(t, ok)
	assert.InDelta(t, 10.0, avg, 0.001)
	assert.Equal(t, "10.00", r.AverageDisplay())
}

func TestGradeAverageRejectsNonNumeric(t *testing.T) {
	r := GradeRecord{Nota1: "abc", Nota2: "NaN", FinalExam: "+Inf"}
	assert.Equal(t, GradeSentinel, r.AverageDisplay())
}

func TestGradeAverageNegativeExcluded(t *testing.T) {
	r := GradeRecord{Nota1: "-3", Nota2: "12"}
	avg, ok := r.Average()
	assert.True(t, ok)
	assert.InDelta(t, 12.0, avg, 0.001)
}

func TestGradeAverageTrimsWhitespace(t *testing.T) {
	r := GradeRecord{Nota1: " 14 ", Nota2: "16"}
	assert.Equal(t, "15.00", r.AverageDisplay())
}

func TestGradeAverageBoundaryValues(t *testing.T) {
	r := GradeRecord{Nota1: "0", Nota2: "20"}
	avg, ok := r.Average()
	assert.True(t, ok)
	assert.InDelta(t, 10.0, avg, 0.001)
}

func TestGradeAverageRoundsTwoDecimals(t *testing.T) {
	// 10, 10, 11 averages to 10.333..., rendered as 10.33.
	r := GradeRecord{Nota1: "10", Nota2: "10", FinalExam: "11"}
	assert.Equal(t, "10.33", r.AverageDisplay())
}

func TestRecordForMissingSubject(t *testing.T) {
	book := StudentGradebook{StudentID: "stu-1"}
	record := book.RecordFor("sbj-1")
	assert.Equal(t, GradeRecord{}, record)
}
