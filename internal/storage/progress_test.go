package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSaveAndGetProgress(t *testing.T) {
	svc, _ := newTestService(t)

	p := UserProgress{
		Level:          4,
		Streak:         3,
		BestStreak:     9,
		TotalQuestions: 120,
		CorrectAnswers: 97,
		LastActive:     FormatTime(fixedNow.Add(-time.Hour)),
	}
	require.NoError(t, svc.SaveProgress(p))

	got, err := svc.GetProgress()
	require.NoError(t, err)
	p.TestResults = []TestResult{}
	assert.Equal(t, p, got)
}

func TestUpdateProgressMergesSetFields(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.SaveProgress(UserProgress{Level: 2, Streak: 5, BestStreak: 7, LastActive: fixedNowISO}))
	require.NoError(t, svc.AddTestResult(TestResult{Topic: "waves", ExamType: ExamJEE}))

	later := FormatTime(fixedNow.Add(24 * time.Hour))
	updated, err := svc.UpdateProgress(ProgressUpdate{
		Streak:     intPtr(0),
		LastActive: &later,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 0, updated.Streak)
	assert.Equal(t, 7, updated.BestStreak)
	assert.Equal(t, later, updated.LastActive)
	assert.Len(t, updated.TestResults, 1)

	stored, err := svc.GetProgress()
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateProgressOnFreshStore(t *testing.T) {
	svc, _ := newTestService(t)

	updated, err := svc.UpdateProgress(ProgressUpdate{TotalQuestions: intPtr(10), CorrectAnswers: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Level)
	assert.Equal(t, 10, updated.TotalQuestions)
	assert.Equal(t, 8, updated.CorrectAnswers)
	assert.Equal(t, fixedNowISO, updated.LastActive)
}

func TestAddTestResultAppendsInOrder(t *testing.T) {
	svc, _ := newTestService(t)

	topics := []string{"algebra", "organic chemistry", "algebra", "genetics"}
	for i, topic := range topics {
		require.NoError(t, svc.AddTestResult(TestResult{
			Topic:         topic,
			ExamType:      ExamNEET,
			Score:         float64(50 + i),
			PredictedRank: 1000 - i,
			Date:          FormatTime(fixedNow.Add(time.Duration(i) * time.Minute)),
		}))
	}

	results, err := svc.GetTestResults()
	require.NoError(t, err)
	require.Len(t, results, len(topics))
	for i, topic := range topics {
		assert.Equal(t, topic, results[i].Topic)
		assert.Equal(t, float64(50+i), results[i].Score)
	}
}

func TestGetTestResultsReturnsCopy(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.AddTestResult(TestResult{Topic: "optics", Score: 80}))

	results, err := svc.GetTestResults()
	require.NoError(t, err)
	results[0].Score = 0
	_ = append(results, TestResult{Topic: "injected"})

	again, err := svc.GetTestResults()
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, 80.0, again[0].Score)
}

func TestSaveProgressNilResultsStoredAsEmpty(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, svc.SaveProgress(UserProgress{Level: 1}))

	raw, ok, err := store.Get(progressKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"testResults":[]`)
}
