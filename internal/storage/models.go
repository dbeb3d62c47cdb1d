/*
Package storage provides data models for the learner records.

Records are serialized as camelCase JSON so documents written by earlier
clients (browser localStorage exports) decode unchanged. Dates and times are
kept as the ISO-8601 text they were stored with; use ParseTime to read them.
*/
package storage

// ExamType identifies the entrance exam a test result belongs to.
type ExamType string

const (
	ExamJEE  ExamType = "JEE"
	ExamNEET ExamType = "NEET"
)

// Valid reports whether t is a known exam type.
func (t ExamType) Valid() bool {
	return t == ExamJEE || t == ExamNEET
}

// UserInfo is the learner profile. It is overwritten wholesale on save.
type UserInfo struct {
	Age         int    `json:"age"`
	Location    string `json:"location"`
	StudyingFor string `json:"studyingFor"`
}

// TestResult is one graded test. Results are append-only within UserProgress.
type TestResult struct {
	Topic         string   `json:"topic"`
	ExamType      ExamType `json:"examType"`
	Score         float64  `json:"score"`
	PredictedRank int      `json:"predictedRank"`
	Date          string   `json:"date"`
}

// UserProgress tracks level, streaks and the test result log.
type UserProgress struct {
	Level          int          `json:"level"`
	Streak         int          `json:"streak"`
	BestStreak     int          `json:"bestStreak"`
	TotalQuestions int          `json:"totalQuestions"`
	CorrectAnswers int          `json:"correctAnswers"`
	TestResults    []TestResult `json:"testResults"`
	LastActive     string       `json:"lastActive"`
}

// ProgressUpdate is a partial UserProgress. Nil fields keep their current
// value. Test results are appended with AddTestResult.
type ProgressUpdate struct {
	Level          *int
	Streak         *int
	BestStreak     *int
	TotalQuestions *int
	CorrectAnswers *int
	LastActive     *string
}

// HistoryEntry is one topic in the search history.
type HistoryEntry struct {
	Topic     string `json:"topic"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Context   string `json:"context"`
	ID        string `json:"id"`
}

// HistoryOptions carries the optional metadata of AddToHistory.
// Empty fields take the defaults DefaultHistoryType and "".
type HistoryOptions struct {
	Type    string
	Context string
}

const (
	// DefaultHistoryType is the entry type used when none is given.
	DefaultHistoryType = "search"

	// MaxHistoryEntries caps the history length.
	MaxHistoryEntries = 50
)
