package storage

import "slices"

// DefaultProgress returns the progress of a learner with no stored record.
func (s *Service) DefaultProgress() UserProgress {
	return UserProgress{
		Level:       1,
		TestResults: []TestResult{},
		LastActive:  FormatTime(s.now()),
	}
}

// SaveProgress overwrites the stored progress.
func (s *Service) SaveProgress(progress UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveProgress(progress)
}

// GetProgress returns the stored progress, or DefaultProgress when absent.
func (s *Service) GetProgress() (UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getProgress()
}

// UpdateProgress merges the set fields of update into the stored progress
// and returns the result.
func (s *Service) UpdateProgress(update ProgressUpdate) (UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.progressForUpdate()
	if err != nil {
		return UserProgress{}, err
	}

	if update.Level != nil {
		progress.Level = *update.Level
	}
	if update.Streak != nil {
		progress.Streak = *update.Streak
	}
	if update.BestStreak != nil {
		progress.BestStreak = *update.BestStreak
	}
	if update.TotalQuestions != nil {
		progress.TotalQuestions = *update.TotalQuestions
	}
	if update.CorrectAnswers != nil {
		progress.CorrectAnswers = *update.CorrectAnswers
	}
	if update.LastActive != nil {
		progress.LastActive = *update.LastActive
	}

	if err := s.saveProgress(progress); err != nil {
		return UserProgress{}, err
	}
	return progress, nil
}

// AddTestResult appends result to the stored test results.
func (s *Service) AddTestResult(result TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.progressForUpdate()
	if err != nil {
		return err
	}
	progress.TestResults = append(progress.TestResults, result)
	return s.saveProgress(progress)
}

// GetTestResults returns a copy of the stored test results in append order.
func (s *Service) GetTestResults() ([]TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.getProgress()
	if err != nil {
		return nil, err
	}
	return slices.Clone(progress.TestResults), nil
}

func (s *Service) getProgress() (UserProgress, error) {
	var progress *UserProgress
	found, err := s.readRecord(progressKey, &progress)
	if err != nil {
		return UserProgress{}, err
	}
	return s.progressOrDefault(found, progress), nil
}

// progressForUpdate reads the progress for a read-modify-write. A malformed
// record is an error, never a default.
func (s *Service) progressForUpdate() (UserProgress, error) {
	var progress *UserProgress
	found, err := s.decodeRecord(progressKey, &progress)
	if err != nil {
		return UserProgress{}, err
	}
	return s.progressOrDefault(found, progress), nil
}

func (s *Service) progressOrDefault(found bool, progress *UserProgress) UserProgress {
	if !found || progress == nil {
		return s.DefaultProgress()
	}
	if progress.TestResults == nil {
		progress.TestResults = []TestResult{}
	}
	return *progress
}

func (s *Service) saveProgress(progress UserProgress) error {
	if progress.TestResults == nil {
		progress.TestResults = []TestResult{}
	}
	return s.writeRecord(progressKey, progress)
}
