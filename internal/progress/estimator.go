// Package progress derives a rough completion percentage for a repository.
//
// The heuristic combines README word count with the age of the most recent
// commit. It is intentionally approximate; the only guarantees are
// determinism for identical inputs and a result clamped to [0,100].
package progress

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	maximumScoreConstant            = 100
	minimumScoreConstant            = 0
	readmeWordsPerPointConstant     = 10
	recencyPenaltyPerDayConstant    = 2
	readmeScoreWeightConstant       = 0.5
	recencyScoreWeightConstant      = 0.5
	hoursPerDayConstant             = 24
	roundingOffsetConstant          = 0.5
	defaultReadmeCandidateMarkdown  = "README.md"
	defaultReadmeCandidateBare      = "README"
	defaultReadmeCandidatePlainText = "README.txt"
	defaultReadmeCandidateRest      = "README.rst"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// DefaultReadmeCandidateNames lists README file names probed in order.
func DefaultReadmeCandidateNames() []string {
	return []string{
		defaultReadmeCandidateMarkdown,
		defaultReadmeCandidateBare,
		defaultReadmeCandidatePlainText,
		defaultReadmeCandidateRest,
	}
}

// Estimator computes progress percentages from README contents and commit recency.
type Estimator struct {
	readmeCandidateNames []string
	clock                Clock
}

// NewEstimator constructs an Estimator using the provided README candidates and clock.
// Empty candidates and a nil clock fall back to defaults.
func NewEstimator(readmeCandidateNames []string, clock Clock) *Estimator {
	resolvedCandidates := readmeCandidateNames
	if len(resolvedCandidates) == 0 {
		resolvedCandidates = DefaultReadmeCandidateNames()
	}
	resolvedClock := clock
	if resolvedClock == nil {
		resolvedClock = SystemClock{}
	}
	return &Estimator{readmeCandidateNames: resolvedCandidates, clock: resolvedClock}
}

// Estimate produces the progress percentage for a repository path and its last commit.
// Repositories without commits score from the README alone.
func (estimator *Estimator) Estimate(repositoryPath string, lastCommitTimestamp time.Time, hasCommits bool) int {
	readmeWordCount := estimator.readmeWordCount(repositoryPath)
	commitAgeDays := 0
	if hasCommits {
		elapsed := estimator.clock.Now().Sub(lastCommitTimestamp)
		if elapsed > 0 {
			commitAgeDays = int(elapsed.Hours() / hoursPerDayConstant)
		}
	}
	return EstimateFromMeasurements(readmeWordCount, commitAgeDays, hasCommits)
}

// EstimateFromMeasurements computes the percentage from raw measurements.
// Identical measurements always yield identical results.
func EstimateFromMeasurements(readmeWordCount int, commitAgeDays int, hasCommits bool) int {
	readmeScore := clampScore(readmeWordCount / readmeWordsPerPointConstant)

	recencyScore := minimumScoreConstant
	if hasCommits {
		recencyScore = clampScore(maximumScoreConstant - recencyPenaltyPerDayConstant*commitAgeDays)
	}

	weightedScore := readmeScoreWeightConstant*float64(readmeScore) + recencyScoreWeightConstant*float64(recencyScore)
	return clampScore(int(weightedScore + roundingOffsetConstant))
}

func (estimator *Estimator) readmeWordCount(repositoryPath string) int {
	for _, candidateName := range estimator.readmeCandidateNames {
		readmeContent, readError := os.ReadFile(filepath.Join(repositoryPath, candidateName))
		if readError != nil {
			continue
		}
		return len(strings.Fields(string(readmeContent)))
	}
	return 0
}

func clampScore(score int) int {
	if score < minimumScoreConstant {
		return minimumScoreConstant
	}
	if score > maximumScoreConstant {
		return maximumScoreConstant
	}
	return score
}
