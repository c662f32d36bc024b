package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/gitscope/internal/execshell"
)

const (
	gitRevParseSubcommandConstant      = "rev-parse"
	gitStatusSubcommandConstant        = "status"
	gitLogSubcommandConstant           = "log"
	gitRevListSubcommandConstant       = "rev-list"
	gitIsInsideWorkTreeFlagConstant    = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant           = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant    = "--symbolic-full-name"
	gitPorcelainFlagConstant           = "--porcelain"
	gitSingleCommitFlagConstant        = "-1"
	gitLeftRightFlagConstant           = "--left-right"
	gitCountFlagConstant               = "--count"
	gitHeadReferenceConstant           = "HEAD"
	gitUpstreamReferenceConstant       = "@{u}"
	gitHeadUpstreamRangeConstant       = "HEAD...@{u}"
	gitTrueOutputConstant              = "true"
	gitCommitFormatFlagConstant        = "--format=%ct%x09%an%x09%s"
	commitFieldSeparatorConstant       = "\t"
	commitFieldCountConstant           = 3
	aheadBehindFieldCountConstant      = 2
	decimalIntegerBaseConstant         = 10
	integerBitSizeConstant             = 64
	malformedCommitTemplateConstant    = "malformed commit description %q"
	malformedCountsTemplateConstant    = "malformed ahead/behind counts %q"
	malformedTimestampTemplateConstant = "malformed commit timestamp %q"
)

// Sentinel errors surfaced by RepositoryManager.
var (
	// ErrExecutorNotConfigured indicates the manager was constructed without a git executor.
	ErrExecutorNotConfigured = errors.New("git executor not configured")
	// ErrNoCommits indicates the repository history is empty.
	ErrNoCommits = errors.New("repository has no commits")
	// ErrDetachedHead indicates the repository is not on a named branch.
	ErrDetachedHead = errors.New("repository head is detached")
)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommitDetails describes the most recent commit on the current branch.
type CommitDetails struct {
	Timestamp time.Time
	Author    string
	Subject   string
}

// AheadBehindCounts captures divergence between the local branch and its upstream.
type AheadBehindCounts struct {
	Ahead       int
	Behind      int
	HasUpstream bool
}

// RepositoryManager performs read-only git queries against a repository working directory.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsInsideWorkTree reports whether the path belongs to a usable git working tree.
func (manager *RepositoryManager) IsInsideWorkTree(executionContext context.Context, repositoryPath string) bool {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitIsInsideWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return false
	}

	return strings.TrimSpace(executionResult.StandardOutput) == gitTrueOutputConstant
}

// GetCurrentBranch resolves the checked-out branch name, reporting ErrDetachedHead when no branch is active.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", executionError
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if len(branchName) == 0 || strings.EqualFold(branchName, gitHeadReferenceConstant) {
		return "", ErrDetachedHead
	}
	return branchName, nil
}

// CheckCleanWorktree reports whether the working tree has no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return false, executionError
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// GetLastCommit returns the timestamp, author, and subject of the most recent commit.
// Repositories without any commits report ErrNoCommits.
func (manager *RepositoryManager) GetLastCommit(executionContext context.Context, repositoryPath string) (CommitDetails, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, gitSingleCommitFlagConstant, gitCommitFormatFlagConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		failedCommand := execshell.CommandFailedError{}
		if errors.As(executionError, &failedCommand) {
			return CommitDetails{}, ErrNoCommits
		}
		return CommitDetails{}, executionError
	}

	trimmedOutput := strings.TrimSpace(executionResult.StandardOutput)
	if len(trimmedOutput) == 0 {
		return CommitDetails{}, ErrNoCommits
	}

	return parseCommitDescription(trimmedOutput)
}

// CountAheadBehind resolves upstream divergence for the current branch.
// Repositories without a configured upstream report zero counts and HasUpstream false.
func (manager *RepositoryManager) CountAheadBehind(executionContext context.Context, repositoryPath string) (AheadBehindCounts, error) {
	upstreamDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitSymbolicFullNameFlagConstant, gitUpstreamReferenceConstant},
		WorkingDirectory: repositoryPath,
	}

	upstreamResult, upstreamError := manager.executor.ExecuteGit(executionContext, upstreamDetails)
	if upstreamError != nil || len(strings.TrimSpace(upstreamResult.StandardOutput)) == 0 {
		return AheadBehindCounts{}, nil
	}

	countDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevListSubcommandConstant, gitLeftRightFlagConstant, gitCountFlagConstant, gitHeadUpstreamRangeConstant},
		WorkingDirectory: repositoryPath,
	}

	countResult, countError := manager.executor.ExecuteGit(executionContext, countDetails)
	if countError != nil {
		return AheadBehindCounts{}, countError
	}

	return parseAheadBehindCounts(countResult.StandardOutput)
}

func parseCommitDescription(commitDescription string) (CommitDetails, error) {
	commitFields := strings.SplitN(commitDescription, commitFieldSeparatorConstant, commitFieldCountConstant)
	if len(commitFields) < commitFieldCountConstant {
		return CommitDetails{}, fmt.Errorf(malformedCommitTemplateConstant, commitDescription)
	}

	commitEpochSeconds, timestampError := strconv.ParseInt(strings.TrimSpace(commitFields[0]), decimalIntegerBaseConstant, integerBitSizeConstant)
	if timestampError != nil {
		return CommitDetails{}, fmt.Errorf(malformedTimestampTemplateConstant, commitFields[0])
	}

	return CommitDetails{
		Timestamp: time.Unix(commitEpochSeconds, 0),
		Author:    strings.TrimSpace(commitFields[1]),
		Subject:   strings.TrimSpace(commitFields[2]),
	}, nil
}

func parseAheadBehindCounts(countOutput string) (AheadBehindCounts, error) {
	countFields := strings.Fields(countOutput)
	if len(countFields) != aheadBehindFieldCountConstant {
		return AheadBehindCounts{}, fmt.Errorf(malformedCountsTemplateConstant, countOutput)
	}

	aheadCount, aheadError := strconv.Atoi(countFields[0])
	if aheadError != nil || aheadCount < 0 {
		return AheadBehindCounts{}, fmt.Errorf(malformedCountsTemplateConstant, countOutput)
	}

	behindCount, behindError := strconv.Atoi(countFields[1])
	if behindError != nil || behindCount < 0 {
		return AheadBehindCounts{}, fmt.Errorf(malformedCountsTemplateConstant, countOutput)
	}

	return AheadBehindCounts{Ahead: aheadCount, Behind: behindCount, HasUpstream: true}, nil
}
