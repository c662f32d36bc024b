package inspect

import "time"

// UnknownFieldLabel marks snapshot fields whose values could not be determined.
const UnknownFieldLabel = "unknown"

// RepositorySnapshot captures the inspection outcome for a single repository.
type RepositorySnapshot struct {
	// Path holds the absolute or root-relative path of the repository working tree.
	Path string
	// FolderName holds the base name of the repository directory.
	FolderName string
	// Branch holds the checked-out branch name, UnknownFieldLabel when it could not be resolved.
	Branch string
	// LastCommitMessage holds the subject line of the most recent commit.
	LastCommitMessage string
	// LastCommitAuthor holds the author name of the most recent commit.
	LastCommitAuthor string
	// LastCommitTimestamp holds the author timestamp of the most recent commit.
	LastCommitTimestamp time.Time
	// HasCommits reports whether the repository contains at least one commit.
	HasCommits bool
	// CommitsAhead counts local commits missing from the upstream branch.
	CommitsAhead int
	// CommitsBehind counts upstream commits missing from the local branch.
	CommitsBehind int
	// HasUpstream reports whether the checked-out branch tracks an upstream branch.
	HasUpstream bool
	// WorktreeClean reports whether the working tree has no pending changes.
	WorktreeClean bool
	// CleanKnown reports whether the working tree state could be determined.
	CleanKnown bool
	// ProgressPercent holds the estimated completion percentage in [0, 100].
	ProgressPercent int
}

// ScanOptions carries the caller-provided parameters of a repository scan.
type ScanOptions struct {
	// Roots lists the directories whose subtrees are searched for repositories.
	Roots []string
}
