package inspect

import (
	"context"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/temirov/gitscope/internal/gitrepo"
)

// RepositoryDiscoverer locates repository working trees beneath root directories.
type RepositoryDiscoverer interface {
	DiscoverRepositories(rootDirectories []string) ([]string, error)
}

// GitRepositoryManager exposes the read-only repository queries used during inspection.
type GitRepositoryManager interface {
	IsInsideWorkTree(executionContext context.Context, repositoryPath string) bool
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	GetLastCommit(executionContext context.Context, repositoryPath string) (gitrepo.CommitDetails, error)
	CountAheadBehind(executionContext context.Context, repositoryPath string) (gitrepo.AheadBehindCounts, error)
}

// ProgressEstimator computes a completion percentage for a repository.
type ProgressEstimator interface {
	Estimate(repositoryPath string, lastCommitTimestamp time.Time, hasCommits bool) int
}

// SnapshotRenderer presents repository snapshots to an output writer.
type SnapshotRenderer interface {
	Render(outputWriter io.Writer, snapshots []RepositorySnapshot) error
}

// FileSystem abstracts the filesystem operations used to validate scan roots.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}

// OSFileSystem implements FileSystem against the host operating system.
type OSFileSystem struct{}

// Stat returns the file information reported by the operating system.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
