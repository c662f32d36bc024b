package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	defaultScanRootConstant           = "."
	rootNotDirectoryMessageConstant   = "scan root %s is not a directory"
	rootInaccessibleMessageConstant   = "scan root %s is not accessible"
	discoveryFailedMessageConstant    = "repository discovery failed: %w"
	renderingFailedMessageConstant    = "dashboard rendering failed: %w"
	serviceDependenciesErrorConstant  = "inspection service requires discoverer, git manager, estimator, and renderer"
	errInvalidScanRootMessageConstant = "invalid scan root"
)

// ErrInvalidScanRoot indicates that a requested scan root cannot be searched.
var ErrInvalidScanRoot = errors.New(errInvalidScanRootMessageConstant)

// InvalidRootError describes a scan root that does not exist or is not a directory.
type InvalidRootError struct {
	// Path holds the offending scan root.
	Path string
	// Cause holds the underlying failure when one exists.
	Cause error
}

// Error formats the invalid root condition for presentation.
func (invalidRootError InvalidRootError) Error() string {
	if invalidRootError.Cause != nil {
		return fmt.Sprintf(rootInaccessibleMessageConstant, invalidRootError.Path)
	}
	return fmt.Sprintf(rootNotDirectoryMessageConstant, invalidRootError.Path)
}

// Unwrap exposes the sentinel so callers can match with errors.Is.
func (invalidRootError InvalidRootError) Unwrap() error {
	return ErrInvalidScanRoot
}

// Service orchestrates repository discovery, inspection, and rendering.
type Service struct {
	discoverer   RepositoryDiscoverer
	gitManager   GitRepositoryManager
	estimator    ProgressEstimator
	renderer     SnapshotRenderer
	fileSystem   FileSystem
	outputWriter io.Writer
}

// NewService constructs a Service from its collaborators.
// The file system defaults to the host operating system and the output writer
// defaults to standard output when nil values are provided.
func NewService(
	discoverer RepositoryDiscoverer,
	gitManager GitRepositoryManager,
	estimator ProgressEstimator,
	renderer SnapshotRenderer,
	fileSystem FileSystem,
	outputWriter io.Writer,
) (*Service, error) {
	if discoverer == nil || gitManager == nil || estimator == nil || renderer == nil {
		return nil, errors.New(serviceDependenciesErrorConstant)
	}
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	return &Service{
		discoverer:   discoverer,
		gitManager:   gitManager,
		estimator:    estimator,
		renderer:     renderer,
		fileSystem:   fileSystem,
		outputWriter: outputWriter,
	}, nil
}

// Run scans the configured roots and renders the resulting dashboard.
func (service *Service) Run(executionContext context.Context, options ScanOptions) error {
	snapshots, snapshotError := service.Snapshots(executionContext, options)
	if snapshotError != nil {
		return snapshotError
	}
	if renderError := service.renderer.Render(service.outputWriter, snapshots); renderError != nil {
		return fmt.Errorf(renderingFailedMessageConstant, renderError)
	}
	return nil
}

// Snapshots scans the configured roots and returns one snapshot per repository.
// Individual repository failures degrade the affected snapshot fields instead
// of aborting the scan; only invalid roots and discovery failures are fatal.
func (service *Service) Snapshots(executionContext context.Context, options ScanOptions) ([]RepositorySnapshot, error) {
	scanRoots := options.Roots
	if len(scanRoots) == 0 {
		scanRoots = []string{defaultScanRootConstant}
	}
	for _, scanRoot := range scanRoots {
		rootInformation, statError := service.fileSystem.Stat(scanRoot)
		if statError != nil {
			return nil, InvalidRootError{Path: scanRoot, Cause: statError}
		}
		if !rootInformation.IsDir() {
			return nil, InvalidRootError{Path: scanRoot}
		}
	}

	repositoryPaths, discoveryError := service.discoverer.DiscoverRepositories(scanRoots)
	if discoveryError != nil {
		return nil, fmt.Errorf(discoveryFailedMessageConstant, discoveryError)
	}

	snapshots := make([]RepositorySnapshot, 0, len(repositoryPaths))
	for _, repositoryPath := range repositoryPaths {
		if !service.gitManager.IsInsideWorkTree(executionContext, repositoryPath) {
			continue
		}
		snapshots = append(snapshots, service.inspectRepository(executionContext, repositoryPath))
	}
	return snapshots, nil
}

func (service *Service) inspectRepository(executionContext context.Context, repositoryPath string) RepositorySnapshot {
	snapshot := RepositorySnapshot{
		Path:              repositoryPath,
		FolderName:        filepath.Base(repositoryPath),
		Branch:            UnknownFieldLabel,
		LastCommitMessage: UnknownFieldLabel,
		LastCommitAuthor:  UnknownFieldLabel,
	}

	if branchName, branchError := service.gitManager.GetCurrentBranch(executionContext, repositoryPath); branchError == nil {
		snapshot.Branch = branchName
	}

	if worktreeClean, cleanError := service.gitManager.CheckCleanWorktree(executionContext, repositoryPath); cleanError == nil {
		snapshot.WorktreeClean = worktreeClean
		snapshot.CleanKnown = true
	}

	if commitDetails, commitError := service.gitManager.GetLastCommit(executionContext, repositoryPath); commitError == nil {
		snapshot.HasCommits = true
		snapshot.LastCommitMessage = commitDetails.Subject
		snapshot.LastCommitAuthor = commitDetails.Author
		snapshot.LastCommitTimestamp = commitDetails.Timestamp
	}

	if aheadBehindCounts, countError := service.gitManager.CountAheadBehind(executionContext, repositoryPath); countError == nil {
		snapshot.CommitsAhead = aheadBehindCounts.Ahead
		snapshot.CommitsBehind = aheadBehindCounts.Behind
		snapshot.HasUpstream = aheadBehindCounts.HasUpstream
	}

	snapshot.ProgressPercent = service.estimator.Estimate(repositoryPath, snapshot.LastCommitTimestamp, snapshot.HasCommits)
	return snapshot
}
