package discovery_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitscope/internal/discovery"
)

const (
	projectsDirectoryName          = "Projects"
	toolingGroupDirectoryName      = "Tooling"
	dashboardRepositoryName        = "dashboard"
	scannerRepositoryName          = "scanner"
	archiveRepositoryName          = "archive"
	plainDirectoryName             = "notes"
	gitMetadataDirectoryName       = ".git"
	gitMetadataFileContent         = "gitdir: ../shared/.git/worktrees/scanner\n"
	singleRootSubtestTitle         = "discoversRepositoriesFromSingleRoot"
	overlappingRootsSubtestTitle   = "deduplicatesRepositoriesFromOverlappingRoots"
	repositoryDirectoryPermissions = 0o755
	gitMetadataFilePermissions     = 0o644
)

type repositoryDefinition struct {
	directorySegments []string
	gitFileMetadata   bool
}

func (definition repositoryDefinition) repositoryPath(rootDirectory string) string {
	segments := append([]string{rootDirectory}, definition.directorySegments...)
	return filepath.Join(segments...)
}

func (definition repositoryDefinition) create(testFramework *testing.T, rootDirectory string) {
	testFramework.Helper()

	repositoryDirectoryPath := definition.repositoryPath(rootDirectory)
	require.NoError(testFramework, os.MkdirAll(repositoryDirectoryPath, repositoryDirectoryPermissions))

	gitMetadataPath := filepath.Join(repositoryDirectoryPath, gitMetadataDirectoryName)
	if definition.gitFileMetadata {
		require.NoError(testFramework, os.WriteFile(gitMetadataPath, []byte(gitMetadataFileContent), gitMetadataFilePermissions))
		return
	}
	require.NoError(testFramework, os.MkdirAll(gitMetadataPath, repositoryDirectoryPermissions))
}

func TestFilesystemRepositoryDiscovererDiscoversNestedLayouts(testFramework *testing.T) {
	repositoryDefinitions := []repositoryDefinition{
		{directorySegments: []string{projectsDirectoryName, toolingGroupDirectoryName, dashboardRepositoryName}},
		{directorySegments: []string{projectsDirectoryName, toolingGroupDirectoryName, scannerRepositoryName}, gitFileMetadata: true},
		{directorySegments: []string{projectsDirectoryName, archiveRepositoryName}},
	}

	testScenarios := []struct {
		title                      string
		rootDirectoriesConstructor func(string) []string
	}{
		{
			title: singleRootSubtestTitle,
			rootDirectoriesConstructor: func(rootDirectory string) []string {
				return []string{rootDirectory}
			},
		},
		{
			title: overlappingRootsSubtestTitle,
			rootDirectoriesConstructor: func(rootDirectory string) []string {
				projectsDirectoryPath := filepath.Join(rootDirectory, projectsDirectoryName)
				toolingDirectoryPath := filepath.Join(projectsDirectoryPath, toolingGroupDirectoryName)
				return []string{rootDirectory, projectsDirectoryPath, toolingDirectoryPath}
			},
		},
	}

	for _, testScenario := range testScenarios {
		testFramework.Run(testScenario.title, func(testFramework *testing.T) {
			temporaryRootDirectory := testFramework.TempDir()
			for _, definition := range repositoryDefinitions {
				definition.create(testFramework, temporaryRootDirectory)
			}
			require.NoError(testFramework, os.MkdirAll(filepath.Join(temporaryRootDirectory, plainDirectoryName), repositoryDirectoryPermissions))

			repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
			discoveredRepositories, discoveryError := repositoryDiscoverer.DiscoverRepositories(
				testScenario.rootDirectoriesConstructor(temporaryRootDirectory),
			)
			require.NoError(testFramework, discoveryError)

			expectedRepositories := make([]string, 0, len(repositoryDefinitions))
			for _, definition := range repositoryDefinitions {
				expectedRepositories = append(expectedRepositories, definition.repositoryPath(temporaryRootDirectory))
			}

			sort.Strings(expectedRepositories)
			require.Equal(testFramework, expectedRepositories, discoveredRepositories)
		})
	}
}

func TestFilesystemRepositoryDiscovererReportsEmptyRootsAsValid(testFramework *testing.T) {
	temporaryRootDirectory := testFramework.TempDir()
	require.NoError(testFramework, os.MkdirAll(filepath.Join(temporaryRootDirectory, plainDirectoryName), repositoryDirectoryPermissions))

	repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := repositoryDiscoverer.DiscoverRepositories([]string{temporaryRootDirectory})

	require.NoError(testFramework, discoveryError)
	require.Empty(testFramework, discoveredRepositories)
}
