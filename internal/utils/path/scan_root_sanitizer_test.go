package pathutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitscope/internal/utils/path"
)

const (
	testTildeRelativePathConstant    = "Projects/example"
	testNestedDirectoryNameConstant  = "nested"
	testSiblingDirectoryNameConstant = "sibling"
)

func TestScanRootSanitizerNormalizesInputs(testInstance *testing.T) {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	require.NoError(testInstance, homeDirectoryError)

	temporaryDirectory := testInstance.TempDir()
	tildeInput := filepath.Join("~", testTildeRelativePathConstant)
	expandedTilde := filepath.Join(homeDirectory, testTildeRelativePathConstant)

	sanitized := pathutils.NewScanRootSanitizer().Sanitize([]string{
		"",
		"  " + temporaryDirectory + "\t",
		tildeInput,
	})
	require.Equal(testInstance, []string{temporaryDirectory, expandedTilde}, sanitized)
}

func TestScanRootSanitizerPrunesNestedRoots(testInstance *testing.T) {
	parentDirectory := testInstance.TempDir()
	nestedDirectory := filepath.Join(parentDirectory, testNestedDirectoryNameConstant)
	siblingDirectory := filepath.Join(testInstance.TempDir(), testSiblingDirectoryNameConstant)

	testCases := []struct {
		name          string
		inputs        []string
		expectedRoots []string
	}{
		{
			name:          "nested_root_removed",
			inputs:        []string{parentDirectory, nestedDirectory},
			expectedRoots: []string{parentDirectory},
		},
		{
			name:          "duplicate_root_removed",
			inputs:        []string{parentDirectory, parentDirectory},
			expectedRoots: []string{parentDirectory},
		},
		{
			name:          "independent_roots_preserved",
			inputs:        []string{parentDirectory, siblingDirectory},
			expectedRoots: []string{parentDirectory, siblingDirectory},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			sanitized := pathutils.NewScanRootSanitizer().Sanitize(testCase.inputs)
			require.Equal(subtestInstance, testCase.expectedRoots, sanitized)
		})
	}
}

func TestScanRootSanitizerReturnsNilForEmptyResults(testInstance *testing.T) {
	sanitized := pathutils.NewScanRootSanitizer().Sanitize([]string{"   ", "\n"})
	require.Nil(testInstance, sanitized)
}
