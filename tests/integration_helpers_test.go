package tests

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/temirov/gitscope/cmd/cli"
)

const (
	gitExecutableNameConstant     = "git"
	gitMissingSkipMessageConstant = "git executable not available"
	gitCommandTimeoutConstant     = 30 * time.Second
	defaultBranchNameConstant     = "main"
	readmeFileNameConstant        = "README.md"
)

func requireGitBinary(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(gitExecutableNameConstant); lookupError != nil {
		testInstance.Skip(gitMissingSkipMessageConstant)
	}
}

func runGitCommand(testInstance *testing.T, workingDirectory string, arguments ...string) {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), gitCommandTimeoutConstant)
	defer cancel()

	command := exec.CommandContext(executionContext, gitExecutableNameConstant, arguments...)
	command.Dir = workingDirectory
	outputBytes, runError := command.CombinedOutput()
	if runError != nil {
		testInstance.Fatalf("git %s failed: %v\n%s", strings.Join(arguments, " "), runError, string(outputBytes))
	}
}

func initializeRepository(testInstance *testing.T, parentDirectory string, repositoryName string) string {
	testInstance.Helper()

	repositoryPath := filepath.Join(parentDirectory, repositoryName)
	if makeError := os.MkdirAll(repositoryPath, 0o755); makeError != nil {
		testInstance.Fatalf("unable to create repository directory: %v", makeError)
	}

	runGitCommand(testInstance, repositoryPath, "init")
	runGitCommand(testInstance, repositoryPath, "checkout", "-b", defaultBranchNameConstant)
	return repositoryPath
}

func commitReadme(testInstance *testing.T, repositoryPath string, wordCount int) {
	testInstance.Helper()

	readmeWords := make([]string, 0, wordCount)
	for wordIndex := 0; wordIndex < wordCount; wordIndex++ {
		readmeWords = append(readmeWords, "overview")
	}
	readmePath := filepath.Join(repositoryPath, readmeFileNameConstant)
	if writeError := os.WriteFile(readmePath, []byte(strings.Join(readmeWords, " ")), 0o644); writeError != nil {
		testInstance.Fatalf("unable to write README: %v", writeError)
	}

	runGitCommand(testInstance, repositoryPath, "add", readmeFileNameConstant)
	runGitCommand(testInstance, repositoryPath, "commit", "-m", "Describe the project")
}

func executeScanCommand(testInstance *testing.T, arguments ...string) (string, error) {
	testInstance.Helper()

	outputBuffer := &bytes.Buffer{}
	rootCommand := cli.NewApplication().RootCommand()
	rootCommand.SetOut(outputBuffer)
	rootCommand.SetErr(outputBuffer)
	rootCommand.SetIn(strings.NewReader(""))
	rootCommand.SetArgs(arguments)

	executionError := rootCommand.Execute()
	return outputBuffer.String(), executionError
}
