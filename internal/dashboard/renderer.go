// Package dashboard renders repository snapshots as a terminal table.
package dashboard

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/temirov/gitscope/internal/inspect"
)

const (
	projectColumnHeaderConstant     = "Project"
	branchColumnHeaderConstant      = "Branch"
	lastCommitColumnHeaderConstant  = "Last Commit"
	messageColumnHeaderConstant     = "Message"
	aheadBehindColumnHeaderConstant = "Ahead/Behind"
	stateColumnHeaderConstant       = "State"
	progressColumnHeaderConstant    = "Progress"
	commitDateLayoutConstant        = "2006-01-02"
	aheadBehindTemplateConstant     = "+%d / -%d"
	progressTemplateConstant        = "%d%%"
	unavailableCellLabelConstant    = "n/a"
	cleanStateLabelConstant         = "clean"
	dirtyStateLabelConstant         = "dirty"
	unknownStateLabelConstant       = "unknown"
	emptyDashboardNoticeConstant    = "No Git repositories found."
	commitMessageDisplayLimit       = 48
	truncationSuffixConstant        = "..."
)

// TableRenderer presents repository snapshots as an aligned table with
// colorized working tree states.
type TableRenderer struct {
	cleanStatePainter   *color.Color
	dirtyStatePainter   *color.Color
	unknownStatePainter *color.Color
}

// NewTableRenderer constructs a TableRenderer with the default state palette.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{
		cleanStatePainter:   color.New(color.FgGreen),
		dirtyStatePainter:   color.New(color.FgRed),
		unknownStatePainter: color.New(color.FgYellow),
	}
}

// Render writes the snapshot table to the output writer. An empty snapshot
// list produces an explanatory notice instead of a bare table frame.
func (renderer *TableRenderer) Render(outputWriter io.Writer, snapshots []inspect.RepositorySnapshot) error {
	if len(snapshots) == 0 {
		_, writeError := fmt.Fprintln(outputWriter, emptyDashboardNoticeConstant)
		return writeError
	}

	snapshotTable := tablewriter.NewWriter(outputWriter)
	snapshotTable.SetHeader([]string{
		projectColumnHeaderConstant,
		branchColumnHeaderConstant,
		lastCommitColumnHeaderConstant,
		messageColumnHeaderConstant,
		aheadBehindColumnHeaderConstant,
		stateColumnHeaderConstant,
		progressColumnHeaderConstant,
	})
	snapshotTable.SetAutoWrapText(false)
	snapshotTable.SetAutoFormatHeaders(false)

	for _, snapshot := range snapshots {
		snapshotTable.Append([]string{
			snapshot.FolderName,
			snapshot.Branch,
			renderer.formatCommitDate(snapshot),
			truncateCommitMessage(snapshot.LastCommitMessage),
			formatAheadBehind(snapshot),
			renderer.formatWorktreeState(snapshot),
			fmt.Sprintf(progressTemplateConstant, snapshot.ProgressPercent),
		})
	}

	snapshotTable.Render()
	return nil
}

func (renderer *TableRenderer) formatCommitDate(snapshot inspect.RepositorySnapshot) string {
	if !snapshot.HasCommits {
		return unavailableCellLabelConstant
	}
	return snapshot.LastCommitTimestamp.Format(commitDateLayoutConstant)
}

func (renderer *TableRenderer) formatWorktreeState(snapshot inspect.RepositorySnapshot) string {
	switch {
	case !snapshot.CleanKnown:
		return renderer.unknownStatePainter.Sprint(unknownStateLabelConstant)
	case snapshot.WorktreeClean:
		return renderer.cleanStatePainter.Sprint(cleanStateLabelConstant)
	default:
		return renderer.dirtyStatePainter.Sprint(dirtyStateLabelConstant)
	}
}

func formatAheadBehind(snapshot inspect.RepositorySnapshot) string {
	if !snapshot.HasUpstream {
		return unavailableCellLabelConstant
	}
	return fmt.Sprintf(aheadBehindTemplateConstant, snapshot.CommitsAhead, snapshot.CommitsBehind)
}

func truncateCommitMessage(commitMessage string) string {
	if utf8.RuneCountInString(commitMessage) <= commitMessageDisplayLimit {
		return commitMessage
	}
	messageRunes := []rune(commitMessage)
	return string(messageRunes[:commitMessageDisplayLimit-len(truncationSuffixConstant)]) + truncationSuffixConstant
}
