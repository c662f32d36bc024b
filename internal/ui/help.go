package ui

const helpPanelTextConstant = `GitScope inspects the Git repositories beneath a directory.

It walks the directory tree, queries each repository with the git command,
and renders a dashboard table with one row per repository: the checked-out
branch, the latest commit, commits ahead of and behind the upstream branch,
the working tree state, and an estimated progress percentage derived from
README length and commit recency.

Usage:
  gitscope                 Launch the interactive menu
  gitscope --path DIR      Scan DIR and print the dashboard
  gitscope -p DIR          Shorthand for --path
  gitscope --menu          Launch the interactive menu explicitly
  gitscope --helpme        Show this help panel and exit

Repositories that cannot be fully inspected stay in the dashboard with
their unreadable fields marked unknown; only an invalid scan path aborts
the run.
`

// HelpPanelText returns the help panel shared by the interactive menu and
// the --helpme flag.
func HelpPanelText() string {
	return helpPanelTextConstant
}
