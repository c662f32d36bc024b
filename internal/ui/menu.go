package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	menuHeaderConstant              = "==== GitScope Menu ===="
	menuScanOptionLineConstant      = "1. Scan repositories"
	menuHelpOptionLineConstant      = "2. Show help"
	menuExitOptionLineConstant      = "3. Exit"
	menuSelectionPromptConstant     = "Select an option: "
	menuScanSelectionConstant       = "1"
	menuHelpSelectionConstant       = "2"
	menuExitSelectionConstant       = "3"
	menuInvalidSelectionTemplate    = "Unknown option %q. Enter 1, 2, or 3.\n"
	menuScanStartMessageConstant    = "Scanning repositories..."
	menuScanCompleteMessageConstant = "Scan complete."
	menuScanFailureTemplateConstant = "Scan failed: %v\n"
	menuFarewellMessageConstant     = "Goodbye."
	menuScanActionRequiredConstant  = "interactive menu requires a scan action"
)

// ScanAction runs a repository scan on behalf of the interactive menu.
type ScanAction func(executionContext context.Context) error

// InteractiveMenu drives the numbered menu loop shown when gitscope starts
// without a scan path.
type InteractiveMenu struct {
	reader     *bufio.Reader
	writer     io.Writer
	scanAction ScanAction
}

// NewInteractiveMenu constructs a menu reading selections from input and
// writing prompts to output.
func NewInteractiveMenu(input io.Reader, output io.Writer, scanAction ScanAction) (*InteractiveMenu, error) {
	if scanAction == nil {
		return nil, errors.New(menuScanActionRequiredConstant)
	}
	return &InteractiveMenu{reader: bufio.NewReader(input), writer: output, scanAction: scanAction}, nil
}

// Run repeats the prompt loop until the user exits or input is exhausted.
// Scan failures are reported to the user and the loop continues, matching
// the behavior of per-repository failures during a scan.
func (menu *InteractiveMenu) Run(executionContext context.Context) error {
	for {
		if promptError := menu.printPrompt(); promptError != nil {
			return promptError
		}

		selection, readError := menu.reader.ReadString('\n')
		trimmedSelection := strings.TrimSpace(selection)
		if readError != nil && readError != io.EOF {
			return readError
		}

		switch trimmedSelection {
		case menuScanSelectionConstant:
			fmt.Fprintln(menu.writer, menuScanStartMessageConstant)
			if scanError := menu.scanAction(executionContext); scanError != nil {
				fmt.Fprintf(menu.writer, menuScanFailureTemplateConstant, scanError)
			} else {
				fmt.Fprintln(menu.writer, menuScanCompleteMessageConstant)
			}
		case menuHelpSelectionConstant:
			fmt.Fprintln(menu.writer, HelpPanelText())
		case menuExitSelectionConstant:
			fmt.Fprintln(menu.writer, menuFarewellMessageConstant)
			return nil
		default:
			if len(trimmedSelection) > 0 {
				fmt.Fprintf(menu.writer, menuInvalidSelectionTemplate, trimmedSelection)
			}
		}

		if readError == io.EOF {
			return nil
		}
	}
}

func (menu *InteractiveMenu) printPrompt() error {
	menuLines := []string{
		menuHeaderConstant,
		menuScanOptionLineConstant,
		menuHelpOptionLineConstant,
		menuExitOptionLineConstant,
	}
	for _, menuLine := range menuLines {
		if _, writeError := fmt.Fprintln(menu.writer, menuLine); writeError != nil {
			return writeError
		}
	}
	_, writeError := io.WriteString(menu.writer, menuSelectionPromptConstant)
	return writeError
}
