package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sergi/go-diff/diffmatchpatch"

	"cte/internal/domain"
	"cte/internal/logger"
	"cte/internal/storage"
)

// FailureViewer displays failed test cases in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
	out     io.Writer
}

// NewFailureViewer creates a new FailureViewer. Resolve toggles are saved through st.
func NewFailureViewer(st storage.Storage, out io.Writer) *FailureViewer {
	return &FailureViewer{
		storage: st,
		out:     out,
	}
}

// View displays failures in an interactive TUI
func (fv *FailureViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		fmt.Fprintln(fv.out, color.GreenString("✓ No test failures found!"))
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, failure := range results.Details {
		list.AddItem(listItemText(failure, i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on the left (1/3), details on the right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(results.Details))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		statsView.SetText(formatFailureStats(failure))
		detailsView.SetText(formatFailureDetails(failure)).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() != 'r' && event.Rune() != 'R' {
				return event
			}
			index := list.GetCurrentItem()
			if index < 0 || index >= len(results.Details) {
				return nil
			}
			results.Details[index].Resolved = !results.Details[index].Resolved
			list.SetItemText(index, listItemText(results.Details[index], index), "")
			updateHeader()
			updateDetails()
			if err := fv.storage.SaveOutput(results); err != nil {
				logger.Error("Failed to save resolved status", "error", err)
			}
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

func headerText(failures []domain.TestFailure) string {
	unresolved := 0
	for _, failure := range failures {
		if !failure.Resolved {
			unresolved++
		}
	}
	return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
		len(failures), unresolved)
}

func listItemText(failure domain.TestFailure, index int) string {
	name := failure.Command
	switch {
	case failure.Kind == domain.FailureParse:
		name = "(unreadable fixture)"
	case name == "":
		name = "(no arguments)"
	}
	name = tview.Escape(name)

	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureStats formats the header line naming the fixture and case
func formatFailureStats(failure domain.TestFailure) string {
	path := failure.FilePath
	if path == "" {
		path = "Unknown path"
	}
	if failure.CaseIndex < 0 {
		return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]\n", tview.Escape(path))
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]#%d[white] %s\n",
		tview.Escape(path), failure.CaseIndex, tview.Escape(failure.Command))
}

// formatFailureDetails formats a failure for display using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", failure.Kind)

	if failure.Kind != domain.FailureParse {
		fmt.Fprintf(&b, "[cyan]Command:[white] %s\n\n", tview.Escape(failure.Command))
	}

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	if failure.Diff != "" {
		fmt.Fprintf(&b, "[yellow]Diff:[white]\n%s\n", tview.Escape(failure.Diff))
	}

	if failure.Kind == domain.FailureMismatch {
		fmt.Fprintf(&b, "[yellow]Changes:[white]\n%s\n\n", inlineDiff(failure.Expected, failure.Actual))
	}

	if failure.Stderr != "" {
		fmt.Fprintf(&b, "[yellow]Stderr:[white]\n%s\n", tview.Escape(failure.Stderr))
	}

	return b.String()
}

// inlineDiff highlights character-level changes from expected to actual output
func inlineDiff(expected, actual []string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.Join(expected, "\n"), strings.Join(actual, "\n"), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		text := tview.Escape(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("[green]" + text + "[white]")
		case diffmatchpatch.DiffDelete:
			b.WriteString("[red::s]" + text + "[white::-]")
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}
