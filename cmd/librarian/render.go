package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

const (
	outputTable = "table"
	outputJSON  = "json"

	dateLayout = "2006-01-02"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	highlightStyle = cellStyle.Foreground(lipgloss.Color("9"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

// view is what a command prints: the value for JSON output and the table for the terminal.
type view struct {
	value     any
	title     string
	headers   []string
	rows      [][]string
	highlight func(row int) bool
	footer    string
}

func (a *app) render(v view) error {
	if a.output == outputJSON {
		encoded, err := json.MarshalIndent(v.value, "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(a.stdout, string(encoded))

		return err
	}

	if v.title != "" {
		if _, err := fmt.Fprintln(a.stdout, titleStyle.Render(v.title)); err != nil {
			return err
		}
	}

	if len(v.headers) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(v.headers...).
			Rows(v.rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case v.highlight != nil && row >= 0 && row < len(v.rows) && v.highlight(row):
					return highlightStyle
				default:
					return cellStyle
				}
			})

		if _, err := fmt.Fprintln(a.stdout, t.Render()); err != nil {
			return err
		}
	}

	if v.footer != "" {
		if _, err := fmt.Fprintln(a.stdout, v.footer); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) renderCommandResult(commandType string, result shell.HandlerResult) error {
	outcome := "done"
	if result.Idempotent {
		outcome = "nothing to change"
	}

	return a.render(view{
		value: struct {
			Command       string `json:"command"`
			Idempotent    bool   `json:"idempotent"`
			RetryAttempts int    `json:"retry_attempts"`
		}{commandType, result.Idempotent, result.RetryAttempts},
		footer: fmt.Sprintf("%s: %s (%d attempt(s))", commandType, outcome, result.RetryAttempts),
	})
}

func pageFooter(page shell.PageInfo) string {
	return fmt.Sprintf("page %d of %d, %d total", page.Number, page.TotalPages, page.TotalItems)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format(dateLayout)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}

	return ""
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
