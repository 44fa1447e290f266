// Package output renders server responses for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/papercomputeco/kazama/pkg/llm"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 80

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the width of the terminal behind f, or DefaultWidth.
func Width(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Markdown renders markdown content for terminal display.
func Markdown(w io.Writer, content string, width int) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = io.WriteString(w, rendered)
	return err
}

// ChatContent extracts message.content from a chat response.
func ChatContent(resp llm.Response) (string, bool) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := obj["message"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := msg["content"].(string)
	return content, ok
}

// ServerError extracts the error message of an error body, if resp is one.
func ServerError(resp llm.Response) (string, bool) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := obj["error"].(string)
	return msg, ok
}

// ModelTable renders the models[] list of a tags or ps response as a table.
// Responses of any other shape are written as JSON.
func ModelTable(w io.Writer, resp llm.Response) error {
	obj, ok := resp.(map[string]any)
	if !ok {
		return JSON(w, resp)
	}
	models, ok := obj["models"].([]any)
	if !ok {
		return JSON(w, resp)
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		model, ok := m.(map[string]any)
		if !ok {
			return JSON(w, resp)
		}
		rows = append(rows, []string{
			stringField(model, "name"),
			formatBytes(model["size"]),
			firstField(model, "modified_at", "expires_at"),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "SIZE", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func firstField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(m, k); s != "" {
			return s
		}
	}
	return ""
}

func formatBytes(v any) string {
	n, ok := v.(float64)
	if !ok {
		return ""
	}

	const (
		unit  = 1000
		units = "kMGTPE"
	)
	if n < unit {
		return fmt.Sprintf("%d B", int64(n))
	}
	div, exp := float64(unit), 0
	for m := n / unit; m >= unit && exp < len(units)-1; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", n/div, units[exp])
}
