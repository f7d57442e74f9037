package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Form       string
	Chips      string
	Stats      string
	List       string
	Help       string
	Palette    string
	StatusLine string
	IsError    bool
	Footer     string
	Width      int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const defaultPanelWidth = 72

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = defaultPanelWidth
	}
	panel := panelStyle.Width(width)

	top := strings.Join(nonEmpty(data.Form, data.Chips, data.Stats), "\n\n")
	lines := []string{
		headerStyle.Render(data.Header),
		panel.Render(top),
		panel.Render(data.List),
	}
	if data.Palette != "" {
		lines = append(lines, panel.Render(data.Palette))
	}
	if data.Help != "" {
		lines = append(lines, panel.Render(data.Help))
	}
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
