package tui

import (
	"strings"
)

// StatusModel renders the top status bar of the chat surface.
type StatusModel struct {
	Title     string
	ModelName string
	State     string
}

// NewStatusModel constructs status data for rendering.
func NewStatusModel(title, modelName string) StatusModel {
	return StatusModel{
		Title:     strings.TrimSpace(title),
		ModelName: strings.TrimSpace(modelName),
		State:     "idle",
	}
}

// SetState updates the runtime state token.
func (m *StatusModel) SetState(state string) {
	m.State = strings.TrimSpace(state)
	if m.State == "" {
		m.State = "idle"
	}
}

// Render draws a one-line status bar.
func (m StatusModel) Render(width int, theme Theme) string {
	parts := []string{
		fallbackText(m.Title, "agents"),
		fallbackText(m.ModelName, "unknown-model"),
		"state: " + fallbackText(m.State, "idle"),
	}
	line := strings.Join(parts, " | ")
	style := theme.StatusBarStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(line)
}

func fallbackText(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
