package tui

import (
	"fmt"
	"strings"
	"testing"
)

func TestChatModelRenderUsesViewportAndScroll(t *testing.T) {
	t.Parallel()

	chat := NewChatModel(0)
	chat.SetViewportHeight(3)
	theme := ResolveTheme("dark")

	for i := 1; i <= 5; i++ {
		chat.Append("user", fmt.Sprintf("m%d", i))
	}

	rendered := chat.Render(80, theme)
	if strings.Contains(rendered, "m1") || strings.Contains(rendered, "m2") {
		t.Fatalf("expected initial render at bottom, got %q", rendered)
	}
	if !strings.Contains(rendered, "m3") || !strings.Contains(rendered, "m5") {
		t.Fatalf("expected bottom window to include m3..m5, got %q", rendered)
	}

	chat.ScrollUp(2)
	rendered = chat.Render(80, theme)
	if !strings.Contains(rendered, "m1") || !strings.Contains(rendered, "m3") {
		t.Fatalf("expected scrolled render to include m1..m3, got %q", rendered)
	}
	if strings.Contains(rendered, "m5") {
		t.Fatalf("expected scrolled render to exclude m5, got %q", rendered)
	}
}

func TestChatModelRolePrefixes(t *testing.T) {
	t.Parallel()

	theme := ResolveTheme("dark")

	tests := []struct {
		role string
		want string
	}{
		{role: "user", want: "You:"},
		{role: "assistant", want: "Claude:"},
		{role: "error", want: "Error:"},
		{role: "anything-else", want: "You:"},
	}

	for _, tc := range tests {
		prefix, _ := rolePrefix(tc.role, theme)
		if prefix != tc.want {
			t.Fatalf("rolePrefix(%q) = %q, want %q", tc.role, prefix, tc.want)
		}
	}
}

func TestChatModelEmptyTextHint(t *testing.T) {
	t.Parallel()

	theme := ResolveTheme("dark")
	chat := NewChatModel(0)
	chat.SetEmptyText("Type 'quit' to stop.")

	if rendered := chat.Render(60, theme); !strings.Contains(rendered, "Type 'quit' to stop.") {
		t.Fatalf("expected hint in empty render, got %q", rendered)
	}

	chat.Append("user", "hello")
	if rendered := chat.Render(60, theme); strings.Contains(rendered, "Type 'quit' to stop.") {
		t.Fatalf("hint should disappear after first message, got %q", rendered)
	}
}

func TestChatModelIgnoresBlankAppends(t *testing.T) {
	t.Parallel()

	chat := NewChatModel(0)
	chat.Append("user", "   ")
	if got := len(chat.Messages()); got != 0 {
		t.Fatalf("len(Messages()) = %d, want 0", got)
	}
}

func TestChatModelRetentionLimit(t *testing.T) {
	t.Parallel()

	chat := NewChatModel(2)
	chat.Append("user", "one")
	chat.Append("user", "two")
	chat.Append("user", "three")

	messages := chat.Messages()
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Content != "two" || messages[1].Content != "three" {
		t.Fatalf("messages = %+v, want oldest dropped", messages)
	}
}
