package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KPowellAi/intro-to-ai-agents/internal/agent"
	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
)

const (
	defaultAppWidth  = 100
	defaultMaxTokens = 1024

	noReplyText = "(no text response)"
	apiKeyHint  = "Make sure ANTHROPIC_API_KEY is set."
)

// quitWords end the chat session when typed on their own, matching the
// classic read-loop convention.
var quitWords = []string{"quit", "exit", "q"}

// AppConfig configures the chat surface.
type AppConfig struct {
	Title     string
	Hint      string
	ModelName string
	ThemeName string
	Gateway   llm.Gateway
	System    string
	MaxTokens int
}

// replyMsg delivers one completed gateway call back to the update loop.
type replyMsg struct {
	response *llm.Response
	err      error
}

// App is the BubbleTea model for the plain conversational example: a growing
// append-only conversation, one gateway call per submitted line, no tools.
type App struct {
	theme   Theme
	gateway llm.Gateway

	system    string
	model     string
	maxTokens int

	conversation *agent.Conversation

	width  int
	height int

	status  StatusModel
	chat    ChatModel
	input   InputModel
	waiting bool
}

// NewApp constructs the chat surface with defaults.
func NewApp(cfg AppConfig) *App {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	chat := NewChatModel(0)
	chat.SetEmptyText(cfg.Hint)

	model := &App{
		theme:        ResolveTheme(cfg.ThemeName),
		gateway:      cfg.Gateway,
		system:       strings.TrimSpace(cfg.System),
		model:        strings.TrimSpace(cfg.ModelName),
		maxTokens:    maxTokens,
		conversation: agent.NewConversation(),
		width:        defaultAppWidth,
		status:       NewStatusModel(cfg.Title, cfg.ModelName),
		chat:         chat,
		input:        NewInputModel(">", "Type a message and press Enter"),
	}
	return model
}

// Init starts background commands if needed.
func (m *App) Init() tea.Cmd {
	return nil
}

// Update applies state changes from user input and gateway replies.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat.SetViewportHeight(m.chatViewportHeight())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.handleChatScrollKey(msg) {
			return m, nil
		}
		if submitted := m.input.HandleKey(msg); submitted {
			content := strings.TrimSpace(m.input.Value())
			m.input.Clear()
			return m, m.handleInputSubmit(content)
		}
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.chat.Append("error", msg.err.Error()+"\n"+apiKeyHint)
			m.status.SetState("error")
			return m, nil
		}

		// The reply joins the history so the model remembers it next turn.
		m.conversation.AppendAssistantBlocks(msg.response.Blocks)
		text, ok := llm.FirstText(msg.response.Blocks)
		if !ok {
			text = noReplyText
		}
		m.chat.Append("assistant", text)
		m.status.SetState("idle")
		return m, nil
	}

	return m, nil
}

// View renders status bar, transcript panel, and input line.
func (m *App) View() string {
	width := m.width
	if width <= 0 {
		width = defaultAppWidth
	}

	m.chat.SetViewportHeight(m.chatViewportHeight())
	statusLine := m.status.Render(width, m.theme)
	body := m.chat.Render(width, m.theme)
	inputLine := m.input.Render(width, m.theme)
	return strings.Join([]string{statusLine, body, inputLine}, "\n")
}

// Conversation exposes the session history.
func (m *App) Conversation() *agent.Conversation {
	return m.conversation
}

func (m *App) handleInputSubmit(content string) tea.Cmd {
	if content == "" {
		return nil
	}
	if isQuitWord(content) {
		return tea.Quit
	}
	if m.waiting {
		// One in-flight gateway call at a time; drop extra submissions.
		return nil
	}

	m.chat.Append("user", content)
	m.conversation.AppendUserText(content)
	m.waiting = true
	m.status.SetState("thinking")
	return m.completeCommand()
}

func (m *App) completeCommand() tea.Cmd {
	request := &llm.Request{
		Model:     m.model,
		System:    m.system,
		Messages:  m.conversation.Messages(),
		MaxTokens: m.maxTokens,
	}
	gateway := m.gateway
	return func() tea.Msg {
		response, err := gateway.Complete(context.Background(), request)
		return replyMsg{response: response, err: err}
	}
}

func (m *App) handleChatScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		m.chat.ScrollUp(1)
		return true
	case tea.KeyDown:
		m.chat.ScrollDown(1)
		return true
	case tea.KeyPgUp:
		m.chat.PageUp()
		return true
	case tea.KeyPgDown:
		m.chat.PageDown()
		return true
	case tea.KeyHome:
		m.chat.ScrollToTop()
		return true
	case tea.KeyEnd:
		m.chat.ScrollToBottom()
		return true
	default:
		return false
	}
}

func (m *App) chatViewportHeight() int {
	if m.height <= 0 {
		return 0
	}

	const nonBodyRows = 2 // status + input
	bodyHeight := m.height - nonBodyRows
	if bodyHeight < 1 {
		return 1
	}

	contentHeight := bodyHeight - m.theme.PanelStyle.GetVerticalFrameSize()
	if contentHeight < 1 {
		return 1
	}
	return contentHeight
}

func isQuitWord(content string) bool {
	lowered := strings.ToLower(strings.TrimSpace(content))
	for _, word := range quitWords {
		if lowered == word {
			return true
		}
	}
	return false
}
