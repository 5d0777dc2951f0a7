// internal/tui/tui.go
// Package tui provides the interactive chat interface for the assistant.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/opsdeck/internal/appconfig"
	"github.com/opsdeck/opsdeck/internal/assist"
	"github.com/opsdeck/opsdeck/internal/providers"
	"github.com/opsdeck/opsdeck/internal/util"
)

// turnDoneMsg carries the outcome of one conversation turn back into Update.
type turnDoneMsg struct {
	reply   string
	history []providers.ChatMessage
	err     error
}

// model is the Bubble Tea model for the chat session.
type model struct {
	ctx              context.Context
	cfg              appconfig.Config
	assistant        *assist.Assistant
	history          []providers.ChatMessage
	transcript       []string
	textArea         textarea.Model
	viewport         viewport.Model
	spinner          spinner.Model
	isLoading        bool
	err              error
	width, height    int
	requestStartTime time.Time
}

var (
	headerStyle    = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func initialModel(ctx context.Context, cfg appconfig.Config, assistant *assist.Assistant) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Ask about monitors, incidents, or dashboards..."
	ta.Focus()
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(100, 5)

	return &model{
		ctx:       ctx,
		cfg:       cfg,
		assistant: assistant,
		textArea:  ta,
		viewport:  vp,
		spinner:   s,
		transcript: []string{
			"Datadog SRE Console Assistant",
			"Type 'exit' or 'quit' to end the conversation.",
			"Ask questions like 'get monitors' or 'list incidents in alert state'.",
			"",
		},
	}
}

// Init satisfies tea.Model.
func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

// processTurnCmd runs one conversation turn off the UI goroutine.
func processTurnCmd(ctx context.Context, assistant *assist.Assistant, input string, history []providers.ChatMessage) tea.Cmd {
	return func() tea.Msg {
		reply, updated, err := assistant.ProcessTurn(ctx, input, history)
		return turnDoneMsg{reply: reply, history: updated, err: err}
	}
}

// Update handles incoming messages and updates the model state.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.isLoading {
				return m, nil
			}
			input := strings.TrimSpace(m.textArea.Value())
			if input == "" {
				return m, nil
			}
			if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
				return m, tea.Quit
			}
			m.textArea.Reset()
			m.transcript = append(m.transcript, userStyle.Render("You: ")+input)
			m.isLoading = true
			m.err = nil
			m.requestStartTime = time.Now()
			m.refreshViewport()
			return m, tea.Batch(m.spinner.Tick, processTurnCmd(m.ctx, m.assistant, input, m.history))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textArea.SetWidth(msg.Width - 2)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 5
		m.refreshViewport()

	case turnDoneMsg:
		m.isLoading = false
		if msg.err != nil {
			m.transcript = append(m.transcript, errorStyle.Render(fmt.Sprintf("Error: %v", msg.err)))
		} else {
			m.history = msg.history
			m.transcript = append(m.transcript, assistantStyle.Render("Assistant: ")+msg.reply, "")
		}
		m.textArea.Focus()
		m.refreshViewport()
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.isLoading {
		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) refreshViewport() {
	width := m.viewport.Width
	if width <= 0 {
		width = 100
	}
	m.viewport.SetContent(util.WrapToWidth(strings.Join(m.transcript, "\n"), width))
	m.viewport.GotoBottom()
}

// View renders the chat interface.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var builder strings.Builder
	header := headerStyle.Render(fmt.Sprintf("opsdeck | model: %s | session: %s", m.cfg.ModelName(), util.TruncateRunes(m.assistant.Session(), 8)))
	builder.WriteString(header)
	builder.WriteString("\n")
	builder.WriteString(m.viewport.View())
	builder.WriteString("\n")

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString(fmt.Sprintf("  %s Working... %ss", m.spinner.View(), timer))
	} else {
		builder.WriteString(m.textArea.View())
	}
	return builder.String()
}

// Run starts the interactive chat program and blocks until it exits.
func Run(ctx context.Context, cfg appconfig.Config, assistant *assist.Assistant) error {
	program := tea.NewProgram(initialModel(ctx, cfg, assistant), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
