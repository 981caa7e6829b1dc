// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar, an optional notice line
// and an input prompt at the bottom of the terminal. All application
// output is printed above the rendered area via Program.Println / Printf,
// ensuring concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/draft"
)

// promptText is plain so the textinput width math stays correct.
const promptText = "meals> "

// Status is what the bar shows. It is polled once per tick.
type Status struct {
	Recipes  int
	Draft    draft.View
	Provider string // "" when generation is unavailable
}

// StatusFunc reports the current application state.
type StatusFunc func() Status

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking).  Other goroutines may
// safely call [UI.Println], [UI.Printf], and read from
// [UI.InputChan] at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	status  StatusFunc
	done    atomic.Bool
	shared  *shared
}

// shared is the state the UI and the Bubble Tea model both read.
type shared struct {
	mu     sync.Mutex
	styles Styles
	notice string
	urgent bool
}

func (s *shared) snapshot() (Styles, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.styles, s.notice, s.urgent
}

// NewUI creates the display. Call Run() to start.
func NewUI(status StatusFunc, theme domain.Theme) *UI {
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		shared:  &shared{styles: NewStyles(theme)},
	}
}

// Styles returns the styles of the current theme.
func (u *UI) Styles() Styles {
	st, _, _ := u.shared.snapshot()
	return st
}

// SetTheme switches every later render to t.
func (u *UI) SetTheme(t domain.Theme) {
	u.shared.mu.Lock()
	u.shared.styles = NewStyles(t)
	u.shared.mu.Unlock()
	u.refresh()
}

// SetNotice shows message above the prompt until it is dismissed or
// replaced.
func (u *UI) SetNotice(message string, urgent bool) {
	u.shared.mu.Lock()
	u.shared.notice, u.shared.urgent = message, urgent
	u.shared.mu.Unlock()
	u.refresh()
}

// DismissNotice hides the current notice. It reports whether one was shown.
func (u *UI) DismissNotice() bool {
	u.shared.mu.Lock()
	had := u.shared.notice != ""
	u.shared.notice, u.shared.urgent = "", false
	u.shared.mu.Unlock()
	u.refresh()
	return had
}

// refresh asks the program to redraw now instead of on the next tick.
func (u *UI) refresh() {
	if u.program != nil && !u.done.Load() {
		go u.program.Send(refreshMsg{})
	}
}

// Println prints a line above the prompt. Thread-safe.
// Each argument is converted via fmt.Sprint and printed on its own
// line(s).  If the program hasn't started yet, falls back to
// fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
// The output is printed on its own line.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintInfo prints a conversational line.
func (u *UI) PrintInfo(text string) {
	u.Println(u.Styles().Accent.Render("  " + text))
}

// PrintBlock prints pre-rendered, multi-line output.
func (u *UI) PrintBlock(text string) {
	u.Println(text)
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(u.Styles().Secondary.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(u.Styles().Urgent.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	st := u.Styles()
	u.Println(st.Prompt.Render(promptText) + st.Echo.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the Bubble Tea event loop.  Blocks until quit.
func (u *UI) Run() error {
	st := u.Styles()

	ti := textinput.New()
	ti.Prompt = promptText
	ti.PromptStyle = st.Prompt
	ti.TextStyle = st.Echo
	ti.Cursor.Style = st.Prompt
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		status:  u.status,
		shared:  u.shared,
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}
	m.refreshStatus()

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	status  StatusFunc
	shared  *shared
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string) // prints user input into scrollback
	current Status
	width   int
}

// Messages.
type (
	tickMsg    time.Time
	refreshMsg struct{}
)

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Print the echo from a Cmd so it runs
				// outside Update so it won't deadlock on msgs.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(promptText) {
			m.input.Width = msg.Width - len(promptText)
		}
		return m, nil

	case tickMsg:
		m.refreshStatus()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))

	case refreshMsg:
		m.refreshStatus()
		st, _, _ := m.shared.snapshot()
		m.input.PromptStyle = st.Prompt
		m.input.TextStyle = st.Echo
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) refreshStatus() {
	if m.status != nil {
		m.current = m.status()
	}
}

func (m model) titleStr() string {
	if m.current.Draft.Generating {
		return "QuickMeals - generating..."
	}
	return fmt.Sprintf("QuickMeals - %d recipes", m.current.Recipes)
}

func (m model) View() string {
	st, notice, urgent := m.shared.snapshot()

	var b strings.Builder
	b.WriteString(renderBar(st, m.current, m.width))
	b.WriteByte('\n')

	if notice != "" {
		style := st.Accent
		if urgent {
			style = st.Urgent
		}
		b.WriteString(style.Render("  "+notice) + st.Secondary.Render("  (dismiss)"))
		b.WriteByte('\n')
	}

	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

// renderBar draws the status line: recipe count, draft summary and AI state.
func renderBar(st Styles, s Status, width int) string {
	name := s.Draft.Name
	if strings.TrimSpace(name) == "" {
		name = "new recipe"
	}
	health := "healthy"
	if !s.Draft.IsHealthy {
		health = "indulgent"
	}

	parts := []string{
		st.BarLabel.Render("recipes ") + st.BarValue.Render(fmt.Sprint(s.Recipes)),
		st.BarLabel.Render("draft ") + st.BarValue.Render(name) +
			st.BarLabel.Render(fmt.Sprintf(" (%d ingr, %s, %s)",
				len(s.Draft.Ingredients), domain.FormatCookingTime(s.Draft.CookingTime), health)),
	}
	switch {
	case s.Draft.Generating:
		parts = append(parts, st.BarValue.Render("generating..."))
	case s.Provider != "":
		parts = append(parts, st.BarLabel.Render("ai ")+st.BarValue.Render(s.Provider))
	default:
		parts = append(parts, st.BarLabel.Render("ai off"))
	}

	content := " " + strings.Join(parts, st.Sep.Render("  │  ")) + " "
	if width <= 0 {
		width = 80
	}
	return st.Bar.Width(width).Render(content)
}
