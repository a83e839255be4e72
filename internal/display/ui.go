// Package display renders the countdown and reminder popup with Bubble Tea.
//
// The UI is a thin view over the orchestrator: every state change arrives
// as a pushed snapshot, key presses translate directly into orchestrator
// commands, and a once-a-second tick keeps the countdown digits moving.
package display

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"duebell/internal/domain"
	"duebell/internal/reminder"
)

// Controller is the slice of the orchestrator the UI drives.
type Controller interface {
	Snapshot() reminder.State
	ToggleSound() bool
	TriggerManual(ctx context.Context)
	DismissPopup()
}

// ── Styles ───────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			Bold(true)

	digitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Margin(1, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	soundOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	soundOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)
)

// tierColor maps each urgency tier to its accent color.
var tierColor = map[domain.Tier]lipgloss.Color{
	domain.TierLow:      lipgloss.Color("#bae6fd"),
	domain.TierMedium:   lipgloss.Color("#fde68a"),
	domain.TierHigh:     lipgloss.Color("#fdba74"),
	domain.TierCritical: lipgloss.Color("#fca5a5"),
}

// tierLabel maps each tier to its on-screen label.
var tierLabel = map[domain.Tier]string{
	domain.TierLow:      "时间充裕",
	domain.TierMedium:   "日期临近",
	domain.TierHigh:     "抓紧时间",
	domain.TierCritical: "马上截止",
}

// ── Messages ─────────────────────────────────────────────────────

type stateMsg reminder.State

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ── UI ───────────────────────────────────────────────────────────

// UI owns the Bubble Tea program. Call [NewUI] then [UI.Run] (blocking).
// Other goroutines push orchestrator snapshots with [UI.Push].
type UI struct {
	program *tea.Program
}

// NewUI creates the display for the given controller and deadline.
func NewUI(ctx context.Context, ctrl Controller, deadline time.Time) *UI {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := model{
		ctx:      ctx,
		ctrl:     ctrl,
		deadline: deadline,
		state:    ctrl.Snapshot(),
		spinner:  sp,
	}
	return &UI{program: tea.NewProgram(m, tea.WithAltScreen())}
}

// Run starts the program. Blocks until quit.
func (u *UI) Run() error {
	_, err := u.program.Run()
	return err
}

// Push delivers a fresh orchestrator snapshot to the view. Thread-safe;
// suitable as the orchestrator's state listener.
func (u *UI) Push(s reminder.State) {
	u.program.Send(stateMsg(s))
}

// Quit stops the program from another goroutine.
func (u *UI) Quit() {
	u.program.Quit()
}

// ── Model ────────────────────────────────────────────────────────

type model struct {
	ctx      context.Context
	ctrl     Controller
	deadline time.Time
	state    reminder.State
	spinner  spinner.Model
	width    int
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateMsg:
		m.state = reminder.State(msg)
		return m, nil

	case tickMsg:
		// Refresh the countdown digits from the clock.
		m.state = m.ctrl.Snapshot()
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.ctrl.TriggerManual(m.ctx)
			return m, nil
		case "s":
			m.ctrl.ToggleSound()
			m.state = m.ctrl.Snapshot()
			return m, nil
		case "esc":
			m.ctrl.DismissPopup()
			m.state = m.ctrl.Snapshot()
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	accent := tierColor[m.state.Tier]
	tierStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	var b []string
	b = append(b, titleStyle.Render("安全课程倒计时 — 11月30日截止"))
	b = append(b, "")

	b = append(b, fmt.Sprintf("%s  %s",
		digitStyle.Render(m.countdownDigits()),
		tierStyle.Render("["+tierLabel[m.state.Tier]+"]")))
	b = append(b, labelStyle.Render(fmt.Sprintf("剩余 %d 天（约 %d 小时）", m.state.DaysLeft, m.state.HoursLeft)))
	b = append(b, "")

	if m.state.ShowPopup && m.state.Message != "" {
		popup := popupStyle.BorderForeground(accent)
		if m.width > 8 {
			popup = popup.Width(min(m.width-4, 60))
		}
		b = append(b, popup.Render(m.state.Message))
	}

	b = append(b, m.backgroundLine())
	b = append(b, m.soundLine())
	b = append(b, "")
	b = append(b, helpStyle.Render("r 手动提醒 · s 声音开关 · esc 关闭弹窗 · q 退出"))

	return lipgloss.JoinVertical(lipgloss.Left, b...)
}

// countdownDigits renders the residual time as D days + HH:MM:SS.
func (m model) countdownDigits() string {
	remaining := time.Until(m.deadline)
	if remaining < 0 {
		remaining = -remaining
	}
	days := int(remaining / (24 * time.Hour))
	remaining -= time.Duration(days) * 24 * time.Hour
	h := int(remaining / time.Hour)
	mi := int(remaining/time.Minute) % 60
	s := int(remaining/time.Second) % 60
	return fmt.Sprintf("%d天 %02d:%02d:%02d", days, h, mi, s)
}

func (m model) backgroundLine() string {
	switch {
	case m.state.ImageLoading:
		return labelStyle.Render(m.spinner.View() + " 背景图生成中…")
	case m.state.BackgroundURL != "":
		return labelStyle.Render("背景图: " + m.state.BackgroundURL)
	case m.state.ImageDescription != "":
		return labelStyle.Render("背景图: " + m.state.ImageDescription)
	default:
		return ""
	}
}

func (m model) soundLine() string {
	if m.state.SoundEnabled {
		return soundOnStyle.Render("声音: 开")
	}
	return soundOffStyle.Render("声音: 关")
}
