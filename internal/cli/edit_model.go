package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mhollis/lath/internal/cli/formatter"
	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/schedule"
)

type editKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Longer  key.Binding
	Shorter key.Binding
	Later   key.Binding
	Earlier key.Binding
	Status  key.Binding
	Done    key.Binding
	Save    key.Binding
	Quit    key.Binding
}

func defaultEditKeyMap() editKeyMap {
	return editKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Longer:  key.NewBinding(key.WithKeys("+", "=")),
		Shorter: key.NewBinding(key.WithKeys("-", "_")),
		Later:   key.NewBinding(key.WithKeys("right", "l")),
		Earlier: key.NewBinding(key.WithKeys("left", "h")),
		Status:  key.NewBinding(key.WithKeys("s")),
		Done:    key.NewBinding(key.WithKeys("d")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s", "w")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// editModel is the interactive schedule editor. Every keystroke goes
// through the schedule service, so cascade and autosave behave exactly
// as they do for the flag-based commands.
type editModel struct {
	ctx       context.Context
	app       *App
	projectID string
	sched     *domain.ProjectSchedule
	keys      editKeyMap
	cursor    int
	status    string
	err       error
}

func newEditModel(ctx context.Context, app *App, projectID string, sched *domain.ProjectSchedule) *editModel {
	return &editModel{
		ctx:       ctx,
		app:       app,
		projectID: projectID,
		sched:     sched,
		keys:      defaultEditKeyMap(),
	}
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) current() *domain.ScheduleItem {
	if m.cursor < 0 || m.cursor >= len(m.sched.Items) {
		return nil
	}
	return &m.sched.Items[m.cursor]
}

func (m *editModel) patchCurrent(patch schedule.ItemPatch) {
	item := m.current()
	if item == nil {
		return
	}
	updated, err := m.app.Schedules.UpdateItem(m.ctx, m.projectID, item.ID, patch)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.sched = updated
}

func nextStatus(s domain.ItemStatus) domain.ItemStatus {
	switch s {
	case domain.ItemNotStarted:
		return domain.ItemInProgress
	case domain.ItemInProgress:
		return domain.ItemComplete
	case domain.ItemComplete:
		return domain.ItemDelayed
	default:
		return domain.ItemNotStarted
	}
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.sched.Items)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Longer):
		if item := m.current(); item != nil {
			d := item.DurationDays + 1
			m.patchCurrent(schedule.ItemPatch{DurationDays: &d})
		}

	case key.Matches(keyMsg, m.keys.Shorter):
		if item := m.current(); item != nil {
			d := item.DurationDays - 1
			m.patchCurrent(schedule.ItemPatch{DurationDays: &d})
		}

	case key.Matches(keyMsg, m.keys.Later):
		if item := m.current(); item != nil {
			d := item.StartDate.AddDate(0, 0, 1)
			m.patchCurrent(schedule.ItemPatch{StartDate: &d})
		}

	case key.Matches(keyMsg, m.keys.Earlier):
		if item := m.current(); item != nil {
			d := item.StartDate.AddDate(0, 0, -1)
			m.patchCurrent(schedule.ItemPatch{StartDate: &d})
		}

	case key.Matches(keyMsg, m.keys.Status):
		if item := m.current(); item != nil {
			st := nextStatus(item.Status)
			m.patchCurrent(schedule.ItemPatch{Status: &st})
		}

	case key.Matches(keyMsg, m.keys.Done):
		if item := m.current(); item != nil {
			st := domain.ItemComplete
			pc := 100
			m.patchCurrent(schedule.ItemPatch{Status: &st, PercentComplete: &pc})
		}

	case key.Matches(keyMsg, m.keys.Save):
		if err := m.app.Schedules.Save(m.ctx, m.projectID); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.status = "saved"
		}
	}

	return m, nil
}

var editCursorStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)

func (m *editModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("schedule"))
	b.WriteString("\n\n")

	for i, item := range m.sched.Items {
		marker := "  "
		name := item.Name
		if i == m.cursor {
			marker = editCursorStyle.Render("> ")
			name = editCursorStyle.Render(name)
		}
		after := ""
		if item.PredecessorID != nil {
			if pred := m.sched.Item(*item.PredecessorID); pred != nil {
				after = formatter.Dim(fmt.Sprintf(" after #%d", pred.Seq))
			}
		}
		b.WriteString(fmt.Sprintf("%s#%d %-28s %s → %s  %2dd  %s%s\n",
			marker, item.Seq, name,
			item.StartDate.Format("2006-01-02"),
			item.EndDate.Format("2006-01-02"),
			item.DurationDays,
			formatter.StatusIndicator(item.Status),
			after))
	}

	summary := schedule.Summarize(m.sched, time.Now())
	b.WriteString("\n")
	b.WriteString(formatter.RenderProgress(summary.PercentComplete, 20))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(formatter.StyleGreen.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(formatter.Dim("↑/↓ select  +/- duration  ←/→ shift start  s status  d done  ctrl+s save  q quit"))
	b.WriteString("\n")
	return b.String()
}
