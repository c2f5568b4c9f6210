package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/api"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/session"
	apperrors "github.com/neetharmaliackal/fittrack-pro-02/pkg/errors"
)

const (
	noticeLoadFailed   = "Failed to load activities"
	noticeCreateFailed = "Failed to create activity"
	noticeUpdateFailed = "Failed to update activity"
	noticeDeleteFailed = "Failed to delete activity"
	noticeCreated      = "Activity created!"
	noticeUpdated      = "Activity updated!"
	noticeDeleted      = "Activity deleted!"
	noticeNoDesc       = "Please enter a description"
)

type mutateAction int

const (
	actionCreate mutateAction = iota
	actionUpdate
	actionDelete
)

// fetchDoneMsg carries the result of a list call. seq ties it to the fetch
// that issued it; a result from a superseded fetch is dropped.
type fetchDoneMsg struct {
	seq        int
	activities []domain.Activity
	err        error
}

type mutateDoneMsg struct {
	seq    int
	action mutateAction
	err    error
}

// activityForm is the create/edit dialog state. Type and status cycle through
// their fixed value sets; description and date are free text.
type activityForm struct {
	typeIdx   int
	statusIdx int
	desc      textinput.Model
	date      textinput.Model
	focus     int
}

const (
	formFocusType = iota
	formFocusDesc
	formFocusDate
	formFocusStatus
	formFocusCount
)

func newActivityForm(defaults domain.ActivityPayload) activityForm {
	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 500
	desc.Width = 40
	desc.SetValue(defaults.Description)

	date := textinput.New()
	date.Placeholder = domain.DateLayout
	date.CharLimit = len(domain.DateLayout)
	date.Width = 12
	date.SetValue(defaults.Date)

	form := activityForm{desc: desc, date: date}
	for i, t := range domain.ValidActivityTypes() {
		if t == defaults.ActivityType {
			form.typeIdx = i
		}
	}
	for i, s := range domain.ValidActivityStatuses() {
		if s == defaults.Status {
			form.statusIdx = i
		}
	}
	return form
}

func (f *activityForm) setFocus(focus int) {
	f.focus = focus
	if focus == formFocusDesc {
		f.desc.Focus()
	} else {
		f.desc.Blur()
	}
	if focus == formFocusDate {
		f.date.Focus()
	} else {
		f.date.Blur()
	}
}

func (f activityForm) payload() domain.ActivityPayload {
	return domain.ActivityPayload{
		ActivityType: domain.ValidActivityTypes()[f.typeIdx],
		Description:  strings.TrimSpace(f.desc.Value()),
		Date:         strings.TrimSpace(f.date.Value()),
		Status:       domain.ValidActivityStatuses()[f.statusIdx],
	}
}

// activitiesModel is the dashboard: the fetched list, a cursor, and an
// optional create/edit dialog. The list is only ever replaced wholesale by a
// successful fetch; mutations trigger a re-fetch instead of patching it.
type activitiesModel struct {
	store  *session.Store
	client *api.Client
	logger *slog.Logger

	seq        int
	loading    bool
	submitting bool
	spin       spinner.Model

	activities []domain.Activity
	cursor     int

	dialog    bool
	editingID int64
	form      activityForm

	notice    string
	noticeErr bool
}

func newActivitiesModel(ctx context.Context, client *api.Client, logger *slog.Logger, seq int) activitiesModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = mutedStyle

	return activitiesModel{
		store:   sessionFrom(ctx),
		client:  client,
		logger:  logger,
		seq:     seq,
		loading: true,
		spin:    spin,
		form:    newActivityForm(domain.DefaultActivityPayload(time.Now())),
	}
}

func (m activitiesModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd(m.seq))
}

func (m activitiesModel) Update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	switch typed := msg.(type) {
	case spinner.TickMsg:
		if !m.loading && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(typed)
		return m, cmd

	case fetchDoneMsg:
		if typed.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if typed.err != nil {
			if errors.Is(typed.err, apperrors.ErrUnauthorized) {
				return m.expireSession()
			}
			m.notice = noticeLoadFailed
			m.noticeErr = true
			return m, nil
		}
		m.activities = typed.activities
		if m.cursor >= len(m.activities) {
			m.cursor = len(m.activities) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case mutateDoneMsg:
		if typed.seq != m.seq {
			return m, nil
		}
		m.submitting = false
		if typed.err != nil {
			if errors.Is(typed.err, apperrors.ErrUnauthorized) {
				return m.expireSession()
			}
			m.notice = mutateFailedNotice(typed.action)
			m.noticeErr = true
			return m, nil
		}
		m.notice = mutateSuccessNotice(typed.action)
		m.noticeErr = false
		if typed.action != actionDelete {
			m.dialog = false
			m.editingID = 0
			m.form = newActivityForm(domain.DefaultActivityPayload(time.Now()))
		}
		return m, m.fetchCmd(m.seq)

	case tea.KeyMsg:
		if m.dialog {
			return m.updateDialog(typed)
		}
		return m.updateList(typed)
	}

	return m, nil
}

func (m activitiesModel) updateList(key tea.KeyMsg) (activitiesModel, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.activities)-1 {
			m.cursor++
		}
	case "n":
		m.dialog = true
		m.editingID = 0
		m.form = newActivityForm(domain.DefaultActivityPayload(time.Now()))
		m.form.setFocus(formFocusDesc)
		m.notice = ""
	case "e", "enter":
		if len(m.activities) == 0 {
			return m, nil
		}
		selected := m.activities[m.cursor]
		m.dialog = true
		m.editingID = selected.ID
		m.form = newActivityForm(domain.PayloadFrom(selected))
		m.form.setFocus(formFocusDesc)
		m.notice = ""
	case "d":
		if m.submitting || len(m.activities) == 0 {
			return m, nil
		}
		m.submitting = true
		m.notice = ""
		return m, tea.Batch(m.spin.Tick, m.deleteCmd(m.seq, m.activities[m.cursor].ID))
	case "r":
		m.loading = true
		m.notice = ""
		return m, tea.Batch(m.spin.Tick, m.fetchCmd(m.seq))
	case "l":
		m.store.Logout()
		return m, navigateTo(screenLogin)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m activitiesModel) updateDialog(key tea.KeyMsg) (activitiesModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.dialog = false
		m.editingID = 0
		return m, nil
	case "tab", "down":
		m.form.setFocus((m.form.focus + 1) % formFocusCount)
		return m, nil
	case "shift+tab", "up":
		m.form.setFocus((m.form.focus + formFocusCount - 1) % formFocusCount)
		return m, nil
	case "enter":
		return m.submitDialog()
	case "left":
		switch m.form.focus {
		case formFocusType:
			n := len(domain.ValidActivityTypes())
			m.form.typeIdx = (m.form.typeIdx + n - 1) % n
			return m, nil
		case formFocusStatus:
			n := len(domain.ValidActivityStatuses())
			m.form.statusIdx = (m.form.statusIdx + n - 1) % n
			return m, nil
		}
	case "right":
		switch m.form.focus {
		case formFocusType:
			m.form.typeIdx = (m.form.typeIdx + 1) % len(domain.ValidActivityTypes())
			return m, nil
		case formFocusStatus:
			m.form.statusIdx = (m.form.statusIdx + 1) % len(domain.ValidActivityStatuses())
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case formFocusDesc:
		m.form.desc, cmd = m.form.desc.Update(key)
	case formFocusDate:
		m.form.date, cmd = m.form.date.Update(key)
	}
	return m, cmd
}

func (m activitiesModel) submitDialog() (activitiesModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	payload := m.form.payload()
	if payload.Description == "" {
		m.notice = noticeNoDesc
		m.noticeErr = true
		return m, nil
	}

	m.submitting = true
	m.notice = ""
	if m.editingID != 0 {
		return m, tea.Batch(m.spin.Tick, m.updateCmd(m.seq, m.editingID, payload))
	}
	return m, tea.Batch(m.spin.Tick, m.createCmd(m.seq, payload))
}

// expireSession handles a rejected token: the stored session is cleared and
// the user is sent back to sign in.
func (m activitiesModel) expireSession() (activitiesModel, tea.Cmd) {
	m.logger.Info("session rejected by server, logging out")
	m.store.Logout()
	return m, navigateTo(screenLogin)
}

func (m activitiesModel) fetchCmd(seq int) tea.Cmd {
	return func() tea.Msg {
		activities, err := m.client.ListActivities(context.Background())
		return fetchDoneMsg{seq: seq, activities: activities, err: err}
	}
}

func (m activitiesModel) createCmd(seq int, payload domain.ActivityPayload) tea.Cmd {
	return func() tea.Msg {
		_, err := m.client.CreateActivity(context.Background(), payload)
		return mutateDoneMsg{seq: seq, action: actionCreate, err: err}
	}
}

func (m activitiesModel) updateCmd(seq int, id int64, payload domain.ActivityPayload) tea.Cmd {
	return func() tea.Msg {
		_, err := m.client.UpdateActivity(context.Background(), id, payload)
		return mutateDoneMsg{seq: seq, action: actionUpdate, err: err}
	}
}

func (m activitiesModel) deleteCmd(seq int, id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.client.DeleteActivity(context.Background(), id)
		return mutateDoneMsg{seq: seq, action: actionDelete, err: err}
	}
}

func mutateFailedNotice(action mutateAction) string {
	switch action {
	case actionUpdate:
		return noticeUpdateFailed
	case actionDelete:
		return noticeDeleteFailed
	default:
		return noticeCreateFailed
	}
}

func mutateSuccessNotice(action mutateAction) string {
	switch action {
	case actionUpdate:
		return noticeUpdated
	case actionDelete:
		return noticeDeleted
	default:
		return noticeCreated
	}
}

func (m activitiesModel) View() string {
	header := titleStyle.Render("Activities")
	if identity := m.store.Identity(); identity.Username != "" {
		header += mutedStyle.Render("  " + identity.Username)
	}
	lines := []string{header, ""}

	if m.dialog {
		lines = append(lines, m.viewDialog()...)
	} else {
		lines = append(lines, m.viewList()...)
	}

	if m.notice != "" {
		style := successStyle
		if m.noticeErr {
			style = errorStyle
		}
		lines = append(lines, "", style.Render(m.notice))
	}

	help := "j/k: move  n: new  e: edit  d: delete  r: refresh  l: logout  ctrl+c: quit"
	if m.dialog {
		help = "tab: next field  left/right: cycle value  enter: save  esc: cancel"
	}
	lines = append(lines, "", helpStyle.Render(help))
	return strings.Join(lines, "\n") + "\n"
}

func (m activitiesModel) viewList() []string {
	if m.loading {
		return []string{m.spin.View() + " Loading activities..."}
	}
	if len(m.activities) == 0 {
		return []string{mutedStyle.Render("No activities yet. Press n to add one.")}
	}

	lines := make([]string, 0, len(m.activities))
	for i, a := range m.activities {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		row := fmt.Sprintf("%s %s  %-40s %s",
			typeGlyph(a.ActivityType), a.Date, a.Description,
			statusStyle(a.Status).Render(domain.StatusLabel(a.Status)))
		if i == m.cursor {
			row = selectedStyle.Render(row)
		}
		lines = append(lines, marker+row)
	}
	if m.submitting {
		lines = append(lines, "", m.spin.View()+" Saving...")
	}
	return lines
}

func (m activitiesModel) viewDialog() []string {
	title := "New activity"
	if m.editingID != 0 {
		title = "Edit activity"
	}

	fieldLabel := func(focus int, label string) string {
		if m.form.focus == focus {
			return focusStyle.Render(label)
		}
		return labelStyle.Render(label)
	}

	lines := []string{
		titleStyle.Render(title),
		"",
		fieldLabel(formFocusType, "Type") + "    " + domain.ValidActivityTypes()[m.form.typeIdx],
		"",
		fieldLabel(formFocusDesc, "Description"),
		m.form.desc.View(),
		"",
		fieldLabel(formFocusDate, "Date"),
		m.form.date.View(),
		"",
		fieldLabel(formFocusStatus, "Status") + "  " + domain.StatusLabel(domain.ValidActivityStatuses()[m.form.statusIdx]),
	}
	if m.submitting {
		lines = append(lines, "", m.spin.View()+" Saving...")
	}
	return lines
}
