package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentscope-io/agentscope/internal/api"
	"github.com/agentscope-io/agentscope/internal/models"
	"github.com/agentscope-io/agentscope/internal/project"
	"github.com/agentscope-io/agentscope/internal/session"
)

// Screen values.
const (
	screenLogin     = 0
	screenMain      = 1
	screenRunDetail = 2
)

// Tab indexes, matching tabTitles.
const (
	tabDashboard = 0
	tabRuns      = 1
	tabProjects  = 2
	tabKeys      = 3
)

// Model is the root Bubbletea model for the dashboard.
type Model struct {
	settings *models.Settings
	sessions *session.Store
	projects *project.Store
	client   *api.Client
	program  *programRef

	// UI state
	screen        int
	activeTab     int
	activeOverlay int
	width         int
	height        int

	// Confirm mode
	confirmMode  int
	confirmLabel string
	confirmID    string

	// Status display
	err       error
	savedNote string

	// Child components
	loginForm   *LoginForm
	dashboard   *DashboardTab
	runList     *RunList
	runDetail   *RunDetail
	projectList *ProjectList
	keyList     *KeyList
	projectForm *ProjectForm
	keyForm     *KeyForm
	createdKey  *models.CreatedAPIKey
}

// NewModel creates the initial model.
func NewModel(settings *models.Settings, sessions *session.Store, projects *project.Store, client *api.Client, program *programRef) Model {
	screen := screenLogin
	if sessions.Authenticated() {
		screen = screenMain
	}

	return Model{
		settings:    settings,
		sessions:    sessions,
		projects:    projects,
		client:      client,
		program:     program,
		screen:      screen,
		loginForm:   NewLoginForm(80),
		dashboard:   NewDashboardTab(),
		runList:     NewRunList(settings.Defaults.RunPageSize),
		runDetail:   NewRunDetail(),
		projectList: NewProjectList(),
		keyList:     NewKeyList(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{watchConfigCmd(m.program), refreshTick()}
	if m.screen == screenMain {
		cmds = append(cmds, loadProjectsCmd(m.client))
	}
	return tea.Batch(cmds...)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// ── Session ────────────────────────────────────────────────────
	case AuthSuccessMsg:
		if err := m.sessions.SetAuth(&msg.User, msg.Token); err != nil {
			m.err = err
			return m, clearErrorAfter(5 * time.Second)
		}
		m.screen = screenMain
		m.activeTab = tabDashboard
		m.loginForm = NewLoginForm(m.width)
		m.err = nil
		return m, loadProjectsCmd(m.client)

	case SessionExpiredMsg:
		// The access layer already cleared the stored session. If the login
		// screen is showing there is nothing to tear down.
		if m.screen == screenLogin {
			return m, nil
		}
		m.toLogin()
		m.err = fmt.Errorf("session expired, please log in again")
		return m, clearErrorAfter(5 * time.Second)

	case CredentialsChangedMsg:
		// Another terminal logged in or out.
		_ = m.sessions.Load()
		if m.sessions.Authenticated() && m.screen == screenLogin {
			m.screen = screenMain
			return m, loadProjectsCmd(m.client)
		}
		if !m.sessions.Authenticated() && m.screen != screenLogin {
			m.toLogin()
		}
		return m, nil

	// ── Projects ───────────────────────────────────────────────────
	case ProjectsLoadedMsg:
		m.projects.SetProjects(msg.Projects)
		selected := project.Reselect(msg.Projects, m.projects.Selected(), m.projects.StoredID())
		if err := m.projects.Select(selected); err != nil {
			m.err = err
			cmds = append(cmds, clearErrorAfter(5*time.Second))
		}
		m.projectList.SetProjects(msg.Projects)
		if selected != nil {
			m.projectList.SetActive(selected.ID)
			cmds = append(cmds, m.reloadProjectData(selected.ID)...)
		} else {
			m.projectList.SetActive("")
		}
		return m, tea.Batch(cmds...)

	case ProjectSavedMsg:
		m.activeOverlay = overlayNone
		m.projectForm = nil
		m.savedNote = "Saved " + msg.Project.Name
		cmds = append(cmds, loadProjectsCmd(m.client), clearSavedAfter(3*time.Second))
		return m, tea.Batch(cmds...)

	case ProjectDeletedMsg:
		m.confirmMode = confirmNone
		if sel := m.projects.Selected(); sel != nil && sel.ID == msg.ID {
			_ = m.projects.Select(nil)
		}
		return m, loadProjectsCmd(m.client)

	// ── Dashboard data ─────────────────────────────────────────────
	case StatsLoadedMsg:
		m.dashboard.SetStats(msg.ProjectID, msg.Stats)
		return m, nil

	// ── Runs ───────────────────────────────────────────────────────
	case RunsLoadedMsg:
		m.runList.SetRuns(msg.Runs)
		m.dashboard.SetRecent(msg.ProjectID, msg.Runs)
		return m, nil

	case RunLoadedMsg:
		m.runDetail.SetRun(&msg.Run)
		m.screen = screenRunDetail
		return m, loadStepsCmd(m.client, msg.Run.ID)

	case StepsLoadedMsg:
		m.runDetail.SetSteps(msg.RunID, msg.Steps)
		return m, nil

	// ── API keys ───────────────────────────────────────────────────
	case KeysLoadedMsg:
		m.keyList.SetKeys(msg.Keys)
		return m, nil

	case KeyCreatedMsg:
		m.keyForm = nil
		m.createdKey = &msg.Key
		m.activeOverlay = overlayCreatedSecret
		if sel := m.projects.Selected(); sel != nil {
			cmds = append(cmds, loadKeysCmd(m.client, sel.ID))
		}
		return m, tea.Batch(cmds...)

	case KeyRevokedMsg:
		m.confirmMode = confirmNone
		if sel := m.projects.Selected(); sel != nil {
			cmds = append(cmds, loadKeysCmd(m.client, sel.ID))
		}
		return m, tea.Batch(cmds...)

	// ── Config changes ─────────────────────────────────────────────
	case SettingsReloadedMsg:
		// Server URL changes apply on restart; display settings apply now.
		m.settings = msg.Settings
		return m, nil

	// ── Status display ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		m.confirmMode = confirmNone
		m.loginForm.SetSubmitting(false)
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.savedNote = ""
		return m, nil

	case TickMsg:
		cmds = append(cmds, refreshTick())
		if m.screen == screenMain && m.activeTab == tabRuns {
			if sel := m.projects.Selected(); sel != nil {
				cmds = append(cmds, loadRunsCmd(m.client, m.runList.Query(sel.ID)))
			}
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// reloadProjectData queues the loads backing the current tabs.
func (m *Model) reloadProjectData(projectID string) []tea.Cmd {
	m.dashboard.SetLoading(projectID)
	m.runList.SetLoading()
	m.keyList.SetLoading()
	return []tea.Cmd{
		loadStatsCmd(m.client, projectID),
		loadRunsCmd(m.client, m.runList.Query(projectID)),
		loadKeysCmd(m.client, projectID),
	}
}

// toLogin resets to the sign-in screen with a fresh form.
func (m *Model) toLogin() {
	m.screen = screenLogin
	m.activeOverlay = overlayNone
	m.confirmMode = confirmNone
	m.loginForm = NewLoginForm(m.width)
}

func (m *Model) updateDimensions() {
	contentHeight := m.height - 2 // header and status bar
	if contentHeight < 1 {
		contentHeight = 1
	}
	listHeight := contentHeight - 4 // section header, spacing, column header
	if listHeight < 1 {
		listHeight = 1
	}
	m.runList.SetHeight(listHeight)
	m.projectList.SetHeight(listHeight)
	m.keyList.SetHeight(listHeight)
	m.runDetail.SetSize(m.width-2, contentHeight)
}

// handleKey processes key events.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenLogin {
		return m.handleLoginKey(msg)
	}

	// Confirm mode captures everything
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	// Overlay captures everything
	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	if m.screen == screenRunDetail {
		return m.handleDetailKey(msg)
	}

	// Global shortcuts
	switch {
	case key.Matches(msg, globalKeys.Quit) || msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return m, nil

	case key.Matches(msg, globalKeys.Logout):
		m.confirmMode = confirmLogout
		return m, nil

	case key.Matches(msg, globalKeys.Refresh):
		if sel := m.projects.Selected(); sel != nil {
			return m, tea.Batch(append(m.reloadProjectData(sel.ID), loadProjectsCmd(m.client))...)
		}
		return m, loadProjectsCmd(m.client)

	case key.Matches(msg, tabSwitchKeys.Tab1):
		m.activeTab = tabDashboard
		return m, nil
	case key.Matches(msg, tabSwitchKeys.Tab2):
		m.activeTab = tabRuns
		return m, nil
	case key.Matches(msg, tabSwitchKeys.Tab3):
		m.activeTab = tabProjects
		return m, nil
	case key.Matches(msg, tabSwitchKeys.Tab4):
		m.activeTab = tabKeys
		return m, nil
	case key.Matches(msg, tabSwitchKeys.Next) || key.Matches(msg, tabSwitchKeys.Right):
		m.activeTab = (m.activeTab + 1) % len(tabTitles)
		return m, nil
	case key.Matches(msg, tabSwitchKeys.Left):
		m.activeTab--
		if m.activeTab < 0 {
			m.activeTab = len(tabTitles) - 1
		}
		return m, nil
	}

	switch m.activeTab {
	case tabRuns:
		return m.handleRunsKey(msg)
	case tabProjects:
		return m.handleProjectsKey(msg)
	case tabKeys:
		return m.handleKeysKey(msg)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlQ, tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlR:
		m.loginForm.ToggleMode()
		return m, nil
	case tea.KeyTab:
		m.loginForm.FocusNext()
		return m, nil
	case tea.KeyEnter:
		email, password := m.loginForm.Email(), m.loginForm.Password()
		if email == "" || password == "" {
			m.err = fmt.Errorf("email and password are required")
			return m, clearErrorAfter(3 * time.Second)
		}
		m.loginForm.SetSubmitting(true)
		if m.loginForm.Registering() {
			return m, registerCmd(m.client, email, password, m.loginForm.Name())
		}
		return m, loginCmd(m.client, email, password)
	}

	input := m.loginForm.FocusedInput()
	updated, cmd := input.Update(msg)
	*input = updated
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		mode, id := m.confirmMode, m.confirmID
		switch mode {
		case confirmDeleteProject:
			return m, deleteProjectCmd(m.client, id)
		case confirmRevokeKey:
			m.confirmMode = confirmNone
			if sel := m.projects.Selected(); sel != nil {
				return m, revokeKeyCmd(m.client, sel.ID, id)
			}
			return m, nil
		case confirmLogout:
			m.confirmMode = confirmNone
			if err := m.sessions.Logout(); err != nil {
				m.err = err
				return m, clearErrorAfter(5 * time.Second)
			}
			_ = m.projects.ClearStored()
			m.toLogin()
			return m, nil
		}
	case key.Matches(msg, confirmKeys.No) || key.Matches(msg, confirmKeys.Cancel):
		m.confirmMode = confirmNone
		return m, nil
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, overlayKeys.Cancel) {
		m.activeOverlay = overlayNone
		m.projectForm = nil
		m.keyForm = nil
		m.createdKey = nil
		return m, nil
	}

	switch m.activeOverlay {
	case overlayHelp:
		if key.Matches(msg, globalKeys.Help) {
			m.activeOverlay = overlayNone
		}
		return m, nil

	case overlayCreatedSecret:
		return m, nil

	case overlayProjectForm:
		if key.Matches(msg, overlayKeys.Tab) {
			m.projectForm.FocusNext()
			return m, nil
		}
		if key.Matches(msg, overlayKeys.Save) {
			name := m.projectForm.Name()
			if name == "" {
				m.err = fmt.Errorf("project name is required")
				return m, clearErrorAfter(3 * time.Second)
			}
			if m.projectForm.Mode() == "rename" {
				return m, renameProjectCmd(m.client, m.projectForm.ProjectID(), name)
			}
			return m, createProjectCmd(m.client, name, m.projectForm.Description())
		}
		input := m.projectForm.FocusedInput()
		updated, cmd := input.Update(msg)
		*input = updated
		return m, cmd

	case overlayKeyForm:
		if key.Matches(msg, overlayKeys.Save) {
			sel := m.projects.Selected()
			if sel == nil {
				m.activeOverlay = overlayNone
				m.keyForm = nil
				return m, nil
			}
			return m, createKeyCmd(m.client, sel.ID, m.keyForm.Name())
		}
		input := m.keyForm.Input()
		updated, cmd := input.Update(msg)
		*input = updated
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, detailKeys.Back):
		m.screen = screenMain
		return m, nil
	case key.Matches(msg, detailKeys.Up):
		m.runDetail.ScrollUp()
		return m, nil
	case key.Matches(msg, detailKeys.Down):
		m.runDetail.ScrollDown()
		return m, nil
	case key.Matches(msg, globalKeys.Refresh):
		if id := m.runDetail.RunID(); id != "" {
			return m, tea.Batch(loadRunCmd(m.client, id), loadStepsCmd(m.client, id))
		}
		return m, nil
	case key.Matches(msg, globalKeys.Quit) || msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleRunsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.projects.Selected()
	switch {
	case key.Matches(msg, listKeys.Up):
		m.runList.MoveUp()
		return m, nil
	case key.Matches(msg, listKeys.Down):
		m.runList.MoveDown()
		return m, nil
	case key.Matches(msg, listKeys.Enter):
		if run := m.runList.Selected(); run != nil {
			return m, loadRunCmd(m.client, run.ID)
		}
		return m, nil
	case key.Matches(msg, runListKeys.Filter):
		m.runList.CycleFilter()
		if sel != nil {
			m.runList.SetLoading()
			return m, loadRunsCmd(m.client, m.runList.Query(sel.ID))
		}
		return m, nil
	case key.Matches(msg, runListKeys.NextPage):
		m.runList.NextPage()
		if sel != nil {
			m.runList.SetLoading()
			return m, loadRunsCmd(m.client, m.runList.Query(sel.ID))
		}
		return m, nil
	case key.Matches(msg, runListKeys.PrevPage):
		m.runList.PrevPage()
		if sel != nil {
			m.runList.SetLoading()
			return m, loadRunsCmd(m.client, m.runList.Query(sel.ID))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, listKeys.Up):
		m.projectList.MoveUp()
		return m, nil
	case key.Matches(msg, listKeys.Down):
		m.projectList.MoveDown()
		return m, nil
	case key.Matches(msg, projectKeys.Select):
		if p := m.projectList.Selected(); p != nil {
			if err := m.projects.Select(p); err != nil {
				m.err = err
				return m, clearErrorAfter(5 * time.Second)
			}
			m.projectList.SetActive(p.ID)
			return m, tea.Batch(m.reloadProjectData(p.ID)...)
		}
		return m, nil
	case key.Matches(msg, projectKeys.Add):
		m.projectForm = NewProjectForm("add", m.width)
		m.activeOverlay = overlayProjectForm
		return m, nil
	case key.Matches(msg, projectKeys.Rename):
		if p := m.projectList.Selected(); p != nil {
			m.projectForm = NewProjectForm("rename", m.width)
			m.projectForm.PreFill(p.ID, p.Name)
			m.activeOverlay = overlayProjectForm
		}
		return m, nil
	case key.Matches(msg, projectKeys.Delete):
		if p := m.projectList.Selected(); p != nil {
			m.confirmMode = confirmDeleteProject
			m.confirmLabel = p.Name
			m.confirmID = p.ID
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeysKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, listKeys.Up):
		m.keyList.MoveUp()
		return m, nil
	case key.Matches(msg, listKeys.Down):
		m.keyList.MoveDown()
		return m, nil
	case key.Matches(msg, keyListKeys.Add):
		if m.projects.Selected() == nil {
			m.err = fmt.Errorf("select a project first")
			return m, clearErrorAfter(3 * time.Second)
		}
		m.keyForm = NewKeyForm(m.width)
		m.activeOverlay = overlayKeyForm
		return m, nil
	case key.Matches(msg, keyListKeys.Revoke):
		if k := m.keyList.Selected(); k != nil && !k.Revoked() {
			label := k.KeyPrefix
			if k.Name != nil && *k.Name != "" {
				label = *k.Name
			}
			m.confirmMode = confirmRevokeKey
			m.confirmLabel = label
			m.confirmID = k.ID
		}
		return m, nil
	}
	return m, nil
}

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.screen == screenLogin {
		body := m.loginForm.View(m.width, m.height-1)
		return body + "\n" + renderStatusBar(&m, m.width)
	}

	header := renderHeader(m.projects.Selected(), m.activeTab, m.width)

	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.screen == screenRunDetail {
		content = m.runDetail.View()
	} else {
		switch m.activeTab {
		case tabDashboard:
			content = m.dashboard.View(m.projects.Selected(), m.width-2)
		case tabRuns:
			content = m.runList.View(m.width - 2)
		case tabProjects:
			content = m.projectList.View(m.width - 2)
		case tabKeys:
			content = m.keyList.View(m.width - 2)
		}
	}
	content = padToHeight(" "+strings.ReplaceAll(content, "\n", "\n "), contentHeight)

	base := header + "\n" + content + "\n" + renderStatusBar(&m, m.width)

	switch m.activeOverlay {
	case overlayHelp:
		return renderOverlay(base, renderHelp(m.width), m.width, m.height)
	case overlayProjectForm:
		if m.projectForm != nil {
			return renderOverlay(base, m.projectForm.View(), m.width, m.height)
		}
	case overlayKeyForm:
		if m.keyForm != nil {
			return renderOverlay(base, m.keyForm.View(), m.width, m.height)
		}
	case overlayCreatedSecret:
		if m.createdKey != nil {
			return renderOverlay(base, renderCreatedSecret(*m.createdKey, m.width), m.width, m.height)
		}
	}

	return base
}

// padToHeight pads or truncates content to exactly h lines.
func padToHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
