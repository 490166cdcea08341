package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klauern/skillhub/internal/model"
)

// PickerAction represents the outcome of the skill picker.
type PickerAction int

const (
	// PickerActionNone means the user quit without choosing.
	PickerActionNone PickerAction = iota
	// PickerActionInstall means the user confirmed a selection.
	PickerActionInstall
)

// SkillPickerResult contains the result of the picker interaction.
type SkillPickerResult struct {
	Action   PickerAction
	Selected []model.Skill
}

type skillPickerKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Confirm   key.Binding
	Filter    key.Binding
	ClearFlt  key.Binding
	NextScope key.Binding
	PrevScope key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultSkillPickerKeyMap() skillPickerKeyMap {
	return skillPickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "install"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		NextScope: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab/l", "next scope"),
		),
		PrevScope: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("S-tab/h", "prev scope"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type pickerColumnWidths struct {
	mark      int
	skill     int
	platforms int
	source    int
}

func defaultPickerColumnWidths() pickerColumnWidths {
	return pickerColumnWidths{mark: 3, skill: 32, platforms: 22, source: 50}
}

// SkillPickerModel is the BubbleTea model for choosing skills to install.
type SkillPickerModel struct {
	table      table.Model
	skills     []model.Skill
	filtered   []model.Skill
	selected   map[string]bool
	keys       skillPickerKeyMap
	result     SkillPickerResult
	filter     string
	filtering  bool
	scopes     []string
	scopeIndex int // -1 = all
	showHelp   bool
	width      int
	quitting   bool
	widths     pickerColumnWidths
}

// NewSkillPickerModel creates a picker over the given skills, sorted by full name.
func NewSkillPickerModel(skills []model.Skill) SkillPickerModel {
	skills = slices.Clone(skills)
	slices.SortStableFunc(skills, func(a, b model.Skill) int {
		return strings.Compare(strings.ToLower(a.FullName()), strings.ToLower(b.FullName()))
	})

	var scopes []string
	for _, s := range skills {
		if !slices.Contains(scopes, s.Scope) {
			scopes = append(scopes, s.Scope)
		}
	}
	slices.Sort(scopes)

	m := SkillPickerModel{
		skills:     skills,
		filtered:   skills,
		selected:   make(map[string]bool),
		keys:       defaultSkillPickerKeyMap(),
		scopes:     scopes,
		scopeIndex: -1,
		widths:     defaultPickerColumnWidths(),
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func (m SkillPickerModel) columns() []table.Column {
	return []table.Column{
		{Title: "", Width: m.widths.mark},
		{Title: "Skill", Width: m.widths.skill},
		{Title: "Platforms", Width: m.widths.platforms},
		{Title: "Source", Width: m.widths.source},
	}
}

func (m SkillPickerModel) rows() []table.Row {
	rows := make([]table.Row, len(m.filtered))
	for i, s := range m.filtered {
		mark := "[ ]"
		if m.selected[s.FullName()] {
			mark = "[x]"
		}
		rows[i] = table.Row{
			mark,
			truncateText(s.FullName(), m.widths.skill),
			truncateText(platformsLabel(s), m.widths.platforms),
			truncateText(s.SourcePath, m.widths.source),
		}
	}
	return rows
}

func platformsLabel(s model.Skill) string {
	if s.Platforms == nil {
		return "all"
	}
	if len(s.Platforms) == 0 {
		return "none"
	}
	names := make([]string, len(s.Platforms))
	for i, p := range s.Platforms {
		names[i] = displayName(p)
	}
	return strings.Join(names, ", ")
}

// Init implements tea.Model.
func (m SkillPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SkillPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(msg.Height-12, 5))
		m.applyColumnWidths(msg.Width)

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
			case "esc":
				m.filter = ""
				m.filtering = false
				m.applyFilter()
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.result = SkillPickerResult{Action: PickerActionNone}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil

		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.NextScope):
			if len(m.scopes) > 0 {
				m.scopeIndex++
				if m.scopeIndex >= len(m.scopes) {
					m.scopeIndex = -1
				}
				m.applyFilter()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScope):
			if len(m.scopes) > 0 {
				m.scopeIndex--
				if m.scopeIndex < -1 {
					m.scopeIndex = len(m.scopes) - 1
				}
				m.applyFilter()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if s, ok := m.current(); ok {
				name := s.FullName()
				if m.selected[name] {
					delete(m.selected, name)
				} else {
					m.selected[name] = true
				}
				m.table.SetRows(m.rows())
			}
			return m, nil

		case key.Matches(msg, m.keys.Confirm):
			chosen := m.chosen()
			if len(chosen) == 0 {
				return m, nil
			}
			m.result = SkillPickerResult{Action: PickerActionInstall, Selected: chosen}
			m.quitting = true
			return m, tea.Quit
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// chosen returns toggled skills in display order, or the row under the
// cursor when nothing is toggled.
func (m SkillPickerModel) chosen() []model.Skill {
	var out []model.Skill
	for _, s := range m.skills {
		if m.selected[s.FullName()] {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	if s, ok := m.current(); ok {
		return []model.Skill{s}
	}
	return nil
}

func (m SkillPickerModel) current() (model.Skill, bool) {
	cursor := m.table.Cursor()
	if cursor >= 0 && cursor < len(m.filtered) {
		return m.filtered[cursor], true
	}
	return model.Skill{}, false
}

func (m *SkillPickerModel) applyFilter() {
	filtered := m.skills

	if m.scopeIndex >= 0 && m.scopeIndex < len(m.scopes) {
		scope := m.scopes[m.scopeIndex]
		var byScope []model.Skill
		for _, s := range filtered {
			if s.Scope == scope {
				byScope = append(byScope, s)
			}
		}
		filtered = byScope
	}

	if m.filter != "" {
		needle := strings.ToLower(m.filter)
		var byText []model.Skill
		for _, s := range filtered {
			if strings.Contains(strings.ToLower(s.FullName()), needle) ||
				strings.Contains(strings.ToLower(s.SourcePath), needle) {
				byText = append(byText, s)
			}
		}
		filtered = byText
	}

	m.filtered = filtered
	m.table.SetRows(m.rows())
	if m.table.Cursor() >= len(filtered) {
		m.table.SetCursor(max(len(filtered)-1, 0))
	}
}

func (m *SkillPickerModel) applyColumnWidths(totalWidth int) {
	widths := defaultPickerColumnWidths()
	if totalWidth > 0 {
		const separatorWidth = 8
		widths.source = max(totalWidth-(widths.mark+widths.skill+widths.platforms+separatorWidth), 20)
	}
	m.widths = widths
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows())
}

// View implements tea.Model.
func (m SkillPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Install skills"))
	b.WriteString("\n\n")
	b.WriteString(m.renderScopeTabs())
	b.WriteString("\n\n")

	if m.filter != "" || m.filtering {
		val := Styles.Input.Render(m.filter)
		if m.filtering {
			val += "█"
		}
		b.WriteString(Styles.Filter.Render("Filter: ") + val + "\n\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(Styles.Status.Render(m.renderStatus()))
	b.WriteString("\n")

	if s, ok := m.current(); ok {
		width := max(m.width-2, 40)
		b.WriteString(Styles.Detail.Render(formatDetail("Source: ", s.SourcePath, width)))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}
	return b.String()
}

func (m SkillPickerModel) renderScopeTabs() string {
	var tabs []string
	if m.scopeIndex == -1 {
		tabs = append(tabs, Styles.TabOn.Render("[All]"))
	} else {
		tabs = append(tabs, Styles.Tab.Render(" All "))
	}
	for i, scope := range m.scopes {
		label := "@" + scope
		if i == m.scopeIndex {
			tabs = append(tabs, Styles.TabOn.Render(fmt.Sprintf("[%s]", label)))
		} else {
			tabs = append(tabs, Styles.Tab.Render(fmt.Sprintf(" %s ", label)))
		}
	}
	return strings.Join(tabs, "")
}

func (m SkillPickerModel) renderStatus() string {
	return fmt.Sprintf("Showing %d of %d skills | %d selected", len(m.filtered), len(m.skills), len(m.selected))
}

func (m SkillPickerModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"space toggle",
		"enter install",
		"tab scope",
		"/ filter",
		"? help",
		"q quit",
	}
	return Styles.Help.Render(strings.Join(keys, " • "))
}

func (m SkillPickerModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

Scopes:
  Tab/l       Next scope
  Shift-Tab/h Previous scope

Actions:
  Space    Toggle selection
  Enter    Install selection (or the current row)

Text Filter:
  /        Start filtering (by name or source path)
  Esc      Clear filter
  Enter    Finish filtering

General:
  ?        Toggle full help
  q        Quit`
	return Styles.Help.Render(help)
}

// Result returns the outcome once the program has exited.
func (m SkillPickerModel) Result() SkillPickerResult {
	return m.result
}

// RunSkillPicker runs the picker and returns the user's choice.
func RunSkillPicker(skills []model.Skill) (SkillPickerResult, error) {
	if len(skills) == 0 {
		return SkillPickerResult{Action: PickerActionNone}, nil
	}

	p := tea.NewProgram(NewSkillPickerModel(skills), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return SkillPickerResult{}, err
	}
	m, ok := final.(SkillPickerModel)
	if !ok {
		return SkillPickerResult{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}
