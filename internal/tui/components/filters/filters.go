package filters

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/tui/format"
	"github.com/justchokingaround/yt-tui/internal/tui/styles"
	"github.com/justchokingaround/yt-tui/internal/view"
)

const (
	// Height is the number of rows the summary panel occupies
	Height = 4
	// EditorHeight is the number of rows the panel occupies while editing
	EditorHeight = 10

	maxSuggestions = 3
)

// Field identifies an editor row
type Field int

const (
	FieldChannel Field = iota
	FieldMinDuration
	FieldMaxDuration
	FieldAfterDate
	FieldHideWatched
	FieldSort
	fieldCount
)

var fieldLabels = [...]string{
	FieldChannel:     "Channel",
	FieldMinDuration: "Min duration",
	FieldMaxDuration: "Max duration",
	FieldAfterDate:   "After date",
	FieldHideWatched: "Hide watched",
	FieldSort:        "Sort",
}

// Action tells the caller what a key press asked for
type Action int

const (
	ActionNone Action = iota
	// ActionApply asks the caller to apply Criteria and close the editor
	ActionApply
	// ActionCancel closes the editor without applying
	ActionCancel
	ActionToggleHideWatched
	ActionCycleSort
)

// Model edits the four filter criteria. Hide-watched and sort mode are
// toggled through actions so the engine stays their only owner.
type Model struct {
	inputs      [FieldHideWatched]textinput.Model
	focus       Field
	creators    []string
	suggestions []fuzzy.Match
	err         error
	width       int
}

// New creates a filters editor
func New() Model {
	var m Model
	placeholders := [FieldHideWatched]string{
		FieldChannel:     "any channel",
		FieldMinDuration: "seconds or 5m",
		FieldMaxDuration: "seconds or 1h30m",
		FieldAfterDate:   "2024-01-01T00:00:00Z",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 100
		ti.Placeholder = placeholders[i]
		ti.PlaceholderStyle = styles.HelpStyle
		ti.TextStyle = styles.ValueStyle
		ti.Cursor.SetMode(cursor.CursorStatic)
		m.inputs[i] = ti
	}
	return m
}

// SetWidth sets the outer width of the panel
func (m *Model) SetWidth(width int) {
	m.width = width
	for i := range m.inputs {
		m.inputs[i].Width = max(width-24, 10)
	}
}

// Open loads the current criteria into the editor. creators feeds the
// channel suggestions.
func (m *Model) Open(criteria media.FilterCriteria, creators []string) {
	m.inputs[FieldChannel].SetValue(criteria.Creator)
	m.inputs[FieldMinDuration].SetValue(durationValue(criteria.MinDuration))
	m.inputs[FieldMaxDuration].SetValue(durationValue(criteria.MaxDuration))
	m.inputs[FieldAfterDate].SetValue(criteria.AfterDate)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}

	m.creators = uniqueSorted(creators)
	m.err = nil
	m.setFocus(FieldChannel)
	m.refreshSuggestions()
}

// Focused returns the focused row
func (m Model) Focused() Field {
	return m.focus
}

// Suggestions returns the creator names matching the channel input, best first
func (m Model) Suggestions() []string {
	out := make([]string, len(m.suggestions))
	for i, s := range m.suggestions {
		out[i] = s.Str
	}
	return out
}

// Err returns the last validation error
func (m Model) Err() error {
	return m.err
}

// Criteria parses the editor contents
func (m Model) Criteria() (media.FilterCriteria, error) {
	criteria := media.FilterCriteria{
		Creator:   strings.TrimSpace(m.inputs[FieldChannel].Value()),
		AfterDate: strings.TrimSpace(m.inputs[FieldAfterDate].Value()),
	}

	var err error
	if criteria.MinDuration, err = parseDuration(m.inputs[FieldMinDuration].Value()); err != nil {
		return criteria, fmt.Errorf("min duration: %w", err)
	}
	if criteria.MaxDuration, err = parseDuration(m.inputs[FieldMaxDuration].Value()); err != nil {
		return criteria, fmt.Errorf("max duration: %w", err)
	}
	if criteria.MinDuration != nil && criteria.MaxDuration != nil && *criteria.MinDuration > *criteria.MaxDuration {
		return criteria, errors.New("min duration is greater than max duration")
	}
	if criteria.AfterDate != "" {
		if _, err := time.Parse(time.RFC3339, criteria.AfterDate); err != nil {
			return criteria, errors.New("after date must be RFC 3339, e.g. 2024-01-01T00:00:00Z")
		}
	}
	return criteria, nil
}

// HandleKey processes a key press while the editor is open
func (m Model) HandleKey(msg tea.KeyMsg) (Model, Action, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+f":
		return m, ActionCancel, nil
	case "enter":
		if _, err := m.Criteria(); err != nil {
			m.err = err
			return m, ActionNone, nil
		}
		m.err = nil
		return m, ActionApply, nil
	case "up", "shift+tab":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, ActionNone, nil
	case "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, ActionNone, nil
	case "tab":
		if m.focus == FieldChannel && len(m.suggestions) > 0 && m.inputs[FieldChannel].Value() != m.suggestions[0].Str {
			m.inputs[FieldChannel].SetValue(m.suggestions[0].Str)
			m.inputs[FieldChannel].CursorEnd()
			m.refreshSuggestions()
			return m, ActionNone, nil
		}
		m.setFocus((m.focus + 1) % fieldCount)
		return m, ActionNone, nil
	}

	switch m.focus {
	case FieldHideWatched:
		switch msg.String() {
		case " ", "h", "left", "right":
			return m, ActionToggleHideWatched, nil
		}
		return m, ActionNone, nil
	case FieldSort:
		switch msg.String() {
		case " ", "s", "left", "right":
			return m, ActionCycleSort, nil
		}
		return m, ActionNone, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.err = nil
	if m.focus == FieldChannel {
		m.refreshSuggestions()
	}
	return m, ActionNone, cmd
}

// View renders the editor when editing is true, otherwise a summary of the
// applied state
func (m Model) View(editing bool, applied media.FilterCriteria, hideWatched bool, mode view.SortMode) string {
	style := styles.PanelStyle
	if editing {
		style = styles.ActivePanelStyle
	}
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}

	if !editing {
		style = style.Height(Height - 2)
		return style.Render(summary(applied, hideWatched, mode))
	}

	style = style.Height(EditorHeight - 2)

	var lines []string
	for f := FieldChannel; f < fieldCount; f++ {
		marker := "  "
		label := styles.LabelStyle.Render(fmt.Sprintf("%-13s", fieldLabels[f]+":"))
		if f == m.focus {
			marker = styles.GutterStyle.Render("▌ ")
		}

		var value string
		switch f {
		case FieldHideWatched:
			value = onOff(hideWatched)
		case FieldSort:
			value = styles.SortStyle.Render(mode.String())
		default:
			value = m.inputs[f].View()
		}
		lines = append(lines, marker+label+" "+value)
	}

	switch {
	case m.err != nil:
		lines = append(lines, styles.ErrorStyle.Render(m.err.Error()))
	case m.focus == FieldChannel && len(m.suggestions) > 0:
		lines = append(lines, renderSuggestions(m.suggestions))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, styles.HelpStyle.Render("↑/↓ field • tab complete • space toggle • enter apply • esc cancel"))

	return style.Render(strings.Join(lines, "\n"))
}

func summary(c media.FilterCriteria, hideWatched bool, mode view.SortMode) string {
	var parts []string
	if c.Creator != "" {
		parts = append(parts, styles.LabelStyle.Render("Channel: ")+styles.ValueStyle.Render(c.Creator))
	}
	if c.MinDuration != nil || c.MaxDuration != nil {
		parts = append(parts, styles.LabelStyle.Render("Duration: ")+
			styles.ValueStyle.Render(format.Seconds(c.MinDuration, "0s")+" - "+format.Seconds(c.MaxDuration, "∞")))
	}
	if c.AfterDate != "" {
		parts = append(parts, styles.LabelStyle.Render("After: ")+styles.ValueStyle.Render(c.AfterDate))
	}

	first := styles.HelpStyle.Render("No filters active (ctrl+f to edit)")
	if len(parts) > 0 {
		first = strings.Join(parts, "   ")
	}

	second := styles.LabelStyle.Render("Hide Watched: ") + onOff(hideWatched) +
		"   " + styles.LabelStyle.Render("Sort: ") + styles.SortStyle.Render(mode.String())

	return first + "\n" + second
}

func onOff(on bool) string {
	if on {
		return styles.OnStyle.Render("Yes")
	}
	return styles.OffStyle.Render("No")
}

func renderSuggestions(matches []fuzzy.Match) string {
	var b strings.Builder
	b.WriteString(styles.HelpStyle.Render("  suggestions: "))
	for i, match := range matches {
		if i > 0 {
			b.WriteString(styles.SuggestionStyle.Render(", "))
		}
		matched := make(map[int]bool, len(match.MatchedIndexes))
		for _, idx := range match.MatchedIndexes {
			matched[idx] = true
		}
		for idx, r := range match.Str {
			if matched[idx] {
				b.WriteString(styles.SuggestionMatchStyle.Render(string(r)))
			} else {
				b.WriteString(styles.SuggestionStyle.Render(string(r)))
			}
		}
	}
	return b.String()
}

func (m *Model) setFocus(f Field) {
	m.focus = f
	for i := range m.inputs {
		if Field(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) refreshSuggestions() {
	query := strings.TrimSpace(m.inputs[FieldChannel].Value())
	if query == "" {
		m.suggestions = nil
		return
	}
	matches := fuzzy.Find(query, m.creators)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	m.suggestions = matches
}

// parseDuration accepts whole seconds or a Go duration string; empty means unset
func parseDuration(value string) (*time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		return media.Seconds(n), nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q", value)
	}
	if d < 0 {
		return nil, fmt.Errorf("negative duration %q", value)
	}
	d = d.Truncate(time.Second)
	return &d, nil
}

func durationValue(d *time.Duration) string {
	if d == nil {
		return ""
	}
	return strconv.FormatInt(int64(*d/time.Second), 10)
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
