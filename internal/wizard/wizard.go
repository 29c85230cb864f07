// Package wizard implements an interactive, terminal-based flow for
// composing a CREATE TABLE intent: it prompts for a schema name, a table
// name, and a column at a time, then plans and dry-runs the resulting
// ddl.CreateTable against an in-memory catalog.Snapshot so the user sees
// exactly what sqlcore plan would produce before ever touching a database.
package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// New creates a new wizard model.
func New() WizardModel {
	return WizardModel{
		state:      StateWelcome,
		schemaName: "public",
		errors:     make(map[string]string),
	}
}

func (m WizardModel) Init() tea.Cmd {
	return nil
}

func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state == StateWelcome {
				return m, tea.Quit
			}
			return m.handleBack()
		case "enter":
			return m.handleEnter()
		case "up", "k":
			return m.handleUp()
		case "down", "j":
			return m.handleDown()
		default:
			return m.handleTextInput(msg)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m *WizardModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateWelcome:
		m.state = StateSchemaName
		m.input = m.makeInput("public", m.schemaName)
		return m, nil

	case StateSchemaName:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			name = "public"
		}
		if err := ValidateIdentifier(name); err != nil {
			m.errors["schema"] = err.Error()
			return m, nil
		}
		delete(m.errors, "schema")
		m.schemaName = strings.ToLower(name)
		m.state = StateTableName
		m.input = m.makeInput("orders", "")
		return m, nil

	case StateTableName:
		name := strings.TrimSpace(m.input.Value())
		if err := ValidateIdentifier(name); err != nil {
			m.errors["table"] = err.Error()
			return m, nil
		}
		delete(m.errors, "table")
		m.tableName = strings.ToLower(name)
		m.state = StateColumnName
		m.input = m.makeInput("id", "")
		return m, nil

	case StateColumnName:
		name := strings.TrimSpace(m.input.Value())
		if err := ValidateIdentifier(name); err != nil {
			m.errors["column"] = err.Error()
			return m, nil
		}
		lower := strings.ToLower(name)
		for _, existing := range m.columns {
			if existing.Name == lower {
				m.errors["column"] = fmt.Sprintf("column %q already added", name)
				return m, nil
			}
		}
		delete(m.errors, "column")
		m.currentColumn = ColumnInput{Name: lower}
		m.typeIndex = 0
		m.state = StateColumnType
		return m, nil

	case StateColumnType:
		m.currentColumn.TypeName = columnTypeChoices[m.typeIndex]
		if needsLength(m.currentColumn.TypeName) {
			m.state = StateColumnLength
			m.input = m.makeInput("255", "")
			return m, nil
		}
		if _, err := ValidateColumnType(m.currentColumn.TypeName, ""); err != nil {
			m.errors["type"] = err.Error()
			return m, nil
		}
		delete(m.errors, "type")
		return m.finishColumn()

	case StateColumnLength:
		m.currentColumn.LengthText = strings.TrimSpace(m.input.Value())
		if _, err := ValidateColumnType(m.currentColumn.TypeName, m.currentColumn.LengthText); err != nil {
			m.errors["length"] = err.Error()
			return m, nil
		}
		delete(m.errors, "length")
		return m.finishColumn()

	case StateAddAnother:
		if m.addAnotherChoice == 0 {
			m.state = StateColumnName
			m.input = m.makeInput("id", "")
			return m, nil
		}
		return m.toSummary()

	case StateSummary:
		m.state = StateDone
		return m, nil

	case StateDone, StateError:
		return m, tea.Quit
	}
	return m, nil
}

func (m *WizardModel) finishColumn() (tea.Model, tea.Cmd) {
	m.columns = append(m.columns, m.currentColumn)
	m.currentColumn = ColumnInput{}
	m.addAnotherChoice = 0
	m.state = StateAddAnother
	return m, nil
}

func (m *WizardModel) toSummary() (tea.Model, tea.Cmd) {
	m.state = StatePlanning
	change := m.buildIntent()
	summary, err := planAndApply(change, m.schemaName)
	if err != nil {
		m.err = err
		m.state = StateError
		return m, nil
	}
	m.planSummary = summary
	m.state = StateSummary
	return m, nil
}

func (m *WizardModel) handleBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateSchemaName:
		m.state = StateWelcome
	case StateTableName:
		m.state = StateSchemaName
		m.input = m.makeInput("public", m.schemaName)
	case StateColumnName:
		if len(m.columns) == 0 {
			m.state = StateTableName
			m.input = m.makeInput("orders", m.tableName)
			return m, nil
		}
		m.columns = m.columns[:len(m.columns)-1]
		m.state = StateAddAnother
	case StateColumnType:
		m.state = StateColumnName
		m.input = m.makeInput("id", "")
	case StateColumnLength:
		m.state = StateColumnType
	case StateAddAnother:
		m.state = StateColumnName
		m.input = m.makeInput("id", "")
	case StateSummary:
		m.state = StateAddAnother
	}
	return m, nil
}

func (m *WizardModel) handleUp() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateColumnType:
		if m.typeIndex > 0 {
			m.typeIndex--
		}
	case StateAddAnother:
		m.addAnotherChoice = 0
	}
	return m, nil
}

func (m *WizardModel) handleDown() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateColumnType:
		if m.typeIndex < len(columnTypeChoices)-1 {
			m.typeIndex++
		}
	case StateAddAnother:
		m.addAnotherChoice = 1
	}
	return m, nil
}

func (m *WizardModel) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateSchemaName, StateTableName, StateColumnName, StateColumnLength:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *WizardModel) makeInput(placeholder, value string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(value)
	input.Prompt = "→ "
	input.PromptStyle = focusedPromptStyle
	input.TextStyle = infoStyle
	input.Width = 50
	input.Focus()
	return input
}

func (m WizardModel) View() string {
	switch m.state {
	case StateWelcome:
		return m.renderWelcome()
	case StateSchemaName:
		return m.renderTextPrompt("Schema name", "schema")
	case StateTableName:
		return m.renderTextPrompt("Table name", "table")
	case StateColumnName:
		return m.renderTextPrompt(fmt.Sprintf("Column %d name", len(m.columns)+1), "column")
	case StateColumnType:
		return m.renderColumnType()
	case StateColumnLength:
		return m.renderTextPrompt(fmt.Sprintf("Length for %s (default 255)", m.currentColumn.TypeName), "length")
	case StateAddAnother:
		return m.renderAddAnother()
	case StatePlanning:
		return renderSectionHeader(iconSpinner + " Planning...")
	case StateSummary:
		return m.renderSummary()
	case StateDone:
		return m.renderDone()
	case StateError:
		return m.renderErrorView()
	}
	return ""
}

func (m WizardModel) renderWelcome() string {
	var b strings.Builder
	b.WriteString(renderHeader("Create a table"))
	b.WriteString("\n\n")
	b.WriteString(renderInfo("This composes a CREATE TABLE plan interactively - it never connects to a database."))
	b.WriteString("\n\n")
	b.WriteString(renderStatusBar("enter: continue · esc: quit"))
	return b.String()
}

func (m WizardModel) renderTextPrompt(label, errKey string) string {
	var b strings.Builder
	b.WriteString(renderSectionHeader(iconColumn + " " + label))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if errMsg, ok := m.errors[errKey]; ok {
		b.WriteString("\n")
		b.WriteString(renderError(errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(renderStatusBar("enter: confirm · esc: back · ctrl+c: quit"))
	return b.String()
}

func (m WizardModel) renderColumnType() string {
	var b strings.Builder
	b.WriteString(renderSectionHeader(fmt.Sprintf("Type for column %q", m.currentColumn.Name)))
	b.WriteString("\n\n")
	for i, choice := range columnTypeChoices {
		b.WriteString(renderOption(i, i == m.typeIndex, choice))
		b.WriteString("\n")
	}
	if errMsg, ok := m.errors["type"]; ok {
		b.WriteString(renderError(errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderStatusBar("up/down: select · enter: confirm · esc: back"))
	return b.String()
}

func (m WizardModel) renderAddAnother() string {
	var b strings.Builder
	b.WriteString(renderSectionHeader(fmt.Sprintf("%s %s.%s so far: %d column(s)", iconTable, m.schemaName, m.tableName, len(m.columns))))
	b.WriteString("\n\n")
	for _, col := range m.columns {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  - %s %s\n", col.Name, renderedColumnType(col))))
	}
	b.WriteString("\n")
	b.WriteString(renderOption(0, m.addAnotherChoice == 0, "add another column"))
	b.WriteString("\n")
	b.WriteString(renderOption(1, m.addAnotherChoice == 1, "finish and review plan"))
	b.WriteString("\n\n")
	b.WriteString(renderStatusBar("up/down: select · enter: confirm · esc: back"))
	return b.String()
}

func renderedColumnType(col ColumnInput) string {
	if needsLength(col.TypeName) {
		length := col.LengthText
		if length == "" {
			length = "255"
		}
		return fmt.Sprintf("%s(%s)", col.TypeName, length)
	}
	return col.TypeName
}

func (m WizardModel) renderSummary() string {
	var b strings.Builder
	b.WriteString(renderSectionHeader(iconSparkles + " Plan"))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(m.planSummary))
	b.WriteString("\n")
	b.WriteString(renderStatusBar("enter: done · esc: back"))
	return b.String()
}

func (m WizardModel) renderDone() string {
	var b strings.Builder
	b.WriteString(renderSuccess(fmt.Sprintf("%s table %s.%s planned", iconRocket, m.schemaName, m.tableName)))
	b.WriteString("\n")
	b.WriteString(renderStatusBar("enter/ctrl+c: exit"))
	return b.String()
}

func (m WizardModel) renderErrorView() string {
	var b strings.Builder
	b.WriteString(renderError(m.err.Error()))
	b.WriteString("\n")
	b.WriteString(renderStatusBar("enter/ctrl+c: exit"))
	return b.String()
}

// Run launches the wizard as a full-screen terminal program.
func Run() error {
	m := New()
	p := tea.NewProgram(&m)
	_, err := p.Run()
	return err
}
