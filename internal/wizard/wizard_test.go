package wizard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressKey(m *WizardModel, k tea.KeyMsg) {
	m.Update(k)
}

func typeText(m *WizardModel, text string) {
	for _, ch := range text {
		pressKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ch}})
	}
}

func TestWizardModel_HappyPath(t *testing.T) {
	m := New()
	if m.state != StateWelcome {
		t.Fatalf("expected StateWelcome, got %v", m.state)
	}

	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateSchemaName {
		t.Fatalf("expected StateSchemaName, got %v", m.state)
	}

	typeText(&m, "app")
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateTableName || m.schemaName != "app" {
		t.Fatalf("expected StateTableName with schema app, got state=%v schema=%q", m.state, m.schemaName)
	}

	typeText(&m, "orders")
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateColumnName || m.tableName != "orders" {
		t.Fatalf("expected StateColumnName with table orders, got state=%v table=%q", m.state, m.tableName)
	}

	typeText(&m, "id")
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateColumnType {
		t.Fatalf("expected StateColumnType, got %v", m.state)
	}

	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateAddAnother {
		t.Fatalf("expected StateAddAnother after a non-length type, got %v", m.state)
	}
	if len(m.columns) != 1 || m.columns[0].Name != "id" {
		t.Fatalf("expected one column named id, got %+v", m.columns)
	}

	m.addAnotherChoice = 1
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateSummary {
		t.Fatalf("expected StateSummary, got %v (err=%v)", m.state, m.err)
	}

	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateDone {
		t.Fatalf("expected StateDone, got %v", m.state)
	}
}

func TestWizardModel_RejectsInvalidIdentifier(t *testing.T) {
	m := New()
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter}) // -> StateSchemaName
	typeText(&m, "1bad")
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateSchemaName {
		t.Fatalf("expected to stay on StateSchemaName after invalid input, got %v", m.state)
	}
	if _, ok := m.errors["schema"]; !ok {
		t.Fatal("expected a schema validation error to be recorded")
	}
}

func TestWizardModel_EscQuitsFromWelcome(t *testing.T) {
	m := New()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected esc from StateWelcome to issue a quit command")
	}
}

func TestWizardModel_BackFromTableNameReturnsToSchemaName(t *testing.T) {
	m := New()
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(&m, "app")
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateTableName {
		t.Fatalf("expected StateTableName, got %v", m.state)
	}
	pressKey(&m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateSchemaName {
		t.Fatalf("expected esc to return to StateSchemaName, got %v", m.state)
	}
}
