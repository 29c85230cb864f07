package wizard

import "github.com/charmbracelet/bubbles/textinput"

// WizardState represents the current step in the table-creation flow.
type WizardState int

const (
	StateWelcome WizardState = iota
	StateSchemaName
	StateTableName
	StateColumnName
	StateColumnType
	StateColumnLength
	StateAddAnother
	StateSummary
	StatePlanning
	StateDone
	StateError
)

// ColumnInput holds user input for a single column before it is checked
// against the type lattice.
type ColumnInput struct {
	Name       string
	TypeName   string // "integer", "varchar", "bigint", ...
	LengthText string // only meaningful for char/varchar
}

// WizardModel holds the state for the Bubble Tea wizard.
type WizardModel struct {
	state WizardState

	schemaName string
	tableName  string
	ifNotExist bool

	columns       []ColumnInput
	currentColumn ColumnInput

	addAnotherChoice int // 0 = add another column, 1 = finish

	input     textinput.Model
	typeIndex int
	errors    map[string]string

	planSummary string
	err         error

	width  int
	height int
}

// columnTypeChoices lists the type names offered during StateColumnType.
var columnTypeChoices = []string{"integer", "smallint", "bigint", "bool", "varchar", "char", "real", "double precision"}

func needsLength(typeName string) bool {
	return typeName == "varchar" || typeName == "char"
}
