// Package ddl implements the DDL planner: a pure function lowering
// schema-change intents into a deterministic, replayable SystemOperation
// step program. The planner never performs I/O and never observes the
// catalog; all IF [NOT] EXISTS behavior is encoded in SkipStepsIf and
// evaluated by the consumer at apply time.
package ddl

import (
	"github.com/google/uuid"
	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/types"
)

// SystemObject names the kind of catalog object a Step or Kind targets.
type SystemObject int

const (
	ObjectSchema SystemObject = iota
	ObjectTable
)

func (o SystemObject) String() string {
	if o == ObjectSchema {
		return "schema"
	}
	return "table"
}

// Action distinguishes a Create from a Drop operation.
type Action int

const (
	ActionCreate Action = iota
	ActionDrop
)

// Kind is the (action, object) pair a SystemOperation performs.
type Kind struct {
	Action Action
	Object SystemObject
}

// ObjectState is the precondition SkipStepsIf checks before running a
// sub-program.
type ObjectState int

const (
	StateExists ObjectState = iota
	StateNotExists
)

// Record is a tagged union over the three catalog row shapes a Step may
// create or remove.
type Record struct {
	tag        recordTag
	schemaName string
	tableName  string
	columnName string
	sqlType    types.SqlType
}

type recordTag int

const (
	recordSchema recordTag = iota
	recordTable
	recordColumn
)

func SchemaRecord(schemaName string) Record {
	return Record{tag: recordSchema, schemaName: schemaName}
}

func TableRecord(schemaName, tableName string) Record {
	return Record{tag: recordTable, schemaName: schemaName, tableName: tableName}
}

func ColumnRecord(schemaName, tableName, columnName string, sqlType types.SqlType) Record {
	return Record{tag: recordColumn, schemaName: schemaName, tableName: tableName, columnName: columnName, sqlType: sqlType}
}

func (r Record) IsSchema() bool { return r.tag == recordSchema }
func (r Record) IsTable() bool  { return r.tag == recordTable }
func (r Record) IsColumn() bool { return r.tag == recordColumn }
func (r Record) SchemaName() string    { return r.schemaName }
func (r Record) TableName() string     { return r.tableName }
func (r Record) ColumnName() string    { return r.columnName }
func (r Record) SqlType() types.SqlType { return r.sqlType }

// StepKind names which of the vocabulary's operations a Step performs.
type StepKind int

const (
	StepCheckExistence StepKind = iota
	StepCheckDependants
	StepRemoveDependants
	StepCreateFolder
	StepRemoveFolder
	StepCreateFile
	StepRemoveFile
	StepCreateRecord
	StepRemoveRecord
	StepRemoveColumns
)

// Step is one element of a sub-program. Only the fields relevant to Kind
// are populated; see the constructors below.
type Step struct {
	Kind         StepKind
	SystemObject SystemObject
	ObjectName   []string // for CheckExistence / CheckDependants / RemoveDependants
	FolderName   string   // for CreateFolder / RemoveFolder / CreateFile / RemoveFile
	Name         string   // for CreateFolder / RemoveFolder / CreateFile / RemoveFile
	OnlyIfEmpty  bool     // for RemoveFolder
	Record       Record   // for CreateRecord / RemoveRecord
	SchemaName   string   // for RemoveColumns
	TableName    string   // for RemoveColumns
}

func checkExistence(obj SystemObject, name ...string) Step {
	return Step{Kind: StepCheckExistence, SystemObject: obj, ObjectName: name}
}

func checkDependants(obj SystemObject, name ...string) Step {
	return Step{Kind: StepCheckDependants, SystemObject: obj, ObjectName: name}
}

func removeDependants(obj SystemObject, name ...string) Step {
	return Step{Kind: StepRemoveDependants, SystemObject: obj, ObjectName: name}
}

func createFolder(name string) Step {
	return Step{Kind: StepCreateFolder, Name: name}
}

func removeFolder(name string, onlyIfEmpty bool) Step {
	return Step{Kind: StepRemoveFolder, Name: name, OnlyIfEmpty: onlyIfEmpty}
}

func createFile(folderName, name string) Step {
	return Step{Kind: StepCreateFile, FolderName: folderName, Name: name}
}

func removeFile(folderName, name string) Step {
	return Step{Kind: StepRemoveFile, FolderName: folderName, Name: name}
}

func createRecord(r Record) Step {
	return Step{Kind: StepCreateRecord, Record: r}
}

func removeRecord(r Record) Step {
	return Step{Kind: StepRemoveRecord, Record: r}
}

func removeColumns(schemaName, tableName string) Step {
	return Step{Kind: StepRemoveColumns, SchemaName: schemaName, TableName: tableName}
}

// SystemOperation is the planner's output: an ordered sequence of
// sub-programs, each targeting exactly one object, plus the precondition
// under which a sub-program is skipped as a no-op (evaluated per
// sub-program, against that sub-program's target object).
type SystemOperation struct {
	Kind        Kind
	SkipStepsIf *ObjectState // nil means the precondition must hold
	Steps       [][]Step

	// PlanID correlates a produced plan with its later application in
	// logs; it is assigned once per Plan call and never consulted by the
	// planner itself.
	PlanID string
}

// CreateSchema is the intent to create a new schema.
type CreateSchema struct {
	SchemaName    definition.SchemaName
	IfNotExists   bool
}

// DropSchemas is the intent to drop one or more schemas.
type DropSchemas struct {
	SchemaNames []definition.SchemaName
	Cascade     bool
	IfExists    bool
}

// CreateTable is the intent to create a new table with the given columns.
type CreateTable struct {
	FullTableName definition.FullTableName
	Columns       []definition.ColumnDef
	IfNotExists   bool
}

// DropTables is the intent to drop one or more tables.
//
// Cascade is recorded for symmetry with DROP TABLE ... CASCADE syntax but
// is not consulted by Plan: the drop-table template has no dependants
// step at all. See SPEC_FULL.md's Open Question decision.
type DropTables struct {
	FullTableNames []definition.FullTableName
	Cascade        bool
	IfExists       bool
}

// SchemaChange is the tagged union of the four supported intents.
type SchemaChange struct {
	CreateSchema *CreateSchema
	DropSchemas  *DropSchemas
	CreateTable  *CreateTable
	DropTables   *DropTables
}

// Planner lowers SchemaChange intents into SystemOperation step programs.
// It holds no state and performs no I/O.
type Planner struct{}

func NewPlanner() Planner { return Planner{} }

// Plan dispatches on which field of change is set and returns the
// corresponding fixed step template (SPEC_FULL.md §4.1).
func (Planner) Plan(change SchemaChange) SystemOperation {
	switch {
	case change.CreateSchema != nil:
		return planCreateSchema(*change.CreateSchema)
	case change.DropSchemas != nil:
		return planDropSchemas(*change.DropSchemas)
	case change.CreateTable != nil:
		return planCreateTable(*change.CreateTable)
	case change.DropTables != nil:
		return planDropTables(*change.DropTables)
	default:
		panic("ddl: SchemaChange has no intent set")
	}
}

func planCreateSchema(intent CreateSchema) SystemOperation {
	name := intent.SchemaName.String()
	steps := []Step{
		checkExistence(ObjectSchema, name),
		createFolder(name),
		createRecord(SchemaRecord(name)),
	}
	op := SystemOperation{
		Kind:  Kind{Action: ActionCreate, Object: ObjectSchema},
		Steps: [][]Step{steps},
	}
	if intent.IfNotExists {
		state := StateExists
		op.SkipStepsIf = &state
	}
	op.PlanID = uuid.NewString()
	return op
}

func planDropSchemas(intent DropSchemas) SystemOperation {
	var steps [][]Step
	for _, schemaName := range intent.SchemaNames {
		name := schemaName.String()
		forSchema := []Step{checkExistence(ObjectSchema, name)}
		if intent.Cascade {
			forSchema = append(forSchema, removeDependants(ObjectSchema, name))
		} else {
			forSchema = append(forSchema, checkDependants(ObjectSchema, name))
		}
		forSchema = append(forSchema,
			removeRecord(SchemaRecord(name)),
			removeFolder(name, !intent.Cascade),
		)
		steps = append(steps, forSchema)
	}
	op := SystemOperation{
		Kind:  Kind{Action: ActionDrop, Object: ObjectSchema},
		Steps: steps,
	}
	if intent.IfExists {
		state := StateNotExists
		op.SkipStepsIf = &state
	}
	op.PlanID = uuid.NewString()
	return op
}

func planCreateTable(intent CreateTable) SystemOperation {
	schemaName := intent.FullTableName.Schema()
	tableName := intent.FullTableName.Table()
	steps := []Step{
		checkExistence(ObjectSchema, schemaName),
		checkExistence(ObjectTable, schemaName, tableName),
		createFile(schemaName, tableName),
		createRecord(TableRecord(schemaName, tableName)),
	}
	for _, col := range intent.Columns {
		steps = append(steps, createRecord(ColumnRecord(schemaName, tableName, col.Name(), col.SqlType())))
	}
	op := SystemOperation{
		Kind:  Kind{Action: ActionCreate, Object: ObjectTable},
		Steps: [][]Step{steps},
	}
	if intent.IfNotExists {
		state := StateExists
		op.SkipStepsIf = &state
	}
	op.PlanID = uuid.NewString()
	return op
}

func planDropTables(intent DropTables) SystemOperation {
	var steps [][]Step
	for _, fullName := range intent.FullTableNames {
		schemaName := fullName.Schema()
		tableName := fullName.Table()
		forTable := []Step{
			checkExistence(ObjectSchema, schemaName),
			checkExistence(ObjectTable, schemaName, tableName),
			removeColumns(schemaName, tableName),
			removeRecord(TableRecord(schemaName, tableName)),
			removeFile(schemaName, tableName),
		}
		steps = append(steps, forTable)
	}
	op := SystemOperation{
		Kind:  Kind{Action: ActionDrop, Object: ObjectTable},
		Steps: steps,
	}
	if intent.IfExists {
		state := StateNotExists
		op.SkipStepsIf = &state
	}
	op.PlanID = uuid.NewString()
	return op
}
