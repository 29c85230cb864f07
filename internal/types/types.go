// Package types implements the closed SQL type lattice shared by the DDL
// planner and the query analyzer: SqlType, SqlTypeFamily, and the family
// dominance rule used by operator resolution.
package types

import "fmt"

// StrKind distinguishes fixed-length CHAR from variable-length VARCHAR.
type StrKind int

const (
	StrConst StrKind = iota // CHAR(n)
	StrVar                  // VARCHAR(n)
)

// Num enumerates the numeric SqlType variants, ordered by width.
type Num int

const (
	SmallInt Num = iota
	Integer
	BigInt
	Real
	Double
)

// SqlType is a tagged union over Bool, Str{len,kind}, and Num.
//
// Zero value is Bool; use the constructors below to build the other
// variants rather than composing fields directly.
type SqlType struct {
	tag  sqlTag
	len  uint64
	kind StrKind
	num  Num
}

type sqlTag int

const (
	tagBool sqlTag = iota
	tagStr
	tagNum
)

func Bool() SqlType                { return SqlType{tag: tagBool} }
func Char(len uint64) SqlType      { return SqlType{tag: tagStr, len: len, kind: StrConst} }
func VarChar(len uint64) SqlType   { return SqlType{tag: tagStr, len: len, kind: StrVar} }
func SmallIntType() SqlType        { return SqlType{tag: tagNum, num: SmallInt} }
func IntegerType() SqlType         { return SqlType{tag: tagNum, num: Integer} }
func BigIntType() SqlType          { return SqlType{tag: tagNum, num: BigInt} }
func RealType() SqlType            { return SqlType{tag: tagNum, num: Real} }
func DoubleType() SqlType          { return SqlType{tag: tagNum, num: Double} }

// IsBool, IsStr, IsNum report the active tag.
func (t SqlType) IsBool() bool { return t.tag == tagBool }
func (t SqlType) IsStr() bool  { return t.tag == tagStr }
func (t SqlType) IsNum() bool  { return t.tag == tagNum }

// StrKind returns the string kind and true if t is a Str variant.
func (t SqlType) StrKind() (StrKind, bool) {
	if t.tag != tagStr {
		return 0, false
	}
	return t.kind, true
}

// NumKind returns the numeric variant and true if t is a Num variant.
func (t SqlType) NumKind() (Num, bool) {
	if t.tag != tagNum {
		return 0, false
	}
	return t.num, true
}

// CharsLen returns the declared length for Str variants, ok=false otherwise.
func (t SqlType) CharsLen() (uint64, bool) {
	if t.tag != tagStr {
		return 0, false
	}
	return t.len, true
}

// TypeID returns the stable identifier used by FromTypeID to round-trip t.
func (t SqlType) TypeID() uint64 {
	switch t.tag {
	case tagBool:
		return 0
	case tagStr:
		if t.kind == StrConst {
			return 1
		}
		return 2
	case tagNum:
		switch t.num {
		case SmallInt:
			return 3
		case Integer:
			return 4
		case BigInt:
			return 5
		case Real:
			return 6
		case Double:
			return 7
		}
	}
	panic(fmt.Sprintf("types: SqlType with unknown tag %d", t.tag))
}

// FromTypeID reverses TypeID; charsLen is ignored for non-string ids.
func FromTypeID(typeID uint64, charsLen uint64) SqlType {
	switch typeID {
	case 0:
		return Bool()
	case 1:
		return Char(charsLen)
	case 2:
		return VarChar(charsLen)
	case 3:
		return SmallIntType()
	case 4:
		return IntegerType()
	case 5:
		return BigIntType()
	case 6:
		return RealType()
	case 7:
		return DoubleType()
	default:
		panic(fmt.Sprintf("types: FromTypeID called with out-of-range id %d", typeID))
	}
}

// Family projects t onto its SqlTypeFamily. All integral Num variants
// collapse onto FamilyInteger; see SPEC_FULL.md's Open Question decision
// on why this collapse is kept rather than "fixed".
func (t SqlType) Family() SqlTypeFamily {
	switch t.tag {
	case tagBool:
		return FamilyBool
	case tagStr:
		return FamilyString
	case tagNum:
		switch t.num {
		case SmallInt, Integer, BigInt:
			return FamilyInteger
		case Real, Double:
			return FamilyReal
		}
	}
	panic(fmt.Sprintf("types: SqlType with unknown tag %d", t.tag))
}

// String renders t the way it would appear in a CREATE TABLE statement.
func (t SqlType) String() string {
	switch t.tag {
	case tagBool:
		return "bool"
	case tagStr:
		if t.kind == StrConst {
			return fmt.Sprintf("char(%d)", t.len)
		}
		return fmt.Sprintf("varchar(%d)", t.len)
	case tagNum:
		switch t.num {
		case SmallInt:
			return "smallint"
		case Integer:
			return "integer"
		case BigInt:
			return "bigint"
		case Real:
			return "real"
		case Double:
			return "double precision"
		}
	}
	return "unknown"
}

// NotSupportedType is returned by FromDataTypeName for data types outside
// the accepted DDL subset (SPEC_FULL.md §6).
type NotSupportedType struct {
	DataType string
}

func (e *NotSupportedType) Error() string {
	return fmt.Sprintf("type not supported: %s", e.DataType)
}

// FromDataTypeName maps a parsed column type name to a SqlType. len is the
// declared length for char/varchar and is ignored otherwise; 0 means
// "not specified" and defaults to 255 for char/varchar per SPEC_FULL.md §6.
func FromDataTypeName(name string, length uint64) (SqlType, error) {
	switch name {
	case "smallint", "int2":
		return SmallIntType(), nil
	case "int", "int4", "integer":
		return IntegerType(), nil
	case "bigint", "int8":
		return BigIntType(), nil
	case "bool", "boolean":
		return Bool(), nil
	case "char", "bpchar":
		if length == 0 {
			length = 255
		}
		return Char(length), nil
	case "varchar":
		if length == 0 {
			length = 255
		}
		return VarChar(length), nil
	default:
		return SqlType{}, &NotSupportedType{DataType: name}
	}
}

// PgType mirrors the wire-level type tags SqlType maps onto. Real and
// Double have no entry: see ToPgType.
type PgType int

const (
	PgBool PgType = iota
	PgChar
	PgVarChar
	PgSmallInt
	PgInteger
	PgBigInt
)

func (t PgType) String() string {
	switch t {
	case PgBool:
		return "bool"
	case PgChar:
		return "char"
	case PgVarChar:
		return "varchar"
	case PgSmallInt:
		return "int2"
	case PgInteger:
		return "int4"
	case PgBigInt:
		return "int8"
	default:
		return "unknown"
	}
}

// ToPgType maps t onto its wire-level PgType. The boolean return is false
// for Real/Double: no wire encoder in this repository consumes those yet,
// and SPEC_FULL.md's Open Question decision keeps that partiality explicit
// rather than papering over it with a made-up PgType.
func (t SqlType) ToPgType() (PgType, bool) {
	switch t.tag {
	case tagBool:
		return PgBool, true
	case tagStr:
		if t.kind == StrConst {
			return PgChar, true
		}
		return PgVarChar, true
	case tagNum:
		switch t.num {
		case SmallInt:
			return PgSmallInt, true
		case Integer:
			return PgInteger, true
		case BigInt:
			return PgBigInt, true
		case Real, Double:
			return 0, false
		}
	}
	return 0, false
}
