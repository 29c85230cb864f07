package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlcore/sqlcore/internal/types"
)

// ValidateIdentifier checks a schema, table or column name against an
// unqualified-identifier rule: letters, digits, and underscores, not
// starting with a digit.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	for i, ch := range name {
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
		isDigit := ch >= '0' && ch <= '9'
		if i == 0 && isDigit {
			return fmt.Errorf("name cannot start with a digit")
		}
		if !isLetter && !isDigit {
			return fmt.Errorf("name must contain only letters, digits, and underscores")
		}
	}
	return nil
}

// ValidateColumnType checks a typed-in type name against the type lattice,
// and - for varchar/char - its declared length.
func ValidateColumnType(typeName, lengthText string) (types.SqlType, error) {
	var length uint64
	if needsLength(typeName) {
		if strings.TrimSpace(lengthText) == "" {
			length = 255
		} else {
			n, err := strconv.ParseUint(lengthText, 10, 64)
			if err != nil || n == 0 {
				return types.SqlType{}, fmt.Errorf("length must be a positive integer")
			}
			length = n
		}
	}
	sqlType, err := types.FromDataTypeName(typeName, length)
	if err != nil {
		return types.SqlType{}, err
	}
	return sqlType, nil
}
