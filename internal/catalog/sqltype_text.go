package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlcore/sqlcore/internal/types"
)

// parseRenderedSqlType is the inverse of SqlType.String, used to read back
// a Snapshot serialized by MarshalJSON.
func parseRenderedSqlType(rendered string) (types.SqlType, error) {
	switch rendered {
	case "bool":
		return types.Bool(), nil
	case "smallint":
		return types.SmallIntType(), nil
	case "integer":
		return types.IntegerType(), nil
	case "bigint":
		return types.BigIntType(), nil
	case "real":
		return types.RealType(), nil
	case "double precision":
		return types.DoubleType(), nil
	}

	if strings.HasPrefix(rendered, "char(") {
		return parseLengthedType(rendered, "char(", types.Char)
	}
	if strings.HasPrefix(rendered, "varchar(") {
		return parseLengthedType(rendered, "varchar(", types.VarChar)
	}
	return types.SqlType{}, fmt.Errorf("unrecognized rendered SQL type %q", rendered)
}

func parseLengthedType(rendered, prefix string, build func(uint64) types.SqlType) (types.SqlType, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(rendered, prefix), ")")
	length, err := strconv.ParseUint(inner, 10, 64)
	if err != nil {
		return types.SqlType{}, fmt.Errorf("invalid length in %q: %w", rendered, err)
	}
	return build(length), nil
}
