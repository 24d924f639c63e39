package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// SQLNullType is the SQL type a null parameter stands for.
// A null carries no type of its own, so the caller names one.
// The numeric codes are the java.sql.Types codes the server expects;
// they are sent verbatim and must never be renumbered.
type SQLNullType int

const (
	// SQLNullTypeChar represents CHAR
	SQLNullTypeChar SQLNullType = 1
	// SQLNullTypeVarchar represents VARCHAR
	SQLNullTypeVarchar SQLNullType = 12
	// SQLNullTypeLongVarchar represents LONGVARCHAR
	SQLNullTypeLongVarchar SQLNullType = -1
	// SQLNullTypeBit represents BIT
	SQLNullTypeBit SQLNullType = -7
	// SQLNullTypeNumeric represents NUMERIC
	SQLNullTypeNumeric SQLNullType = 2
	// SQLNullTypeDecimal represents DECIMAL
	SQLNullTypeDecimal SQLNullType = 3
	// SQLNullTypeTinyint represents TINYINT
	SQLNullTypeTinyint SQLNullType = -6
	// SQLNullTypeSmallint represents SMALLINT
	SQLNullTypeSmallint SQLNullType = 5
	// SQLNullTypeInteger represents INTEGER
	SQLNullTypeInteger SQLNullType = 4
	// SQLNullTypeBigint represents BIGINT
	SQLNullTypeBigint SQLNullType = -5
	// SQLNullTypeReal represents REAL
	SQLNullTypeReal SQLNullType = 7
	// SQLNullTypeFloat represents FLOAT
	SQLNullTypeFloat SQLNullType = 6
	// SQLNullTypeDouble represents DOUBLE
	SQLNullTypeDouble SQLNullType = 8
	// SQLNullTypeDate represents DATE
	SQLNullTypeDate SQLNullType = 91
	// SQLNullTypeTime represents TIME
	SQLNullTypeTime SQLNullType = 92
	// SQLNullTypeTimestamp represents TIMESTAMP
	SQLNullTypeTimestamp SQLNullType = 93
	// SQLNullTypeBinary represents BINARY
	SQLNullTypeBinary SQLNullType = -2
	// SQLNullTypeVarbinary represents VARBINARY
	SQLNullTypeVarbinary SQLNullType = -3
	// SQLNullTypeLongVarbinary represents LONGVARBINARY
	SQLNullTypeLongVarbinary SQLNullType = -4
	// SQLNullTypeBlob represents BLOB
	SQLNullTypeBlob SQLNullType = 2004
	// SQLNullTypeClob represents CLOB
	SQLNullTypeClob SQLNullType = 2005
)

var sqlNullTypeNames = map[SQLNullType]string{
	SQLNullTypeChar:          "CHAR",
	SQLNullTypeVarchar:       "VARCHAR",
	SQLNullTypeLongVarchar:   "LONGVARCHAR",
	SQLNullTypeBit:           "BIT",
	SQLNullTypeNumeric:       "NUMERIC",
	SQLNullTypeDecimal:       "DECIMAL",
	SQLNullTypeTinyint:       "TINYINT",
	SQLNullTypeSmallint:      "SMALLINT",
	SQLNullTypeInteger:       "INTEGER",
	SQLNullTypeBigint:        "BIGINT",
	SQLNullTypeReal:          "REAL",
	SQLNullTypeFloat:         "FLOAT",
	SQLNullTypeDouble:        "DOUBLE",
	SQLNullTypeDate:          "DATE",
	SQLNullTypeTime:          "TIME",
	SQLNullTypeTimestamp:     "TIMESTAMP",
	SQLNullTypeBinary:        "BINARY",
	SQLNullTypeVarbinary:     "VARBINARY",
	SQLNullTypeLongVarbinary: "LONGVARBINARY",
	SQLNullTypeBlob:          "BLOB",
	SQLNullTypeClob:          "CLOB",
}

// SQLNullTypes returns every known SQLNullType ordered by code.
func SQLNullTypes() []SQLNullType {
	types := make([]SQLNullType, 0, len(sqlNullTypeNames))
	for nt := range sqlNullTypeNames {
		types = append(types, nt)
	}
	slices.Sort(types)
	return types
}

// IsValid reports whether nt is a known SQLNullType.
func (nt SQLNullType) IsValid() bool {
	_, ok := sqlNullTypeNames[nt]
	return ok
}

// String returns the SQL type name, e.g. "INTEGER".
func (nt SQLNullType) String() string {
	if name, ok := sqlNullTypeNames[nt]; ok {
		return name
	}
	return "SQLNullType(" + strconv.Itoa(int(nt)) + ")"
}

// SQLType returns the wire tag of a null of this type, e.g. "TYPE_NULL4".
func (nt SQLNullType) SQLType() (SQLType, error) {
	if !nt.IsValid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownNullTypeHint, int(nt))
	}
	return SQLType(nullTypePrefix + strconv.Itoa(int(nt))), nil
}

// ParseSQLNullType parses a SQL type name (case-insensitive) or a numeric code.
func ParseSQLNullType(s string) (SQLNullType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for nt, n := range sqlNullTypeNames {
		if n == name {
			return nt, nil
		}
	}
	if code, err := strconv.Atoi(name); err == nil && SQLNullType(code).IsValid() {
		return SQLNullType(code), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNullTypeHint, s)
}
