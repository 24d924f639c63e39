package model

import (
	"fmt"
	"strings"
)

// SQLType is the wire tag sent with a statement parameter.
// It tells the server how to interpret the accompanying value.
type SQLType string

const (
	// SQLTypeBit is the wire tag of a boolean parameter
	SQLTypeBit SQLType = "BIT"
	// SQLTypeInteger is the wire tag of an integral parameter
	SQLTypeInteger SQLType = "INTEGER"
	// SQLTypeReal is the wire tag of a floating-point parameter
	SQLTypeReal SQLType = "REAL"
	// SQLTypeVarchar is the wire tag of a text parameter
	SQLTypeVarchar SQLType = "VARCHAR"
	// SQLTypeDate is the wire tag of a calendar date parameter
	SQLTypeDate SQLType = "DATE"
	// SQLTypeTime is the wire tag of a time-of-day parameter
	SQLTypeTime SQLType = "TIME"
	// SQLTypeTimestamp is the wire tag of a date and time parameter
	SQLTypeTimestamp SQLType = "TIMESTAMP"
)

// nullTypePrefix prefixes the numeric code of a typed null.
const nullTypePrefix = "TYPE_NULL"

// String returns the wire tag.
func (t SQLType) String() string {
	return string(t)
}

// IsNull reports whether t is the wire tag of a typed null.
func (t SQLType) IsNull() bool {
	return len(t) > len(nullTypePrefix) && strings.HasPrefix(string(t), nullTypePrefix)
}

// NullType returns the SQLNullType of a null bound in place of a value tagged t.
func (t SQLType) NullType() (SQLNullType, error) {
	switch t {
	case SQLTypeBit:
		return SQLNullTypeBit, nil
	case SQLTypeInteger:
		return SQLNullTypeInteger, nil
	case SQLTypeReal:
		return SQLNullTypeReal, nil
	case SQLTypeVarchar:
		return SQLNullTypeVarchar, nil
	case SQLTypeDate:
		return SQLNullTypeDate, nil
	case SQLTypeTime:
		return SQLNullTypeTime, nil
	case SQLTypeTimestamp:
		return SQLNullTypeTimestamp, nil
	}
	if t.IsNull() {
		nt, err := ParseSQLNullType(string(t[len(nullTypePrefix):]))
		if err != nil {
			return 0, err
		}
		return nt, nil
	}
	return 0, fmt.Errorf("%w: wire type %q", ErrUnsupportedType, string(t))
}
