package aceql

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/nao1215/aceql/domain/model"
)

// SQLNullType is the SQL type a null parameter stands for.
type SQLNullType = model.SQLNullType

// SQLType is the wire tag sent with a statement parameter.
type SQLType = model.SQLType

// Value is a statement parameter ready to be classified.
type Value = model.Value

// SQLNullType values accepted by Null.
const (
	SQLNullTypeChar          = model.SQLNullTypeChar
	SQLNullTypeVarchar       = model.SQLNullTypeVarchar
	SQLNullTypeLongVarchar   = model.SQLNullTypeLongVarchar
	SQLNullTypeBit           = model.SQLNullTypeBit
	SQLNullTypeNumeric       = model.SQLNullTypeNumeric
	SQLNullTypeDecimal       = model.SQLNullTypeDecimal
	SQLNullTypeTinyint       = model.SQLNullTypeTinyint
	SQLNullTypeSmallint      = model.SQLNullTypeSmallint
	SQLNullTypeInteger       = model.SQLNullTypeInteger
	SQLNullTypeBigint        = model.SQLNullTypeBigint
	SQLNullTypeReal          = model.SQLNullTypeReal
	SQLNullTypeFloat         = model.SQLNullTypeFloat
	SQLNullTypeDouble        = model.SQLNullTypeDouble
	SQLNullTypeDate          = model.SQLNullTypeDate
	SQLNullTypeTime          = model.SQLNullTypeTime
	SQLNullTypeTimestamp     = model.SQLNullTypeTimestamp
	SQLNullTypeBinary        = model.SQLNullTypeBinary
	SQLNullTypeVarbinary     = model.SQLNullTypeVarbinary
	SQLNullTypeLongVarbinary = model.SQLNullTypeLongVarbinary
	SQLNullTypeBlob          = model.SQLNullTypeBlob
	SQLNullTypeClob          = model.SQLNullTypeClob
)

// Null returns a null parameter standing for a value of type nt.
//
//	tag, _ := aceql.SQLTypeOf(aceql.Null(aceql.SQLNullTypeInteger)) // "TYPE_NULL4"
func Null(nt SQLNullType) Value {
	return model.Null{Type: nt}
}

// SQLTypeOf returns the wire tag of a Go value.
//
// See ValueOf for the accepted values. Integral numbers are INTEGER,
// floating-point numbers REAL, booleans BIT (never INTEGER), strings
// VARCHAR, time.Time and civil.DateTime TIMESTAMP, civil.Date DATE and
// civil.Time TIME. A null needs a hint: use Null, a nil typed pointer or
// one of the database/sql Null wrappers.
func SQLTypeOf(v any) (SQLType, error) {
	value, err := ValueOf(v)
	if err != nil {
		return "", err
	}
	return model.Classify(value)
}

// ValueOf converts a Go value into a Value.
//
// Checks are ordered so that a bool never becomes an Integer and a
// civil.DateTime never becomes a Date:
//   - nil fails with ErrMissingNullTypeHint
//   - a Value is returned as is
//   - bool, then signed and unsigned integers, then float32 and float64
//   - string
//   - time.Time and civil.DateTime, then civil.Date, then civil.Time
//   - sql.NullBool, sql.NullInt64 and the other database/sql Null wrappers,
//     including sql.Null[T]; an invalid wrapper is a null typed after its
//     wrapped type
//   - a nil pointer is a null typed after its element type, a non-nil
//     pointer is dereferenced
//   - any other driver.Valuer is converted through its Value method,
//     including one declared on a pointer receiver; a nil pointer to such a
//     type is a null typed after what Value reports for the zero value
//   - named types with a bool, integer, float or string underlying type
//
// An out-of-range civil.Date, civil.Time or civil.DateTime fails with
// ErrInvalidValue. Anything else fails with ErrUnsupportedType.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return nil, ErrMissingNullTypeHint
	case model.Value:
		return v, nil
	case bool:
		return model.Bit(v), nil
	case int:
		return model.Integer(v), nil
	case int8:
		return model.Integer(v), nil
	case int16:
		return model.Integer(v), nil
	case int32:
		return model.Integer(v), nil
	case int64:
		return model.Integer(v), nil
	case uint:
		return unsignedValue(uint64(v))
	case uint8:
		return model.Integer(v), nil
	case uint16:
		return model.Integer(v), nil
	case uint32:
		return model.Integer(v), nil
	case uint64:
		return unsignedValue(v)
	case float32:
		return model.Real(v), nil
	case float64:
		return model.Real(v), nil
	case string:
		return model.Varchar(v), nil
	case time.Time:
		return model.Timestamp(v), nil
	case civil.DateTime:
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: civil.DateTime %s", ErrInvalidValue, v)
		}
		return model.Timestamp(v.In(time.UTC)), nil
	case civil.Date:
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: civil.Date %s", ErrInvalidValue, v)
		}
		return model.Date(v), nil
	case civil.Time:
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: civil.Time %s", ErrInvalidValue, v)
		}
		return model.Time(v), nil
	case sql.NullBool:
		return nullable(v.Valid, v.Bool, model.SQLNullTypeBit)
	case sql.NullByte:
		return nullable(v.Valid, v.Byte, model.SQLNullTypeInteger)
	case sql.NullInt16:
		return nullable(v.Valid, v.Int16, model.SQLNullTypeInteger)
	case sql.NullInt32:
		return nullable(v.Valid, v.Int32, model.SQLNullTypeInteger)
	case sql.NullInt64:
		return nullable(v.Valid, v.Int64, model.SQLNullTypeInteger)
	case sql.NullFloat64:
		return nullable(v.Valid, v.Float64, model.SQLNullTypeReal)
	case sql.NullString:
		return nullable(v.Valid, v.String, model.SQLNullTypeVarchar)
	case sql.NullTime:
		return nullable(v.Valid, v.Time, model.SQLNullTypeTimestamp)
	}
	return reflectValueOf(v)
}

// nullable converts a database/sql Null wrapper.
func nullable(valid bool, v any, nt model.SQLNullType) (Value, error) {
	if !valid {
		return model.Null{Type: nt}, nil
	}
	return ValueOf(v)
}

func unsignedValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("%w: uint64 %d overflows INTEGER", ErrUnsupportedType, u)
	}
	return model.Integer(u), nil
}

func reflectValueOf(v any) (Value, error) {
	rv := reflect.ValueOf(v)

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nullOf(rv.Type().Elem())
		}
		// Value declared on the pointer receiver is lost by dereferencing.
		if !rv.Type().Elem().Implements(valuerType) {
			if valuer, ok := v.(driver.Valuer); ok {
				return valuerValueOf(valuer)
			}
		}
		return ValueOf(rv.Elem().Interface())
	}

	if isGenericSQLNull(rv.Type()) {
		if rv.FieldByName("Valid").Bool() {
			return ValueOf(rv.FieldByName("V").Interface())
		}
		field, _ := rv.Type().FieldByName("V")
		return nullOf(field.Type)
	}

	if valuer, ok := v.(driver.Valuer); ok {
		return valuerValueOf(valuer)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return model.Bit(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return model.Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return unsignedValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return model.Real(rv.Float()), nil
	case reflect.String:
		return model.Varchar(rv.String()), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

var valuerType = reflect.TypeFor[driver.Valuer]()

func valuerValueOf(valuer driver.Valuer) (Value, error) {
	dv, err := valuer.Value()
	if err != nil {
		return nil, fmt.Errorf("%T: %w", valuer, err)
	}
	if dv == nil {
		return nil, fmt.Errorf("%w: %T returned nil", ErrMissingNullTypeHint, valuer)
	}
	if _, again := dv.(driver.Valuer); again {
		return nil, fmt.Errorf("%w: %T returned %T", ErrUnsupportedType, valuer, dv)
	}
	return ValueOf(dv)
}

// isGenericSQLNull reports whether t is an instance of sql.Null[T].
func isGenericSQLNull(t reflect.Type) bool {
	return t.Kind() == reflect.Struct &&
		t.PkgPath() == "database/sql" &&
		strings.HasPrefix(t.Name(), "Null[")
}

// nullOf returns the null bound in place of a missing value of type t.
// It carries the SQL type a present value of t would have.
func nullOf(t reflect.Type) (Value, error) {
	sample := reflect.Zero(t)
	if !t.Implements(valuerType) && reflect.PointerTo(t).Implements(valuerType) {
		sample = reflect.New(t)
	}
	zero, err := ValueOf(sample.Interface())
	if err != nil {
		return nil, err
	}
	if null, ok := zero.(model.Null); ok {
		return null, nil
	}
	tag, err := model.Classify(zero)
	if err != nil {
		return nil, err
	}
	nt, err := tag.NullType()
	if err != nil {
		return nil, err
	}
	return model.Null{Type: nt}, nil
}
