package aceql

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/aceql/domain/model"
)

type (
	userID   int64
	flag     bool
	ratio    float32
	nickname string
	rgb      struct{ r, g, b uint8 }
)

// status is stored as its text label.
type status int

func (s status) Value() (driver.Value, error) {
	switch s {
	case 0:
		return "inactive", nil
	case 1:
		return "active", nil
	case 2:
		return nil, nil
	default:
		return nil, errors.New("invalid status")
	}
}

// money is stored as its amount in cents.
type money struct {
	cents int64
}

func (m *money) Value() (driver.Value, error) {
	return m.cents, nil
}

func ptr[T any](v T) *T {
	return &v
}

func TestSQLTypeOf(t *testing.T) {
	t.Parallel()

	date := civil.Date{Year: 2017, Month: time.October, Day: 31}

	tests := []struct {
		name     string
		value    any
		expected SQLType
	}{
		// Reference scenarios for the wire protocol.
		{name: "null integer", value: Null(SQLNullTypeInteger), expected: "TYPE_NULL4"},
		{name: "integer", value: 1, expected: model.SQLTypeInteger},
		{name: "real", value: 12.53, expected: model.SQLTypeReal},
		{name: "bool", value: true, expected: model.SQLTypeBit},
		{name: "text", value: "text", expected: model.SQLTypeVarchar},
		{name: "now", value: time.Now(), expected: model.SQLTypeTimestamp},
		{name: "date", value: date, expected: model.SQLTypeDate},

		{name: "false is BIT not INTEGER", value: false, expected: model.SQLTypeBit},
		{name: "int8", value: int8(-1), expected: model.SQLTypeInteger},
		{name: "int16", value: int16(300), expected: model.SQLTypeInteger},
		{name: "int32", value: int32(1), expected: model.SQLTypeInteger},
		{name: "int64", value: int64(math.MaxInt64), expected: model.SQLTypeInteger},
		{name: "uint", value: uint(0), expected: model.SQLTypeInteger},
		{name: "byte", value: byte(1), expected: model.SQLTypeInteger},
		{name: "uint16", value: uint16(1), expected: model.SQLTypeInteger},
		{name: "uint32", value: uint32(math.MaxUint32), expected: model.SQLTypeInteger},
		{name: "uint64 within range", value: uint64(math.MaxInt64), expected: model.SQLTypeInteger},
		{name: "float32", value: float32(0.5), expected: model.SQLTypeReal},
		{name: "whole float", value: 1.0, expected: model.SQLTypeReal},
		{name: "empty string", value: "", expected: model.SQLTypeVarchar},
		{
			name:     "timestamp at midnight",
			value:    time.Date(2017, 10, 31, 0, 0, 0, 0, time.UTC),
			expected: model.SQLTypeTimestamp,
		},
		{name: "civil datetime", value: civil.DateTime{Date: date}, expected: model.SQLTypeTimestamp},
		{name: "civil time", value: civil.Time{Hour: 8}, expected: model.SQLTypeTime},
		{name: "model value", value: model.Varchar("x"), expected: model.SQLTypeVarchar},
		{name: "null bit", value: Null(SQLNullTypeBit), expected: "TYPE_NULL-7"},

		{name: "named int", value: userID(7), expected: model.SQLTypeInteger},
		{name: "named bool", value: flag(true), expected: model.SQLTypeBit},
		{name: "named float", value: ratio(0.25), expected: model.SQLTypeReal},
		{name: "named string", value: nickname("bob"), expected: model.SQLTypeVarchar},
		{name: "duration binds as nanoseconds", value: time.Second, expected: model.SQLTypeInteger},

		{name: "pointer to int", value: ptr(5), expected: model.SQLTypeInteger},
		{name: "pointer to bool", value: ptr(true), expected: model.SQLTypeBit},
		{name: "pointer to pointer", value: ptr(ptr("s")), expected: model.SQLTypeVarchar},
		{name: "nil int pointer", value: (*int)(nil), expected: "TYPE_NULL4"},
		{name: "nil bool pointer", value: (*bool)(nil), expected: "TYPE_NULL-7"},
		{name: "nil float pointer", value: (*float64)(nil), expected: "TYPE_NULL7"},
		{name: "nil string pointer", value: (*string)(nil), expected: "TYPE_NULL12"},
		{name: "nil time pointer", value: (*time.Time)(nil), expected: "TYPE_NULL93"},
		{name: "nil date pointer", value: (*civil.Date)(nil), expected: "TYPE_NULL91"},
		{name: "nil civil time pointer", value: (*civil.Time)(nil), expected: "TYPE_NULL92"},
		{name: "nil named pointer", value: (*userID)(nil), expected: "TYPE_NULL4"},
		{name: "pointer to nil pointer", value: ptr((*bool)(nil)), expected: "TYPE_NULL-7"},

		{name: "valid NullBool", value: sql.NullBool{Bool: true, Valid: true}, expected: model.SQLTypeBit},
		{name: "invalid NullBool", value: sql.NullBool{}, expected: "TYPE_NULL-7"},
		{name: "valid NullByte", value: sql.NullByte{Byte: 1, Valid: true}, expected: model.SQLTypeInteger},
		{name: "invalid NullByte", value: sql.NullByte{}, expected: "TYPE_NULL4"},
		{name: "invalid NullInt16", value: sql.NullInt16{}, expected: "TYPE_NULL4"},
		{name: "invalid NullInt32", value: sql.NullInt32{}, expected: "TYPE_NULL4"},
		{name: "valid NullInt64", value: sql.NullInt64{Int64: 3, Valid: true}, expected: model.SQLTypeInteger},
		{name: "invalid NullInt64", value: sql.NullInt64{}, expected: "TYPE_NULL4"},
		{name: "valid NullFloat64", value: sql.NullFloat64{Float64: 1, Valid: true}, expected: model.SQLTypeReal},
		{name: "invalid NullFloat64", value: sql.NullFloat64{}, expected: "TYPE_NULL7"},
		{name: "valid NullString", value: sql.NullString{String: "a", Valid: true}, expected: model.SQLTypeVarchar},
		{name: "invalid NullString", value: sql.NullString{}, expected: "TYPE_NULL12"},
		{name: "valid NullTime", value: sql.NullTime{Time: time.Now(), Valid: true}, expected: model.SQLTypeTimestamp},
		{name: "invalid NullTime", value: sql.NullTime{}, expected: "TYPE_NULL93"},
		{name: "nil NullInt64 pointer", value: (*sql.NullInt64)(nil), expected: "TYPE_NULL4"},

		{name: "valid generic Null", value: sql.Null[bool]{V: false, Valid: true}, expected: model.SQLTypeBit},
		{name: "invalid generic Null of bool", value: sql.Null[bool]{}, expected: "TYPE_NULL-7"},
		{name: "invalid generic Null of date", value: sql.Null[civil.Date]{}, expected: "TYPE_NULL91"},
		{name: "invalid generic Null of uint8", value: sql.Null[uint8]{}, expected: "TYPE_NULL4"},

		{name: "driver valuer", value: status(1), expected: model.SQLTypeVarchar},
		{name: "pointer receiver valuer", value: &money{cents: 500}, expected: model.SQLTypeInteger},
		{name: "nil pointer receiver valuer", value: (*money)(nil), expected: "TYPE_NULL4"},
		{name: "pointer to value receiver Null wrapper", value: &sql.NullInt64{}, expected: "TYPE_NULL4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SQLTypeOf(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSQLTypeOf_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		wantErr error
		message string
	}{
		{name: "untyped nil", value: nil, wantErr: ErrMissingNullTypeHint},
		{name: "nil interface pointer", value: (*any)(nil), wantErr: ErrMissingNullTypeHint},
		{name: "valuer returning nil", value: status(2), wantErr: ErrMissingNullTypeHint, message: "aceql.status"},
		{name: "unknown null hint", value: Null(SQLNullType(1000)), wantErr: ErrUnknownNullTypeHint},
		{name: "byte slice", value: []byte("abc"), wantErr: ErrUnsupportedType, message: "[]uint8"},
		{name: "struct", value: rgb{}, wantErr: ErrUnsupportedType, message: "aceql.rgb"},
		{name: "map", value: map[string]int{}, wantErr: ErrUnsupportedType},
		{name: "nil struct pointer", value: (*rgb)(nil), wantErr: ErrUnsupportedType},
		{name: "uint64 overflow", value: uint64(math.MaxUint64), wantErr: ErrUnsupportedType, message: "overflows"},
		{name: "complex", value: complex(1, 2), wantErr: ErrUnsupportedType, message: "complex128"},
		{name: "pointer receiver valuer dereferenced", value: money{cents: 1}, wantErr: ErrUnsupportedType},
		{
			name:    "february 30",
			value:   civil.Date{Year: 2017, Month: time.February, Day: 30},
			wantErr: ErrInvalidValue,
			message: "2017-02-30",
		},
		{name: "hour 25", value: civil.Time{Hour: 25}, wantErr: ErrInvalidValue},
		{
			name:    "invalid civil datetime",
			value:   civil.DateTime{Date: civil.Date{Year: 2017, Month: time.April, Day: 31}},
			wantErr: ErrInvalidValue,
		},
		{name: "invalid date behind pointer", value: ptr(civil.Date{Year: 2017, Month: 13, Day: 1}), wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SQLTypeOf(tt.value)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, got)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}

	t.Run("valuer error is wrapped", func(t *testing.T) {
		t.Parallel()

		_, err := SQLTypeOf(status(9))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid status")
	})
}

func TestSQLTypeOf_BoolNeverInteger(t *testing.T) {
	t.Parallel()

	for _, v := range []any{true, false, flag(true), ptr(false), sql.NullBool{Valid: true}} {
		got, err := SQLTypeOf(v)
		require.NoError(t, err)
		assert.Equal(t, model.SQLTypeBit, got, "%#v", v)
	}
}

func TestSQLTypeOf_DateNeverTimestamp(t *testing.T) {
	t.Parallel()

	for day := 1; day <= 31; day++ {
		d := civil.Date{Year: 2017, Month: time.October, Day: day}

		got, err := SQLTypeOf(d)
		require.NoError(t, err)
		assert.Equal(t, model.SQLTypeDate, got)

		got, err = SQLTypeOf(civil.DateTime{Date: d})
		require.NoError(t, err)
		assert.Equal(t, model.SQLTypeTimestamp, got)
	}
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	date := civil.Date{Year: 2017, Month: time.October, Day: 31}
	jst := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name     string
		value    any
		expected Value
	}{
		{name: "bool", value: true, expected: model.Bit(true)},
		{name: "int", value: 42, expected: model.Integer(42)},
		{name: "uint32", value: uint32(7), expected: model.Integer(7)},
		{name: "float32", value: float32(0.5), expected: model.Real(0.5)},
		{name: "string", value: "x", expected: model.Varchar("x")},
		{name: "date", value: date, expected: model.Date(date)},
		{
			name:     "civil datetime is read as UTC",
			value:    civil.DateTime{Date: date, Time: civil.Time{Hour: 10}},
			expected: model.Timestamp(time.Date(2017, 10, 31, 10, 0, 0, 0, time.UTC)),
		},
		{
			name:     "time keeps its location",
			value:    time.Date(2017, 10, 31, 10, 0, 0, 0, jst),
			expected: model.Timestamp(time.Date(2017, 10, 31, 10, 0, 0, 0, jst)),
		},
		{name: "named int", value: userID(9), expected: model.Integer(9)},
		{name: "pointer", value: ptr("p"), expected: model.Varchar("p")},
		{name: "nil pointer", value: (*float32)(nil), expected: model.Null{Type: SQLNullTypeReal}},
		{name: "valid NullInt32", value: sql.NullInt32{Int32: 5, Valid: true}, expected: model.Integer(5)},
		{name: "valuer", value: status(0), expected: model.Varchar("inactive")},
		{name: "pointer receiver valuer", value: &money{cents: 1250}, expected: model.Integer(1250)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValueOf(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
