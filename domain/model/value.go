package model

import (
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

// Value is a statement parameter ready to be classified.
// The set of implementations is closed: Null, Bit, Integer, Real,
// Varchar, Timestamp, Date and Time.
type Value interface {
	value()
}

// Null is a null parameter together with the SQL type it stands for.
type Null struct {
	Type SQLNullType
}

// Bit is a boolean parameter.
type Bit bool

// Integer is an integral parameter.
type Integer int64

// Real is a floating-point parameter.
type Real float64

// Varchar is a text parameter.
type Varchar string

// Timestamp is a date and time parameter. A zero time of day is still a timestamp.
type Timestamp time.Time

// Date is a calendar date parameter without time of day.
type Date civil.Date

// Time is a time-of-day parameter without calendar date.
type Time civil.Time

func (Null) value()      {}
func (Bit) value()       {}
func (Integer) value()   {}
func (Real) value()      {}
func (Varchar) value()   {}
func (Timestamp) value() {}
func (Date) value()      {}
func (Time) value()      {}

// Classify returns the wire tag of v.
//
// The cases are ordered: a boolean is never reported as INTEGER and a
// timestamp is tested before a date. A nil v is a null with no type hint.
func Classify(v Value) (SQLType, error) {
	switch v := v.(type) {
	case nil:
		return "", ErrMissingNullTypeHint
	case Null:
		return v.Type.SQLType()
	case Bit:
		return SQLTypeBit, nil
	case Integer:
		return SQLTypeInteger, nil
	case Real:
		return SQLTypeReal, nil
	case Varchar:
		return SQLTypeVarchar, nil
	case Timestamp:
		return SQLTypeTimestamp, nil
	case Date:
		return SQLTypeDate, nil
	case Time:
		return SQLTypeTime, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// nullWireValue is the value text sent alongside a TYPE_NULL tag.
const nullWireValue = "NULL"

// WireValue returns the text sent as the parameter value.
// Temporal values are sent as milliseconds since the Unix epoch;
// dates and times of day are taken in UTC. An out-of-range Date or Time
// fails with ErrInvalidValue instead of being normalized.
func WireValue(v Value) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", ErrMissingNullTypeHint
	case Null:
		if _, err := v.Type.SQLType(); err != nil {
			return "", err
		}
		return nullWireValue, nil
	case Bit:
		return strconv.FormatBool(bool(v)), nil
	case Integer:
		return strconv.FormatInt(int64(v), 10), nil
	case Real:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), nil
	case Varchar:
		return string(v), nil
	case Timestamp:
		return strconv.FormatInt(time.Time(v).UnixMilli(), 10), nil
	case Date:
		if !civil.Date(v).IsValid() {
			return "", fmt.Errorf("%w: date %s", ErrInvalidValue, civil.Date(v))
		}
		return strconv.FormatInt(civil.Date(v).In(time.UTC).UnixMilli(), 10), nil
	case Time:
		if !civil.Time(v).IsValid() {
			return "", fmt.Errorf("%w: time %s", ErrInvalidValue, civil.Time(v))
		}
		epoch := civil.DateTime{
			Date: civil.Date{Year: 1970, Month: time.January, Day: 1},
			Time: civil.Time(v),
		}
		return strconv.FormatInt(epoch.In(time.UTC).UnixMilli(), 10), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}
