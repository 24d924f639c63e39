package aceql

import (
	"fmt"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"

	"github.com/nao1215/aceql/domain/model"
)

// NullTypeOfArrow returns the SQLNullType bound for a null cell of type dt.
// It matches the wire tag a non-null cell of the same column would carry.
func NullTypeOfArrow(dt arrow.DataType) (SQLNullType, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return model.SQLNullTypeBit, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return model.SQLNullTypeInteger, nil
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return model.SQLNullTypeReal, nil
	case arrow.STRING, arrow.LARGE_STRING:
		return model.SQLNullTypeVarchar, nil
	case arrow.DATE32, arrow.DATE64:
		return model.SQLNullTypeDate, nil
	case arrow.TIME32, arrow.TIME64:
		return model.SQLNullTypeTime, nil
	case arrow.TIMESTAMP:
		return model.SQLNullTypeTimestamp, nil
	case arrow.BINARY, arrow.LARGE_BINARY:
		return model.SQLNullTypeVarbinary, nil
	case arrow.DECIMAL128:
		return model.SQLNullTypeDecimal, nil
	default:
		return 0, fmt.Errorf("%w: arrow type %s", ErrUnsupportedType, dt)
	}
}

// ValuesFromArrowRecord returns one row of rec as statement parameters,
// in column order. Null cells become nulls typed after their column.
// BINARY and DECIMAL128 columns may only hold nulls.
func ValuesFromArrowRecord(rec arrow.Record, row int) ([]Value, error) {
	if row < 0 || int64(row) >= rec.NumRows() {
		return nil, NewErrorContext("read arrow row").
			WithDetails("row "+strconv.Itoa(row)+" of "+strconv.FormatInt(rec.NumRows(), 10)).
			Error(ErrRowOutOfRange)
	}

	values := make([]Value, 0, rec.NumCols())
	for i, col := range rec.Columns() {
		name := rec.ColumnName(i)
		v, err := arrowCell(col, row)
		if err != nil {
			return nil, NewErrorContext("read arrow row").WithIndex(i + 1).WithColumn(name).Error(err)
		}
		values = append(values, v)
	}
	return values, nil
}

func arrowCell(col arrow.Array, row int) (Value, error) {
	if col.IsNull(row) {
		nt, err := NullTypeOfArrow(col.DataType())
		if err != nil {
			return nil, err
		}
		return model.Null{Type: nt}, nil
	}

	switch a := col.(type) {
	case *array.Boolean:
		return model.Bit(a.Value(row)), nil
	case *array.Int8:
		return model.Integer(a.Value(row)), nil
	case *array.Int16:
		return model.Integer(a.Value(row)), nil
	case *array.Int32:
		return model.Integer(a.Value(row)), nil
	case *array.Int64:
		return model.Integer(a.Value(row)), nil
	case *array.Uint8:
		return model.Integer(a.Value(row)), nil
	case *array.Uint16:
		return model.Integer(a.Value(row)), nil
	case *array.Uint32:
		return model.Integer(a.Value(row)), nil
	case *array.Uint64:
		return unsignedValue(a.Value(row))
	case *array.Float16:
		return model.Real(a.Value(row).Float32()), nil
	case *array.Float32:
		return model.Real(a.Value(row)), nil
	case *array.Float64:
		return model.Real(a.Value(row)), nil
	case *array.String:
		return model.Varchar(a.Value(row)), nil
	case *array.LargeString:
		return model.Varchar(a.Value(row)), nil
	case *array.Date32:
		return model.Date(civil.DateOf(a.Value(row).ToTime())), nil
	case *array.Date64:
		return model.Date(civil.DateOf(a.Value(row).ToTime())), nil
	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit
		return model.Time(civil.TimeOf(a.Value(row).ToTime(unit))), nil
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit
		return model.Time(civil.TimeOf(a.Value(row).ToTime(unit))), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return model.Timestamp(a.Value(row).ToTime(unit)), nil
	default:
		return nil, fmt.Errorf("%w: arrow type %s", ErrUnsupportedType, col.DataType())
	}
}
