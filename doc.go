// Package aceql classifies statement parameters for a remote SQL server
// reached over HTTP.
//
// Every parameter of a prepared statement travels with a wire tag that tells
// the server how to read the value: INTEGER, REAL, BIT, VARCHAR, DATE, TIME,
// TIMESTAMP, or TYPE_NULL<n> for a null standing for the SQL type whose
// java.sql.Types code is n. aceql computes these tags from ordinary Go values.
//
// # Basic Usage
//
//	tag, err := aceql.SQLTypeOf(12.53) // "REAL"
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Nulls
//
// A null carries no type of its own, so it must name one. Any of these work:
//
//	aceql.Null(aceql.SQLNullTypeInteger) // "TYPE_NULL4"
//	(*int64)(nil)                        // "TYPE_NULL4"
//	sql.NullString{}                     // "TYPE_NULL12"
//	sql.Null[time.Time]{}                // "TYPE_NULL93"
//
// An untyped nil fails with ErrMissingNullTypeHint.
//
// # Precedence
//
// A bool is always BIT, never INTEGER. time.Time and civil.DateTime are
// TIMESTAMP even at midnight; only civil.Date is DATE.
//
// # Statement Parameters
//
// ParameterBuilder turns a parameter list into the param_type_<i> and
// param_value_<i> form fields sent with the statement:
//
//	params, err := aceql.NewParameterBuilder().
//	    Add("Smith").
//	    AddNull(aceql.SQLNullTypeDate).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	body := params.Encode()
//
// Rows of an Apache Arrow record can be bound with ValuesFromArrowRecord.
//
// Classification is pure and safe for concurrent use.
package aceql
