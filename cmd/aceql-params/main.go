// Command aceql-params prints the wire form of a list of statement parameters.
//
// Parameters are read as a JSON array from stdin or from the --input file.
// Input files may be gzip, bzip2, xz or zstd compressed (.gz, .bz2, .xz, .zst).
// A .xlsx input file binds one spreadsheet row instead (see --sheet and --row).
// Scalars map directly: true/false to
// BIT, integral numbers to INTEGER, other numbers to REAL, strings to VARCHAR.
// Typed values and nulls are written as single-key objects:
//
//	[1, 12.53, true, "text",
//	 {"timestamp": "2017-10-31T10:30:00Z"},
//	 {"date": "2017-10-31"},
//	 {"time": "13:05:00"},
//	 {"null": "INTEGER"}]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/nao1215/aceql"
	"github.com/nao1215/aceql/domain/model"
)

type option struct {
	Input     string       `description:"specify the .json or .xlsx file to read, optionally compressed. if not specified, JSON is read from stdin" long:"input" short:"i"`
	Sheet     string       `description:"specify the sheet of a .xlsx input. defaults to the first sheet" long:"sheet"`
	Row       int          `description:"specify the 1-based row of a .xlsx input" long:"row" default:"1"`
	Format    outputFormat `description:"specify the output format (form/json)" long:"format" default:"form"`
	LogLevel  logLevel     `description:"specify the log level (debug/info/warn/error)" long:"log-level" default:"error"`
	LogFormat logFormat    `description:"specify the log format (console/json)" long:"log-format" default:"console"`
	Version   bool         `description:"print version" long:"version" short:"v"`
}

type exitCode int

const (
	exitOK    exitCode = 0
	exitError exitCode = 1
)

var (
	version  string
	revision string
)

var errInvalidParameter = errors.New("invalid parameter")

func main() {
	os.Exit(int(run()))
}

func run() exitCode {
	opt, err := parseOpt(os.Args[1:])
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "[aceql-params] unknown parsed option error: %[1]T %[1]v\n", err)
			return exitError
		}
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}
	if err := runParams(opt, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitOK
}

func parseOpt(args []string) (option, error) {
	var opt option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	return opt, err
}

func runParams(opt option, stdin io.Reader, stdout io.Writer) error {
	if opt.Version {
		fmt.Fprintf(stdout, "version: %s (%s)\n", version, revision)
		return nil
	}

	logger, err := newLogger(opt.LogLevel, opt.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	values, err := readInput(opt, stdin)
	if err != nil {
		return err
	}
	logger.Info("decoded parameters", zap.Int("count", len(values)))

	params, err := aceql.NewParameterBuilder().
		WithLogger(logger).
		AddValues(values...).
		Build()
	if err != nil {
		return err
	}

	switch opt.Format {
	case formatJSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(params.All())
	default:
		_, err := fmt.Fprintln(stdout, params.Encode())
		return err
	}
}

// decodeParameters reads a JSON array of parameters.
func decodeParameters(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}

	values := make([]any, 0, len(raw))
	for i, r := range raw {
		v, err := decodeParameter(r)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i+1, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func decodeParameter(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		// left to the builder, which reports the missing null type hint
		return nil, nil
	case bool, string:
		return v, nil
	case json.Number:
		return decodeNumber(v.String())
	case map[string]any:
		return decodeTyped(v)
	default:
		return nil, fmt.Errorf("%w: %T", errInvalidParameter, raw)
	}
}

// decodeNumber maps an integral literal to int64 and any other to float64.
// Integral literals outside the int64 range are rejected instead of being
// bound as a REAL.
func decodeNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, fmt.Errorf("%w: integer %s overflows INTEGER", aceql.ErrUnsupportedType, s)
			}
			return nil, fmt.Errorf("%w: number %s", errInvalidParameter, s)
		}
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %s", errInvalidParameter, s)
	}
	return f, nil
}

func decodeTyped(obj map[string]any) (any, error) {
	if len(obj) != 1 {
		return nil, fmt.Errorf("%w: object must have exactly one key", errInvalidParameter)
	}
	for key, raw := range obj {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be a string", errInvalidParameter, key)
		}
		switch key {
		case "null":
			nt, err := model.ParseSQLNullType(s)
			if err != nil {
				return nil, err
			}
			return aceql.Null(nt), nil
		case "timestamp":
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errInvalidParameter, err)
			}
			return t, nil
		case "date":
			d, err := civil.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errInvalidParameter, err)
			}
			return d, nil
		case "time":
			t, err := civil.ParseTime(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errInvalidParameter, err)
			}
			return t, nil
		default:
			return nil, fmt.Errorf("%w: unknown key %q", errInvalidParameter, key)
		}
	}
	return nil, nil
}

type outputFormat string

const (
	formatForm outputFormat = "form"
	formatJSON outputFormat = "json"
)

// UnmarshalFlag implements flags.Unmarshaler.
func (f *outputFormat) UnmarshalFlag(value string) error {
	switch outputFormat(value) {
	case formatForm, formatJSON:
		*f = outputFormat(value)
		return nil
	}
	return fmt.Errorf("unexpected output format %s", value)
}
