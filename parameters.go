package aceql

import (
	"errors"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/nao1215/aceql/domain/model"
)

const (
	// paramTypeKey prefixes the form field carrying a parameter's wire tag
	paramTypeKey = "param_type_"
	// paramValueKey prefixes the form field carrying a parameter's value text
	paramValueKey = "param_value_"
)

// ParameterBuilder collects the parameters of one prepared statement.
// Use NewParameterBuilder to create a new instance, then chain method calls
// to add parameters in statement order.
//
// The typical usage pattern is:
//
//	params, err := aceql.NewParameterBuilder().
//		Add("Smith").
//		Add(42).
//		AddNull(aceql.SQLNullTypeTimestamp).
//		Build()
//	if err != nil {
//		return err
//	}
//	form := params.Form() // param_type_1=VARCHAR&param_value_1=Smith&...
//
// A ParameterBuilder is not safe for concurrent use.
type ParameterBuilder struct {
	// values contains the parameters in statement order
	values []any
	// logger receives one debug entry per bound parameter
	logger *zap.Logger
}

// NewParameterBuilder creates an empty parameter builder.
func NewParameterBuilder() *ParameterBuilder {
	return &ParameterBuilder{
		values: make([]any, 0),
		logger: zap.NewNop(),
	}
}

// Add appends one parameter. Any value accepted by ValueOf may be used;
// errors are reported by Build.
//
// Returns the builder for method chaining.
func (b *ParameterBuilder) Add(v any) *ParameterBuilder {
	b.values = append(b.values, v)
	return b
}

// AddValues appends several parameters at once.
//
// Returns the builder for method chaining.
func (b *ParameterBuilder) AddValues(vs ...any) *ParameterBuilder {
	b.values = append(b.values, vs...)
	return b
}

// AddNull appends a null parameter standing for a value of type nt.
//
// Returns the builder for method chaining.
func (b *ParameterBuilder) AddNull(nt SQLNullType) *ParameterBuilder {
	return b.Add(Null(nt))
}

// WithLogger sets the logger used by Build. A nil logger disables logging.
//
// Returns the builder for method chaining.
func (b *ParameterBuilder) WithLogger(logger *zap.Logger) *ParameterBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger
	return b
}

// Build classifies every parameter and renders its value text.
// All failures are reported together; each names its 1-based position.
func (b *ParameterBuilder) Build() (*Parameters, error) {
	params := make([]Parameter, 0, len(b.values))
	var errs []error

	for i, v := range b.values {
		index := i + 1
		param, err := newParameter(index, v)
		if err != nil {
			errs = append(errs, NewErrorContext("bind").WithIndex(index).Error(err))
			continue
		}
		b.logger.Debug("bind parameter",
			zap.Int("index", index),
			zap.Stringer("type", param.Type),
		)
		params = append(params, param)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Parameters{params: params}, nil
}

// Parameter is one classified statement parameter.
type Parameter struct {
	// Index is the 1-based position in the statement
	Index int `json:"index"`
	// Type is the wire tag, e.g. "INTEGER" or "TYPE_NULL4"
	Type SQLType `json:"type"`
	// Value is the value text sent to the server
	Value string `json:"value"`
}

func newParameter(index int, v any) (Parameter, error) {
	value, err := ValueOf(v)
	if err != nil {
		return Parameter{}, err
	}
	tag, err := model.Classify(value)
	if err != nil {
		return Parameter{}, err
	}
	text, err := model.WireValue(value)
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Index: index, Type: tag, Value: text}, nil
}

// Parameters is the immutable result of ParameterBuilder.Build.
// It is safe for concurrent use.
type Parameters struct {
	params []Parameter
}

// Len returns the number of parameters.
func (p *Parameters) Len() int {
	return len(p.params)
}

// All returns a copy of the parameters in statement order.
func (p *Parameters) All() []Parameter {
	out := make([]Parameter, len(p.params))
	copy(out, p.params)
	return out
}

// Form returns the parameters as param_type_<i> and param_value_<i> fields.
func (p *Parameters) Form() url.Values {
	form := make(url.Values, 2*len(p.params))
	for _, param := range p.params {
		n := strconv.Itoa(param.Index)
		form.Set(paramTypeKey+n, param.Type.String())
		form.Set(paramValueKey+n, param.Value)
	}
	return form
}

// Encode returns Form in URL-encoded form, sorted by key.
func (p *Parameters) Encode() string {
	return p.Form().Encode()
}
