// Package filterexpr binds a restricted CEL filter and an order_by clause onto a params struct.
//
// A filter is a conjunction of atomic predicates such as
//
//	keyword == 'aqua' && learned == false && difficulty in ['easy', 'hard'] && latin.startsWith('am')
//
// Each predicate names a whitelisted field, and the schema decides which params struct
// field receives the literal for a given operator.
package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Query exposes the raw filter and order_by inputs of a list request.
type Query interface {
	GetFilter() string
	GetOrderBy() string
}

// Kind is the literal kind a field accepts.
type Kind string

const (
	KindString    Kind = "string"
	KindBool      Kind = "bool"
	KindTimestamp Kind = "timestamp"
)

// Op is a supported comparison.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpIN  Op = "in"
	OpSW  Op = "startsWith"
)

// Setter assigns a validated literal to a params struct field.
type Setter func(field reflect.Value, value any) error

// Field maps the operators of one filter identifier to params struct field names.
type Field struct {
	Kind   Kind
	Ops    map[Op]string
	Setter Setter
}

// Schema whitelists the filter fields and order keys of a resource.
type Schema struct {
	Fields map[string]Field
	Order  Ordering
}

// Predicate is one comparison of the conjunction.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Bind fills dst from the filter of q and returns the parsed ordering.
// dst must be a non-nil pointer to a struct.
func Bind(q Query, dst any, schema Schema) (Order, error) {
	target, err := structOf(dst)
	if err != nil {
		return nil, err
	}
	preds, err := Parse(q.GetFilter(), schema.Fields)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	for _, p := range preds {
		if err := assign(target, p, schema.Fields[p.Field]); err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
	}
	order, err := schema.Order.Parse(q.GetOrderBy())
	if err != nil {
		return nil, fmt.Errorf("order_by: %w", err)
	}
	return order, nil
}

func structOf(dst any) (reflect.Value, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, errors.New("binding must be a non-nil pointer")
	}
	if rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, errors.New("binding must point to a struct")
	}
	return rv.Elem(), nil
}

// Parse checks filter against fields and splits it into validated predicates.
// An empty filter yields no predicates.
func Parse(filter string, fields map[string]Field) ([]Predicate, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	env, err := newEnv(fields)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("convert ast: %w", err)
	}

	var terms []*exprpb.Expr
	if err := flattenAnd(parsed.GetExpr(), &terms); err != nil {
		return nil, err
	}
	preds := make([]Predicate, 0, len(terms))
	for _, term := range terms {
		p, err := predicateOf(term)
		if err != nil {
			return nil, err
		}
		rule, ok := fields[p.Field]
		if !ok {
			return nil, fmt.Errorf("field %q is not allowed", p.Field)
		}
		if _, ok := rule.Ops[p.Op]; !ok {
			return nil, fmt.Errorf("operator %q is not allowed for field %q", p.Op, p.Field)
		}
		if err := checkLiteral(rule.Kind, p.Op, p.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", p.Field, err)
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func newEnv(fields map[string]Field) (*cel.Env, error) {
	if len(fields) == 0 {
		return nil, errors.New("schema has no filter fields")
	}
	opts := make([]cel.EnvOption, 0, len(fields))
	for name, f := range fields {
		var t *cel.Type
		switch f.Kind {
		case KindString:
			t = cel.StringType
		case KindBool:
			t = cel.BoolType
		case KindTimestamp:
			t = cel.TimestampType
		default:
			return nil, fmt.Errorf("field %q: unsupported kind %q", name, f.Kind)
		}
		opts = append(opts, cel.Variable(name, t))
	}
	return cel.NewEnv(opts...)
}

// flattenAnd collects the operands of nested && calls. The parser emits them as a binary tree.
func flattenAnd(e *exprpb.Expr, out *[]*exprpb.Expr) error {
	if e == nil {
		return errors.New("empty expression")
	}
	call := e.GetCallExpr()
	if call == nil {
		*out = append(*out, e)
		return nil
	}
	switch call.GetFunction() {
	case "_&&_":
		for _, arg := range call.GetArgs() {
			if err := flattenAnd(arg, out); err != nil {
				return err
			}
		}
		return nil
	case "_||_", "!_", "_?_:_":
		return fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.GetFunction())
	default:
		*out = append(*out, e)
		return nil
	}
}

func predicateOf(e *exprpb.Expr) (Predicate, error) {
	call := e.GetCallExpr()
	if call == nil {
		return Predicate{}, errors.New("expected a comparison or a function call")
	}
	var (
		op          Op
		ident, lit  *exprpb.Expr
		args        = call.GetArgs()
		hasReceiver = call.GetTarget() != nil
	)
	switch call.GetFunction() {
	case "_==_", "_>=_", "_<=_":
		op = Op(strings.Trim(call.GetFunction(), "_"))
		if len(args) != 2 {
			return Predicate{}, fmt.Errorf("operator %q expects two operands", op)
		}
		ident, lit = args[0], args[1]
	case "@in", "_in_":
		op = OpIN
		if len(args) != 2 {
			return Predicate{}, errors.New("in expects two operands")
		}
		ident, lit = args[0], args[1]
	case "startsWith":
		op = OpSW
		if !hasReceiver || len(args) != 1 {
			return Predicate{}, errors.New("startsWith must be called on a field with one argument")
		}
		ident, lit = call.GetTarget(), args[0]
	default:
		return Predicate{}, fmt.Errorf("function %q is not supported", call.GetFunction())
	}

	id := ident.GetIdentExpr()
	if id == nil {
		return Predicate{}, errors.New("left-hand side must be a field name")
	}
	value, err := literalOf(lit)
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Field: id.GetName(), Op: op, Value: value}, nil
}

func assign(target reflect.Value, p Predicate, rule Field) error {
	name := rule.Ops[p.Op]
	field := target.FieldByName(name)
	if !field.IsValid() || !field.CanSet() {
		return fmt.Errorf("params struct %s has no settable field %q", target.Type(), name)
	}
	if field.Kind() == reflect.Pointer && field.IsNil() {
		field.Set(reflect.New(field.Type().Elem()))
	}
	if rule.Setter != nil {
		return rule.Setter(field, p.Value)
	}
	if field.Kind() == reflect.Pointer {
		field = field.Elem()
	}
	val := reflect.ValueOf(p.Value)
	if !val.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("cannot assign %s to field %q of type %s", val.Type(), name, field.Type())
	}
	field.Set(val)
	return nil
}
