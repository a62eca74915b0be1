package filterexpr

import (
	"errors"
	"fmt"
	"time"

	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// literalOf decodes a constant, a list of string constants or a timestamp('...') call.
func literalOf(e *exprpb.Expr) (any, error) {
	if c := e.GetConstExpr(); c != nil {
		switch c.GetConstantKind().(type) {
		case *exprpb.Constant_StringValue:
			return c.GetStringValue(), nil
		case *exprpb.Constant_BoolValue:
			return c.GetBoolValue(), nil
		case *exprpb.Constant_Int64Value:
			return c.GetInt64Value(), nil
		case *exprpb.Constant_DoubleValue:
			return c.GetDoubleValue(), nil
		default:
			return nil, fmt.Errorf("literal %T is not supported", c.GetConstantKind())
		}
	}

	if list := e.GetListExpr(); list != nil {
		out := make([]string, 0, len(list.GetElements()))
		for i, elem := range list.GetElements() {
			v, err := literalOf(elem)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			s, ok := v.(string)
			if !ok {
				return nil, errors.New("list literal elements must be strings")
			}
			out = append(out, s)
		}
		return out, nil
	}

	if call := e.GetCallExpr(); call != nil && call.GetFunction() == "timestamp" {
		args := call.GetArgs()
		if call.GetTarget() != nil || len(args) != 1 || args[0].GetConstExpr() == nil {
			return nil, errors.New("timestamp() expects one string literal")
		}
		raw := args[0].GetConstExpr().GetStringValue()
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("timestamp literal %q is not RFC3339", raw)
		}
		return t, nil
	}

	return nil, errors.New("right-hand side must be a literal, a list literal or a timestamp() call")
}

func checkLiteral(kind Kind, op Op, v any) error {
	switch kind {
	case KindString:
		if op == OpIN {
			list, ok := v.([]string)
			if !ok || len(list) == 0 {
				return errors.New("expected a non-empty list of strings")
			}
			for _, s := range list {
				if s == "" {
					return errors.New("list literal must not contain empty strings")
				}
			}
			return nil
		}
		if _, ok := v.(string); !ok {
			return errors.New("expected string literal")
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return errors.New("expected bool literal")
		}
	case KindTimestamp:
		if _, ok := v.(time.Time); !ok {
			return errors.New("expected timestamp literal")
		}
	default:
		return fmt.Errorf("unsupported kind %q", kind)
	}
	return nil
}
