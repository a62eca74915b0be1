package filterexpr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sort is one order_by key.
type Sort struct {
	Key  string
	Desc bool
}

// Order is the parsed order_by clause: the primary key followed by a tie-breaker.
type Order []Sort

// Ordering whitelists order keys and names the defaults.
type Ordering struct {
	Keys     []string
	Default  Sort
	Fallback Sort
}

// Parse reads "key [asc|desc][, key [asc|desc]]". Missing keys are filled from the defaults,
// so the result always holds two distinct keys.
func (o Ordering) Parse(raw string) (Order, error) {
	if !slices.Contains(o.Keys, o.Default.Key) || !slices.Contains(o.Keys, o.Fallback.Key) {
		return nil, errors.New("default and fallback keys must be listed")
	}
	if o.Default.Key == o.Fallback.Key {
		return nil, errors.New("default and fallback keys must differ")
	}

	var out Order
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > 2 {
			return nil, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}
		s := Sort{Key: parts[0]}
		if !slices.Contains(o.Keys, s.Key) {
			return nil, fmt.Errorf("field %q cannot be used for ordering", s.Key)
		}
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				s.Desc = true
			default:
				return nil, fmt.Errorf("invalid direction %q for field %q", parts[1], s.Key)
			}
		}
		if slices.ContainsFunc(out, func(x Sort) bool { return x.Key == s.Key }) {
			return nil, fmt.Errorf("duplicate order key %q", s.Key)
		}
		out = append(out, s)
	}

	switch len(out) {
	case 0:
		return Order{o.Default, o.Fallback}, nil
	case 1:
		if out[0].Key == o.Fallback.Key {
			return append(out, Sort{Key: o.Default.Key}), nil
		}
		return append(out, o.Fallback), nil
	case 2:
		return out, nil
	default:
		return nil, errors.New("order_by supports at most two keys")
	}
}
