package filterexpr

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardParams struct {
	Deck         *string
	Learned      *bool
	Levels       []string
	FrontPrefix  *string
	CreatedAfter *time.Time
}

type request struct {
	filter  string
	orderBy string
}

func (r request) GetFilter() string  { return r.filter }
func (r request) GetOrderBy() string { return r.orderBy }

var cardSchema = Schema{
	Fields: map[string]Field{
		"deck":       {Kind: KindString, Ops: map[Op]string{OpEQ: "Deck"}},
		"learned":    {Kind: KindBool, Ops: map[Op]string{OpEQ: "Learned"}},
		"level":      {Kind: KindString, Ops: map[Op]string{OpIN: "Levels"}},
		"front":      {Kind: KindString, Ops: map[Op]string{OpSW: "FrontPrefix"}},
		"created_at": {Kind: KindTimestamp, Ops: map[Op]string{OpGTE: "CreatedAfter"}},
	},
	Order: Ordering{
		Keys:     []string{"created_at", "front", "id"},
		Default:  Sort{Key: "created_at", Desc: true},
		Fallback: Sort{Key: "id"},
	},
}

func TestBindConjunction(t *testing.T) {
	var params cardParams
	filter := "deck == 'verba' && learned == false && level in ['hard', 'medium'] && front.startsWith('am') && created_at >= timestamp('2025-01-01T00:00:00Z')"
	order, err := Bind(request{filter: filter}, &params, cardSchema)
	require.NoError(t, err)

	require.NotNil(t, params.Deck)
	assert.Equal(t, "verba", *params.Deck)
	require.NotNil(t, params.Learned)
	assert.False(t, *params.Learned)
	assert.Equal(t, []string{"hard", "medium"}, params.Levels)
	require.NotNil(t, params.FrontPrefix)
	assert.Equal(t, "am", *params.FrontPrefix)
	require.NotNil(t, params.CreatedAfter)
	assert.True(t, params.CreatedAfter.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Order{{Key: "created_at", Desc: true}, {Key: "id"}}, order)
}

func TestOrderingParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Order
	}{
		{"", Order{{Key: "created_at", Desc: true}, {Key: "id"}}},
		{"front", Order{{Key: "front"}, {Key: "id"}}},
		{"front asc, created_at DESC", Order{{Key: "front"}, {Key: "created_at", Desc: true}}},
		{"id desc", Order{{Key: "id", Desc: true}, {Key: "created_at"}}},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := cardSchema.Order.Parse(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		orderBy string
		want    string
	}{
		{"unsupported field", "unknown == 'x'", "", "not allowed"},
		{"unsupported operator", "deck >= 'a'", "", "operator"},
		{"bad bool literal", "learned == 'yes'", "", "expected bool"},
		{"or", "deck == 'a' || learned == true", "", "only AND"},
		{"negation", "!(learned == true)", "", "only AND"},
		{"non literal", "deck == front", "", "right-hand side"},
		{"list of numbers", "level in [1]", "", "list literal elements must be strings"},
		{"unknown order key", "", "meaning desc", "cannot be used for ordering"},
		{"bad direction", "", "front sideways", "invalid direction"},
		{"duplicate order key", "", "front, front desc", "duplicate"},
		{"three order keys", "", "front, id, created_at", "at most two"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var params cardParams
			_, err := Bind(request{filter: tc.filter, orderBy: tc.orderBy}, &params, cardSchema)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tc.want))
		})
	}
}

func TestBindNilBinding(t *testing.T) {
	var params *cardParams
	_, err := Bind(request{filter: "deck == 'a'"}, params, cardSchema)
	require.Error(t, err)
}
