package usecase

import (
	"cmp"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/repository"
	"github.com/eslsoft/lingualatina/pkg/filterexpr"
)

type listWordsParams struct {
	Keyword       *string
	Learned       *bool
	Difficulties  []string
	PartsOfSpeech []string
	Tag           *string
	LatinPrefix   *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// appendStrings lets `==` and `in` share one slice destination.
func appendStrings(field reflect.Value, value any) error {
	switch v := value.(type) {
	case string:
		field.Set(reflect.Append(field, reflect.ValueOf(v)))
	case []string:
		field.Set(reflect.AppendSlice(field, reflect.ValueOf(v)))
	default:
		return fmt.Errorf("expected string or list of strings, got %T", value)
	}
	return nil
}

var listWordsSchema = filterexpr.Schema{
	Fields: map[string]filterexpr.Field{
		"keyword": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Keyword"},
		},
		"learned": {
			Kind: filterexpr.KindBool,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Learned"},
		},
		"difficulty": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Difficulties",
				filterexpr.OpIN: "Difficulties",
			},
			Setter: appendStrings,
		},
		"pos": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "PartsOfSpeech",
				filterexpr.OpIN: "PartsOfSpeech",
			},
			Setter: appendStrings,
		},
		"tag": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Tag"},
		},
		"latin": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "LatinPrefix"},
		},
		"created_at": {
			Kind: filterexpr.KindTimestamp,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "CreatedAfter",
				filterexpr.OpLTE: "CreatedBefore",
			},
		},
	},
	Order: filterexpr.Ordering{
		Keys:     []string{"created_at", "latin", "meaning", "difficulty", "id"},
		Default:  filterexpr.Sort{Key: "created_at", Desc: true},
		Fallback: filterexpr.Sort{Key: "id"},
	},
}

var wordComparators = map[string]func(a, b entity.Word) int{
	"created_at": func(a, b entity.Word) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) },
	"latin":      func(a, b entity.Word) int { return strings.Compare(entity.NormalizeToken(a.Latin), entity.NormalizeToken(b.Latin)) },
	"meaning":    func(a, b entity.Word) int { return strings.Compare(entity.NormalizeToken(a.Meaning), entity.NormalizeToken(b.Meaning)) },
	"difficulty": func(a, b entity.Word) int { return cmp.Compare(a.Difficulty.Rank(), b.Difficulty.Rank()) },
	"id":         func(a, b entity.Word) int { return strings.Compare(a.ID, b.ID) },
}

func (p *listWordsParams) match(w entity.Word) bool {
	if p.Keyword != nil {
		kw := entity.NormalizeToken(*p.Keyword)
		if kw != "" && !lo.SomeBy([]string{w.Latin, w.Meaning, w.Example}, func(s string) bool {
			return strings.Contains(strings.ToLower(s), kw)
		}) {
			return false
		}
	}
	if p.Learned != nil && w.Learned != *p.Learned {
		return false
	}
	if len(p.Difficulties) > 0 && !lo.Contains(p.Difficulties, string(w.Difficulty)) {
		return false
	}
	if len(p.PartsOfSpeech) > 0 && !lo.Contains(p.PartsOfSpeech, string(w.PartOfSpeech)) {
		return false
	}
	if p.Tag != nil && !w.HasTag(*p.Tag) {
		return false
	}
	if p.LatinPrefix != nil && !strings.HasPrefix(entity.NormalizeToken(w.Latin), entity.NormalizeToken(*p.LatinPrefix)) {
		return false
	}
	created := entity.MillisToTime(w.CreatedAt)
	if p.CreatedAfter != nil && created.Before(*p.CreatedAfter) {
		return false
	}
	if p.CreatedBefore != nil && created.After(*p.CreatedBefore) {
		return false
	}
	return true
}

func lessWords(order filterexpr.Order) func(a, b entity.Word) bool {
	return func(a, b entity.Word) bool {
		for _, key := range order {
			if c := wordComparators[key.Key](a, b); c != 0 {
				return (c < 0) != key.Desc
			}
		}
		return false
	}
}

// FilterWords applies the query filter, ordering and pagination to words.
// It returns the requested page and the number of matches before paging.
func FilterWords(words []entity.Word, query *repository.ListWordQuery) ([]entity.Word, int64, error) {
	if query == nil {
		query = &repository.ListWordQuery{}
	}
	var p listWordsParams
	order, err := filterexpr.Bind(query, &p, listWordsSchema)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrInvalidQuery, err)
	}
	page := query.Pagination.Normalize()

	matched := lo.Filter(words, func(w entity.Word, _ int) bool { return p.match(w) })
	less := lessWords(order)
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	total := int64(len(matched))
	offset := int64(page.Offset())
	if offset >= total {
		return []entity.Word{}, total, nil
	}
	end := min(offset+int64(page.PageSize), total)
	return matched[offset:end], total, nil
}
