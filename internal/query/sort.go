package query

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Veraticus/retail-sales/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering field and direction.
type SortKey string

// Supported sort keys.
const (
	SortDateDesc     SortKey = "date-desc"
	SortDateAsc      SortKey = "date-asc"
	SortQuantityDesc SortKey = "quantity-desc"
	SortQuantityAsc  SortKey = "quantity-asc"
	SortNameAsc      SortKey = "name-asc"
	SortNameDesc     SortKey = "name-desc"
)

// DefaultSortKey is newest first.
const DefaultSortKey = SortDateDesc

// SortKeys returns every key in selector order.
func SortKeys() []SortKey {
	return []SortKey{
		SortDateDesc,
		SortDateAsc,
		SortQuantityDesc,
		SortQuantityAsc,
		SortNameAsc,
		SortNameDesc,
	}
}

// ParseSortKey validates a key name such as "quantity-asc".
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(s)
	if !slices.Contains(SortKeys(), key) {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return key, nil
}

// Label returns the human-readable selector text.
func (k SortKey) Label() string {
	switch k {
	case SortDateDesc:
		return "Date (Newest First)"
	case SortDateAsc:
		return "Date (Oldest First)"
	case SortQuantityDesc:
		return "Quantity (High to Low)"
	case SortQuantityAsc:
		return "Quantity (Low to High)"
	case SortNameAsc:
		return "Customer Name (A-Z)"
	case SortNameDesc:
		return "Customer Name (Z-A)"
	default:
		return string(k)
	}
}

// Next returns the key following k in selector order, wrapping around.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	i := slices.Index(keys, k)
	return keys[(i+1)%len(keys)]
}

// Reverse returns the key with the same field and opposite direction.
func (k SortKey) Reverse() SortKey {
	switch k {
	case SortDateDesc:
		return SortDateAsc
	case SortDateAsc:
		return SortDateDesc
	case SortQuantityDesc:
		return SortQuantityAsc
	case SortQuantityAsc:
		return SortQuantityDesc
	case SortNameAsc:
		return SortNameDesc
	case SortNameDesc:
		return SortNameAsc
	default:
		return k
	}
}

// Sort returns a stably ordered copy of records. Records with equal keys
// keep their relative input order in both directions. An unknown key
// returns a copy in input order.
func Sort(records []model.SalesRecord, key SortKey) []model.SalesRecord {
	sorted := slices.Clone(records)

	compare := comparator(key)
	if compare == nil {
		return sorted
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(key SortKey) func(a, b model.SalesRecord) int {
	switch key {
	case SortDateAsc:
		return byDate
	case SortDateDesc:
		return descending(byDate)
	case SortQuantityAsc:
		return byQuantity
	case SortQuantityDesc:
		return descending(byQuantity)
	case SortNameAsc:
		return byName()
	case SortNameDesc:
		return descending(byName())
	default:
		return nil
	}
}

func byDate(a, b model.SalesRecord) int {
	return a.Date.Compare(b.Date)
}

func byQuantity(a, b model.SalesRecord) int {
	return cmp.Compare(a.Quantity, b.Quantity)
}

// byName compares customer names with an English collator. A collator is
// not safe for concurrent use, so each sort gets its own.
func byName() func(a, b model.SalesRecord) int {
	c := collate.New(language.English)
	return func(a, b model.SalesRecord) int {
		return c.CompareString(a.CustomerName, b.CustomerName)
	}
}

// descending swaps arguments rather than negating so ties stay ties.
func descending(compare func(a, b model.SalesRecord) int) func(a, b model.SalesRecord) int {
	return func(a, b model.SalesRecord) int {
		return compare(b, a)
	}
}
