package query

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/retail-sales/internal/model"
)

// Filter returns the records satisfying every active predicate in c, in
// input order. now is the upper date bound used when only a start date is
// set. Zero criteria return records unchanged.
func Filter(records []model.SalesRecord, c Criteria, now time.Time) []model.SalesRecord {
	if c.IsZero() {
		return records
	}

	p := newPredicate(c, now)
	filtered := make([]model.SalesRecord, 0, len(records))
	for _, r := range records {
		if p.match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Matches reports whether a single record satisfies c.
func Matches(r model.SalesRecord, c Criteria, now time.Time) bool {
	return newPredicate(c, now).match(r)
}

// predicate holds criteria normalized once per Filter call.
type predicate struct {
	criteria Criteria
	search   string
	start    time.Time
	end      time.Time
	minAge   int
	maxAge   int
	hasAge   bool
	hasDates bool
}

func newPredicate(c Criteria, now time.Time) predicate {
	p := predicate{
		criteria: c,
		search:   strings.ToLower(strings.TrimSpace(c.Search)),
		hasAge:   !c.Age.IsZero(),
		hasDates: !c.Dates.IsZero(),
		maxAge:   math.MaxInt,
		end:      now,
	}
	if c.Age.Min != nil {
		p.minAge = *c.Age.Min
	}
	if c.Age.Max != nil {
		p.maxAge = *c.Age.Max
	}
	if c.Dates.Start != nil {
		p.start = *c.Dates.Start
	}
	if c.Dates.End != nil {
		p.end = *c.Dates.End
	}
	return p
}

func (p predicate) match(r model.SalesRecord) bool {
	if p.search != "" &&
		!strings.Contains(strings.ToLower(r.CustomerName), p.search) &&
		!strings.Contains(strings.ToLower(r.PhoneNumber), p.search) {
		return false
	}

	if !inSet(p.criteria.Regions, r.CustomerRegion) ||
		!inSet(p.criteria.Genders, r.Gender) ||
		!inSet(p.criteria.Categories, r.ProductCategory) ||
		!inSet(p.criteria.Tags, r.Tag) ||
		!inSet(p.criteria.PaymentMethods, r.PaymentMethod) {
		return false
	}

	if p.hasAge && (r.Age < p.minAge || r.Age > p.maxAge) {
		return false
	}

	if p.hasDates && (r.Date.Before(p.start) || r.Date.After(p.end)) {
		return false
	}

	return true
}

// inSet treats an empty set as "accept all".
func inSet(set []string, value string) bool {
	return len(set) == 0 || slices.Contains(set, value)
}
