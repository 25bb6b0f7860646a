// Package query implements the filter, sort and pagination pipeline over
// sales records. Every function here is pure: inputs are never mutated.
package query

import (
	"slices"
	"strings"
	"time"
)

// AgeRange bounds customer age. Nil bounds are unset.
type AgeRange struct {
	Min *int
	Max *int
}

// IsZero reports whether neither bound is set.
func (a AgeRange) IsZero() bool {
	return a.Min == nil && a.Max == nil
}

// DateRange bounds the record date, inclusive on both ends. Nil bounds are unset.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether neither bound is set.
func (d DateRange) IsZero() bool {
	return d.Start == nil && d.End == nil
}

// Criteria is the search term plus the active filter set.
// The zero value matches every record.
type Criteria struct {
	Search         string
	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string
	Age            AgeRange
	Dates          DateRange
}

// FilterField names one of the multi-value categorical filters.
type FilterField string

// Categorical filter fields, in panel order.
const (
	FieldRegion        FilterField = "region"
	FieldGender        FilterField = "gender"
	FieldCategory      FilterField = "category"
	FieldTag           FilterField = "tag"
	FieldPaymentMethod FilterField = "payment"
)

// FilterFields returns the categorical fields in display order.
func FilterFields() []FilterField {
	return []FilterField{FieldRegion, FieldGender, FieldCategory, FieldTag, FieldPaymentMethod}
}

// Label returns the heading shown for the field.
func (f FilterField) Label() string {
	switch f {
	case FieldRegion:
		return "Region"
	case FieldGender:
		return "Gender"
	case FieldCategory:
		return "Category"
	case FieldTag:
		return "Tags"
	case FieldPaymentMethod:
		return "Payment Method"
	default:
		return string(f)
	}
}

// Values returns the selected values for a categorical field.
func (c Criteria) Values(f FilterField) []string {
	switch f {
	case FieldRegion:
		return c.Regions
	case FieldGender:
		return c.Genders
	case FieldCategory:
		return c.Categories
	case FieldTag:
		return c.Tags
	case FieldPaymentMethod:
		return c.PaymentMethods
	default:
		return nil
	}
}

// Has reports whether value is selected for the field.
func (c Criteria) Has(f FilterField, value string) bool {
	return slices.Contains(c.Values(f), value)
}

// Toggle returns a copy of c with value added to or removed from the field's set.
func (c Criteria) Toggle(f FilterField, value string) Criteria {
	next := c.Clone()
	values := next.Values(f)
	if i := slices.Index(values, value); i >= 0 {
		values = slices.Delete(values, i, i+1)
	} else {
		values = append(values, value)
	}
	next.set(f, values)
	return next
}

func (c *Criteria) set(f FilterField, values []string) {
	switch f {
	case FieldRegion:
		c.Regions = values
	case FieldGender:
		c.Genders = values
	case FieldCategory:
		c.Categories = values
	case FieldTag:
		c.Tags = values
	case FieldPaymentMethod:
		c.PaymentMethods = values
	}
}

// Clone returns a deep copy so callers can modify sets without aliasing.
func (c Criteria) Clone() Criteria {
	out := c
	out.Regions = slices.Clone(c.Regions)
	out.Genders = slices.Clone(c.Genders)
	out.Categories = slices.Clone(c.Categories)
	out.Tags = slices.Clone(c.Tags)
	out.PaymentMethods = slices.Clone(c.PaymentMethods)
	if c.Age.Min != nil {
		v := *c.Age.Min
		out.Age.Min = &v
	}
	if c.Age.Max != nil {
		v := *c.Age.Max
		out.Age.Max = &v
	}
	if c.Dates.Start != nil {
		v := *c.Dates.Start
		out.Dates.Start = &v
	}
	if c.Dates.End != nil {
		v := *c.Dates.End
		out.Dates.End = &v
	}
	return out
}

// ActiveCount returns how many filter dimensions constrain results,
// not counting the search term.
func (c Criteria) ActiveCount() int {
	n := 0
	for _, f := range FilterFields() {
		if len(c.Values(f)) > 0 {
			n++
		}
	}
	if !c.Age.IsZero() {
		n++
	}
	if !c.Dates.IsZero() {
		n++
	}
	return n
}

// IsZero reports whether c matches every record. A blank search term is
// inactive.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" && c.ActiveCount() == 0
}
