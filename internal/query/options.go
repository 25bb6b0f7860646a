package query

import "github.com/Veraticus/retail-sales/internal/model"

// FilterOptions lists the distinct values available for each categorical
// filter. It is derived from the full record set, never from filtered
// results, so narrowing a filter never hides a choice.
type FilterOptions struct {
	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string
}

// Options collects distinct categorical values in first-appearance order.
func Options(records []model.SalesRecord) FilterOptions {
	var (
		opts FilterOptions
		seen = make(map[FilterField]map[string]bool)
	)
	for _, f := range FilterFields() {
		seen[f] = make(map[string]bool)
	}

	add := func(f FilterField, dst *[]string, value string) {
		if value == "" || seen[f][value] {
			return
		}
		seen[f][value] = true
		*dst = append(*dst, value)
	}

	for _, r := range records {
		add(FieldRegion, &opts.Regions, r.CustomerRegion)
		add(FieldGender, &opts.Genders, r.Gender)
		add(FieldCategory, &opts.Categories, r.ProductCategory)
		add(FieldTag, &opts.Tags, r.Tag)
		add(FieldPaymentMethod, &opts.PaymentMethods, r.PaymentMethod)
	}

	return opts
}

// Values returns the options for a categorical field.
func (o FilterOptions) Values(f FilterField) []string {
	switch f {
	case FieldRegion:
		return o.Regions
	case FieldGender:
		return o.Genders
	case FieldCategory:
		return o.Categories
	case FieldTag:
		return o.Tags
	case FieldPaymentMethod:
		return o.PaymentMethods
	default:
		return nil
	}
}
