// Package model defines the domain types shared across the application.
package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-day format used for record dates.
const DateLayout = "2006-01-02"

// ErrAmountMismatch reports a record whose stored amounts disagree with its
// quantity, price and discount.
var ErrAmountMismatch = errors.New("amount mismatch")

// SalesRecord represents a single retail sales transaction.
type SalesRecord struct {
	Date time.Time // Calendar day, UTC midnight

	ID string

	// Customer
	CustomerID     string
	CustomerName   string
	PhoneNumber    string
	Gender         string
	CustomerRegion string
	CustomerType   string

	// Product
	ProductID       string
	ProductName     string
	Brand           string
	ProductCategory string
	Tag             string

	// Order
	PaymentMethod string
	OrderStatus   string
	DeliveryType  string

	// Store
	StoreID       string
	StoreLocation string
	SalespersonID string
	EmployeeName  string

	PricePerUnit       float64
	DiscountPercentage float64
	TotalAmount        float64
	FinalAmount        float64
	Quantity           int
	Age                int
}

// ComputeAmounts derives TotalAmount and FinalAmount from quantity, unit
// price and discount.
func (r *SalesRecord) ComputeAmounts() {
	r.TotalAmount = float64(r.Quantity) * r.PricePerUnit
	r.FinalAmount = r.TotalAmount * (1 - r.DiscountPercentage/100)
}

// CheckAmounts verifies the amount invariants within a cent.
func (r SalesRecord) CheckAmounts() error {
	total := float64(r.Quantity) * r.PricePerUnit
	final := total * (1 - r.DiscountPercentage/100)

	if math.Abs(r.TotalAmount-total) > 0.005 {
		return fmt.Errorf("%w: total %.2f, expected %.2f", ErrAmountMismatch, r.TotalAmount, total)
	}
	if math.Abs(r.FinalAmount-final) > 0.005 {
		return fmt.Errorf("%w: final %.2f, expected %.2f", ErrAmountMismatch, r.FinalAmount, final)
	}
	return nil
}

// DateString returns the record date as YYYY-MM-DD.
func (r SalesRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar day into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
