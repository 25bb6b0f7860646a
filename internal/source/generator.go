package source

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/google/uuid"
)

// Defaults for generated data.
const (
	DefaultRecordCount = 150
	DefaultSeed        = 42
	DefaultYear        = 2024
)

var (
	regions        = []string{"North", "South", "East", "West", "Central"}
	genders        = []string{"Male", "Female", "Other"}
	categories     = []string{"Electronics", "Clothing", "Food", "Books", "Home"}
	tags           = []string{"Premium", "Budget", "Seasonal", "Clearance", "New"}
	paymentMethods = []string{"Cash", "Credit Card", "Debit Card", "UPI", "Net Banking"}
	orderStatuses  = []string{"Completed", "Pending", "Cancelled", "Processing"}
	deliveryTypes  = []string{"Home Delivery", "Store Pickup", "Express"}
	customerNames  = []string{
		"John Doe", "Jane Smith", "Robert Johnson", "Emily Davis", "Michael Brown",
		"Sarah Wilson", "David Lee", "Lisa Anderson", "James Taylor", "Maria Garcia",
		"Christopher Martin", "Jessica Martinez", "Daniel Rodriguez", "Ashley Lopez",
		"Matthew Hernandez", "Amanda Gonzalez", "Andrew Wilson", "Melissa Moore",
	}
)

// GeneratorConfig controls mock data generation.
type GeneratorConfig struct {
	Count int
	Seed  int64
	Year  int
}

// DefaultGeneratorConfig returns the stock generator settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Count: DefaultRecordCount,
		Seed:  DefaultSeed,
		Year:  DefaultYear,
	}
}

// Generator is a Source producing deterministic synthetic records.
type Generator struct {
	cfg GeneratorConfig
}

// NewGenerator creates a generator, filling unset fields with defaults.
func NewGenerator(cfg GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if cfg.Count <= 0 {
		cfg.Count = def.Count
	}
	if cfg.Year <= 0 {
		cfg.Year = def.Year
	}
	return &Generator{cfg: cfg}
}

// Records generates the configured number of records.
func (g *Generator) Records(ctx context.Context) ([]model.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Generate(g.cfg), nil
}

// Generate builds cfg.Count records. The same config always yields the
// same records.
func Generate(cfg GeneratorConfig) []model.SalesRecord {
	rnd := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // mock data

	records := make([]model.SalesRecord, 0, cfg.Count)
	for i := 1; i <= cfg.Count; i++ {
		records = append(records, buildRecord(i, cfg.Year, rnd))
	}
	return records
}

func buildRecord(i, year int, rnd *rand.Rand) model.SalesRecord {
	pick := func(values []string) string {
		return values[rnd.Intn(len(values))]
	}

	id, err := uuid.NewRandomFromReader(rnd)
	if err != nil {
		// math/rand never fails to read
		id = uuid.Nil
	}

	r := model.SalesRecord{
		ID:                 id.String(),
		Quantity:           rnd.Intn(10) + 1,
		PricePerUnit:       float64(rnd.Intn(500) + 50),
		DiscountPercentage: float64(rnd.Intn(30)),
		CustomerID:         fmt.Sprintf("C%04d", i),
		CustomerName:       pick(customerNames),
		PhoneNumber:        fmt.Sprintf("+91-%d", rnd.Int63n(9000000000)+1000000000),
		Gender:             pick(genders),
		Age:                rnd.Intn(50) + 18,
		CustomerRegion:     pick(regions),
		ProductID:          fmt.Sprintf("P%04d", i),
		ProductName:        fmt.Sprintf("Product %d", i),
		Brand:              fmt.Sprintf("Brand %c", 'A'+rnd.Intn(5)),
		ProductCategory:    pick(categories),
		Tag:                pick(tags),
		Date:               time.Date(year, time.Month(rnd.Intn(12)+1), rnd.Intn(28)+1, 0, 0, 0, 0, time.UTC),
		PaymentMethod:      pick(paymentMethods),
		OrderStatus:        pick(orderStatuses),
		DeliveryType:       pick(deliveryTypes),
		StoreID:            fmt.Sprintf("S%03d", rnd.Intn(20)+1),
		StoreLocation:      fmt.Sprintf("Location %d", rnd.Intn(10)+1),
		SalespersonID:      fmt.Sprintf("SP%03d", rnd.Intn(30)+1),
		EmployeeName:       pick(customerNames),
	}
	r.CustomerType = "Regular"
	if rnd.Float64() > 0.5 {
		r.CustomerType = "Premium"
	}
	r.ComputeAmounts()
	return r
}
