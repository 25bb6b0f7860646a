package source

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{Count: 25, Seed: 7, Year: 2024}

	first := Generate(cfg)
	second := Generate(cfg)

	require.Len(t, first, 25)
	assert.Equal(t, first, second)

	other := Generate(GeneratorConfig{Count: 25, Seed: 8, Year: 2024})
	assert.NotEqual(t, first, other)
}

func TestGenerate_RecordsSatisfySchema(t *testing.T) {
	records := Generate(DefaultGeneratorConfig())
	require.Len(t, records, DefaultRecordCount)

	seen := make(map[string]bool)
	for i, r := range records {
		require.NoError(t, r.CheckAmounts(), "record %d", i)

		_, err := uuid.Parse(r.ID)
		require.NoError(t, err)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true

		assert.Equal(t, DefaultYear, r.Date.Year())
		assert.LessOrEqual(t, r.Date.Day(), 28)
		assert.GreaterOrEqual(t, r.Quantity, 1)
		assert.LessOrEqual(t, r.Quantity, 10)
		assert.GreaterOrEqual(t, r.Age, 18)
		assert.LessOrEqual(t, r.Age, 67)
		assert.GreaterOrEqual(t, r.PricePerUnit, 50.0)
		assert.Less(t, r.DiscountPercentage, 30.0)
		assert.Contains(t, regions, r.CustomerRegion)
		assert.Contains(t, genders, r.Gender)
		assert.Contains(t, categories, r.ProductCategory)
		assert.Contains(t, tags, r.Tag)
		assert.Contains(t, paymentMethods, r.PaymentMethod)
		assert.Contains(t, []string{"Regular", "Premium"}, r.CustomerType)
		assert.Regexp(t, `^\+91-\d{10}$`, r.PhoneNumber)
	}

	assert.Equal(t, "C0001", records[0].CustomerID)
	assert.Equal(t, "P0150", records[149].ProductID)
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Seed: 1})

	records, err := g.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, DefaultRecordCount)
}

func TestGenerator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(DefaultGeneratorConfig()).Records(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatic_ReturnsCopy(t *testing.T) {
	records := Generate(GeneratorConfig{Count: 3, Seed: 1, Year: 2024})
	src := Static(records)

	got, err := src.Records(context.Background())
	require.NoError(t, err)
	got[0].CustomerName = "changed"

	assert.NotEqual(t, "changed", records[0].CustomerName)
}
