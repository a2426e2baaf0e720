package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validInput() *ProductInput {
	return &ProductInput{
		Name:       "Kopi Susu",
		SKU:        "KS-001",
		CategoryID: primitive.NewObjectID().Hex(),
		BuyPrice:   decimal.NewFromInt(8000),
		SellPrice:  decimal.NewFromInt(12000),
		Stock:      10,
		MinStock:   2,
	}
}

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *ProductInput)
		fields []string
	}{
		{name: "valid", mutate: func(*ProductInput) {}},
		{name: "missing name", mutate: func(in *ProductInput) { in.Name = "" }, fields: []string{"name"}},
		{name: "missing sku", mutate: func(in *ProductInput) { in.SKU = "" }, fields: []string{"sku"}},
		{name: "bad category", mutate: func(in *ProductInput) { in.CategoryID = "abc" }, fields: []string{"category_id"}},
		{name: "bad supplier", mutate: func(in *ProductInput) { in.SupplierID = "xyz" }, fields: []string{"supplier_id"}},
		{name: "negative stock", mutate: func(in *ProductInput) { in.Stock = -1 }, fields: []string{"stock"}},
		{name: "negative sell price", mutate: func(in *ProductInput) { in.SellPrice = decimal.NewFromInt(-1) }, fields: []string{"sell_price"}},
		{
			name: "several at once",
			mutate: func(in *ProductInput) {
				in.Name = ""
				in.BuyPrice = decimal.NewFromInt(-5)
			},
			fields: []string{"name", "buy_price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)

			err := in.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			fields := errs.Fields()
			assert.Len(t, fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestProductInput_NormalizeAndActive(t *testing.T) {
	in := &ProductInput{Name: "  Teh  ", SKU: " T1 ", Barcode: "   "}
	in.Normalize()

	assert.Equal(t, "Teh", in.Name)
	assert.Equal(t, "T1", in.SKU)
	assert.Empty(t, in.Barcode)
	assert.True(t, in.Active())

	inactive := false
	in.IsActive = &inactive
	assert.False(t, in.Active())
}

func TestProduct_Matches(t *testing.T) {
	drinks := primitive.NewObjectID()
	snacks := primitive.NewObjectID()
	barcode := "8991234567890"
	p := Product{Name: "Kopi Susu", SKU: "KS-001", Barcode: &barcode, CategoryID: drinks, IsActive: true}

	assert.True(t, p.Matches(ProductFilter{}))
	assert.True(t, p.Matches(ProductFilter{Query: "kopi"}))
	assert.True(t, p.Matches(ProductFilter{Query: "ks-0"}))
	assert.False(t, p.Matches(ProductFilter{Query: "teh"}))
	assert.True(t, p.Matches(ProductFilter{CategoryID: &drinks}))
	assert.False(t, p.Matches(ProductFilter{CategoryID: &snacks}))
	assert.True(t, p.Matches(ProductFilter{Barcode: barcode}))
	assert.False(t, p.Matches(ProductFilter{Barcode: "000"}))

	p.IsActive = false
	assert.False(t, p.Matches(ProductFilter{}))
	assert.Equal(t, LifecycleInactive, p.Lifecycle())
}

func TestProduct_IsLowStock(t *testing.T) {
	p := Product{Stock: 2, MinStock: 2}
	assert.True(t, p.IsLowStock())
	p.Stock = 3
	assert.False(t, p.IsLowStock())
}
