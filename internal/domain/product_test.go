package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_Normalize(t *testing.T) {
	p := &Product{ID: " prod-1 ", Name: " Garlic ", Category: ""}

	p.Normalize()

	assert.Equal(t, "prod-1", p.ID)
	assert.Equal(t, "Garlic", p.Name)
	assert.Equal(t, CategoryUncategorized, p.Category)
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{ID: "prod-1", Name: "Garlic", Price: decimal.NewFromInt(50), Stock: 3}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr error
	}{
		{"missing id", func(p *Product) { p.ID = "" }, ErrMissingProductID},
		{"missing name", func(p *Product) { p.Name = "" }, ErrMissingProductName},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }, ErrNegativePrice},
		{"negative stock", func(p *Product) { p.Stock = -1 }, ErrNegativeStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tt.wantErr)
		})
	}
}
