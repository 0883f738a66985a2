package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStockBand(t *testing.T) {
	cases := []struct {
		stock int
		want  StockBand
	}{
		{50, StockIn},
		{11, StockIn},
		{10, StockLow},
		{1, StockLow},
		{0, StockOut},
		{-2, StockOut},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Product{Stock: tc.stock}.StockBand(), "stock %d", tc.stock)
	}
}

func TestProductJSONCarriesStockBand(t *testing.T) {
	data, err := json.Marshal(Product{ID: "1", Title: "Lamp", Stock: 3})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "low_stock", raw["stockBand"])
	assert.Equal(t, "Lamp", raw["title"])
	assert.EqualValues(t, 3, raw["stock"])

	var back Product
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "1", back.ID)
	assert.Equal(t, 3, back.Stock)
}

func TestKindOf(t *testing.T) {
	k, ok := KindOf(BlogPost{})
	require.True(t, ok)
	assert.Equal(t, KindBlog, k)
	assert.Equal(t, "post", k.Singular())
}
