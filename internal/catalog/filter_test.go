package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict11572/kienyeji/internal/domain"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Moringa", Category: "Diabetes"},
		{ID: "2", Name: "Garlic", Category: "Immunity"},
	}
}

func TestFilter_MatchesNameCaseInsensitive(t *testing.T) {
	filtered := Filter(sampleProducts(), "mor")

	require.Len(t, filtered, 1)
	assert.Equal(t, "Moringa", filtered[0].Name)
}

func TestFilter_MatchesCategory(t *testing.T) {
	filtered := Filter(sampleProducts(), "immun")

	require.Len(t, filtered, 1)
	assert.Equal(t, "Garlic", filtered[0].Name)
}

func TestFilter_EmptyTermKeepsAll(t *testing.T) {
	assert.Len(t, Filter(sampleProducts(), ""), 2)
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter(sampleProducts(), "zinc"))
}

func TestGroupByCategory(t *testing.T) {
	grouped := GroupByCategory(Filter(sampleProducts(), "mor"))

	require.Len(t, grouped, 1)
	require.Len(t, grouped["Diabetes"], 1)
	assert.Equal(t, "Moringa", grouped["Diabetes"][0].Name)
}

func TestGroupByCategory_PreservesSourceOrder(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Moringa", Category: "Diabetes"},
		{ID: "2", Name: "Bitter Melon", Category: "Diabetes"},
	}

	grouped := GroupByCategory(products)

	require.Len(t, grouped["Diabetes"], 2)
	assert.Equal(t, "Moringa", grouped["Diabetes"][0].Name)
	assert.Equal(t, "Bitter Melon", grouped["Diabetes"][1].Name)
}

func TestGroupByCategory_MissingCategory(t *testing.T) {
	grouped := GroupByCategory([]domain.Product{{ID: "1", Name: "Honey"}})

	require.Len(t, grouped[domain.CategoryUncategorized], 1)
}
