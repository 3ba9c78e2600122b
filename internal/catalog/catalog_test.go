package catalog_test

import (
	"testing"

	"github.com/nikolayk812/zini-storefront/internal/catalog"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantFound bool
		wantName  string
		wantPrice int64
	}{
		{
			name:      "base kit: ok",
			id:        "starter-kit",
			wantFound: true,
			wantName:  "Kombucha Starter Kit",
			wantPrice: 390,
		},
		{
			name:      "flavour variant: ok",
			id:        "berry-kick-440ml",
			wantFound: true,
			wantName:  "Berry Kick - 440ml",
			wantPrice: 25,
		},
		{
			name:      "flavour variant with 1L size: ok",
			id:        "rooibos-boost-1L",
			wantFound: true,
			wantName:  "Rooibos Boost - 1L",
			wantPrice: 42,
		},
		{
			name: "unknown size: not found",
			id:   "cool-kick-2L",
		},
		{
			name: "unknown product: not found",
			id:   "ginger-beer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, found := catalog.Find(tt.id)
			require.Equal(t, tt.wantFound, found)
			if !tt.wantFound {
				return
			}

			info := p.Info()
			assert.Equal(t, tt.id, info.ID)
			assert.Equal(t, tt.wantName, info.Name)
			assert.True(t, decimal.NewFromInt(tt.wantPrice).Equal(info.Price.Amount))
			assert.Equal(t, catalog.Currency.String(), info.Price.Currency.String())
		})
	}
}

func TestVariantIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range catalog.Products() {
		seen[p.Info().ID] = true
	}

	for _, f := range catalog.Flavours() {
		for _, s := range catalog.Sizes() {
			v, err := catalog.Variant(f.ID, s.Label)
			require.NoError(t, err)

			assert.False(t, seen[v.ID], "duplicate id %s", v.ID)
			seen[v.ID] = true

			assert.Equal(t, domain.CategoryDrink, v.Category())
			assert.Equal(t, f.Name, v.Flavour)
		}
	}
}

func TestVariant_Unknown(t *testing.T) {
	_, err := catalog.Variant("nope", "330ml")
	require.EqualError(t, err, "flavour[nope] is not known")

	_, err = catalog.Variant("cool-kick", "5L")
	require.EqualError(t, err, "size[5L] is not known")
}

func TestList(t *testing.T) {
	tests := []struct {
		name    string
		filter  catalog.SizeFilter
		sort    catalog.SortOption
		wantIDs []string
	}{
		{
			name:    "all by price ascending",
			filter:  catalog.FilterAll,
			sort:    catalog.SortPriceAsc,
			wantIDs: []string{"kombucha-330", "kombucha-440", "kombucha-1l", "starter-kit"},
		},
		{
			name:    "all by price descending",
			filter:  catalog.FilterAll,
			sort:    catalog.SortPriceDesc,
			wantIDs: []string{"starter-kit", "kombucha-1l", "kombucha-440", "kombucha-330"},
		},
		{
			name:    "all by name",
			filter:  catalog.FilterAll,
			sort:    catalog.SortName,
			wantIDs: []string{"starter-kit", "kombucha-1l", "kombucha-330", "kombucha-440"},
		},
		{
			name:    "440ml only excludes kits",
			filter:  catalog.Filter440ml,
			sort:    catalog.SortName,
			wantIDs: []string{"kombucha-440"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, p := range catalog.List(tt.filter, tt.sort) {
				ids = append(ids, p.Info().ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseSortAndFilter(t *testing.T) {
	s, err := catalog.ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, catalog.SortName, s)

	_, err = catalog.ParseSort("random")
	require.EqualError(t, err, "sort[random] is not valid")

	f, err := catalog.ParseSizeFilter("1L")
	require.NoError(t, err)
	assert.Equal(t, catalog.Filter1L, f)

	_, err = catalog.ParseSizeFilter("2L")
	require.EqualError(t, err, "size filter[2L] is not valid")
}
