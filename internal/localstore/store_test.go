package localstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/zini-storefront/internal/catalog"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/localstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestStore_RoundTrip(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	kit, _ := catalog.Find("starter-kit")
	variant, err := catalog.Variant("cool-kick", "330ml")
	require.NoError(t, err)

	items := []domain.CartItem{
		{Product: variant, Quantity: gofakeit.IntRange(1, 20)},
		{Product: kit, Quantity: 1},
	}

	key := "zini-cart:" + gofakeit.UUID()
	require.NoError(t, store.SaveCart(t.Context(), key, items))

	loaded, err := store.LoadCart(t.Context(), key)
	require.NoError(t, err)

	assertItems(t, items, loaded)
}

func TestStore_LoadMissingKey(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	loaded, err := store.LoadCart(t.Context(), "zini-cart")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_LoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	store, err := localstore.New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "zini-cart.json"), []byte("{not json"), 0o644))

	_, err = store.LoadCart(t.Context(), "zini-cart")
	require.Error(t, err)
}

func TestStore_EmptyKey(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	_, err = store.LoadCart(t.Context(), "")
	require.EqualError(t, err, "key is empty")

	err = store.SaveCart(t.Context(), "", nil)
	require.EqualError(t, err, "key is empty")
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := localstore.New("")
	require.EqualError(t, err, "dir is empty")
}

func TestDecodeCart(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantLen   int
		wantError bool
	}{
		{
			name:    "empty list: ok",
			data:    `[]`,
			wantLen: 0,
		},
		{
			name:    "single drink: ok",
			data:    `[{"id":"berry-kick-440ml","name":"Berry Kick - 440ml","category":"drink","price":"25","currency":"ZAR","size":"440ml","flavor":"Berry Kick","quantity":2}]`,
			wantLen: 1,
		},
		{
			name:      "not a list: error",
			data:      `{"id":"x"}`,
			wantError: true,
		},
		{
			name:      "zero quantity: error",
			data:      `[{"id":"a","category":"kit","price":"1","currency":"ZAR","quantity":0}]`,
			wantError: true,
		},
		{
			name:      "quantity above the line maximum: error",
			data:      `[{"id":"a","category":"kit","price":"1","currency":"ZAR","quantity":2147483648}]`,
			wantError: true,
		},
		{
			name:      "duplicate ids: error",
			data:      `[{"id":"a","category":"kit","price":"1","currency":"ZAR","quantity":1},{"id":"a","category":"kit","price":"1","currency":"ZAR","quantity":1}]`,
			wantError: true,
		},
		{
			name:      "unknown category: error",
			data:      `[{"id":"a","category":"merch","price":"1","currency":"ZAR","quantity":1}]`,
			wantError: true,
		},
		{
			name:      "bad currency: error",
			data:      `[{"id":"a","category":"kit","price":"1","currency":"???","quantity":1}]`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := localstore.DecodeCart([]byte(tt.data))
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantLen)
		})
	}
}

func assertItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	opts := cmp.Options{
		cmp.Comparer(func(x, y currency.Unit) bool { return x.String() == y.String() }),
		cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
