package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nikolayk812/zini-storefront/internal/domain"
)

type SortOption string

const (
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortName      SortOption = "name"
)

type SizeFilter string

const (
	FilterAll   SizeFilter = "all"
	Filter330ml SizeFilter = "330ml"
	Filter440ml SizeFilter = "440ml"
	Filter1L    SizeFilter = "1L"
)

func ParseSort(s string) (SortOption, error) {
	switch opt := SortOption(s); opt {
	case "":
		return SortName, nil
	case SortPriceAsc, SortPriceDesc, SortName:
		return opt, nil
	default:
		return "", fmt.Errorf("sort[%s] is not valid", s)
	}
}

func ParseSizeFilter(s string) (SizeFilter, error) {
	switch f := SizeFilter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, Filter330ml, Filter440ml, Filter1L:
		return f, nil
	default:
		return "", fmt.Errorf("size filter[%s] is not valid", s)
	}
}

// List returns catalog products narrowed by bottle size. Kits carry no size and only show under FilterAll.
func List(filter SizeFilter, sortBy SortOption) []domain.Product {
	var result []domain.Product

	for _, p := range products {
		if filter == FilterAll || filter == "" {
			result = append(result, p)
			continue
		}
		if drink, ok := p.(domain.DrinkProduct); ok && drink.Size == string(filter) {
			result = append(result, p)
		}
	}

	slices.SortStableFunc(result, func(a, b domain.Product) int {
		ai, bi := a.Info(), b.Info()
		switch sortBy {
		case SortPriceAsc:
			return ai.Price.Amount.Cmp(bi.Price.Amount)
		case SortPriceDesc:
			return bi.Price.Amount.Cmp(ai.Price.Amount)
		default:
			return strings.Compare(ai.Name, bi.Name)
		}
	})

	return result
}
