// Package catalog holds the storefront's build-time reference data.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nikolayk812/zini-storefront/internal/domain"
	"golang.org/x/text/currency"
)

// Currency is the only currency the store sells in.
var Currency = currency.ZAR

var (
	drinkIngredients = []string{"Filtered Water", "Organic Tea", "Raw Cane Sugar", "Live Kombucha Culture"}
	drinkDisclaimer  = "Contains live cultures. May support gut health."
)

var products = []domain.Product{
	domain.KitProduct{
		ProductInfo: domain.ProductInfo{
			ID:           "starter-kit",
			Name:         "Kombucha Starter Kit",
			Price:        domain.NewMoney(390, Currency),
			Image:        "/images/starter-kit-hero.png",
			ShortDesc:    "Everything you need to brew at home.",
			Description:  "Everything you need to start brewing your own living kombucha at home. Designed for the warm Mtunzini climate but perfect for any kitchen.",
			Availability: domain.InStock,
		},
		Features: []string{
			"2L Glass Fermentation Jar",
			"Live Heirloom SCOBY (Active Culture)",
			"Starter Liquid",
			"Breathable Cloth Cover + Band",
			"Step-by-Step Brewing Guide",
			"Flavor Inspiration Guide",
		},
	},
	domain.DrinkProduct{
		ProductInfo: domain.ProductInfo{
			ID:           "kombucha-330",
			Name:         "Raw Kombucha 330ml",
			Price:        domain.NewMoney(19, Currency),
			Image:        "/images/cool-kick.png",
			ShortDesc:    "Perfect single serving.",
			Description:  "Traditionally fermented in Zini. Crisp, refreshing, and full of live probiotics.",
			Availability: domain.InStock,
		},
		Size:              "330ml",
		Ingredients:       drinkIngredients,
		FermentationNotes: "Slow-brewed for 14 days for a dry, complex profile.",
		Storage:           "Keep refrigerated. Do not shake.",
		Disclaimer:        drinkDisclaimer,
	},
	domain.DrinkProduct{
		ProductInfo: domain.ProductInfo{
			ID:           "kombucha-440",
			Name:         "Raw Kombucha 440ml",
			Price:        domain.NewMoney(25, Currency),
			Image:        "/images/berry-kick.png",
			ShortDesc:    "The thirst quencher.",
			Description:  "A larger dose of gut-friendly goodness. Perfect for post-surf hydration.",
			Availability: domain.InStock,
		},
		Size:              "440ml",
		Ingredients:       drinkIngredients,
		FermentationNotes: "Natural secondary fermentation in the bottle.",
		Storage:           "Keep refrigerated. Open carefully.",
		Disclaimer:        drinkDisclaimer,
	},
	domain.DrinkProduct{
		ProductInfo: domain.ProductInfo{
			ID:           "kombucha-1l",
			Name:         "Raw Kombucha 1L",
			Price:        domain.NewMoney(42, Currency),
			Image:        "/images/rooibos-boost.png",
			ShortDesc:    "Share the life.",
			Description:  "Family size. Naturally carbonated and unpasteurized.",
			Availability: domain.LowStock,
		},
		Size:              "1L",
		Ingredients:       drinkIngredients,
		FermentationNotes: "Small batch production using wild-harvested starters.",
		Storage:           "Keep refrigerated. Consume within 4 days of opening.",
		Disclaimer:        drinkDisclaimer,
	},
}

var flavours = []domain.Flavour{
	{ID: "cool-kick", Name: "Cool Kick", Subtitle: "Lemon & Cucumber", Desc: "REFRESHING & ZESTY", Icon: "utensils"},
	{ID: "berry-kick", Name: "Berry Kick", Subtitle: "Wild Berry", Desc: "SWEET & TART", Icon: "flower"},
	{ID: "rooibos-boost", Name: "Rooibos Boost", Subtitle: "African Rooibos", Desc: "EARTHY & RESTORATIVE", Icon: "leaf"},
	{ID: "black-boost", Name: "Black Boost", Subtitle: "Classic Black Tea", Desc: "BOLD & ENERGIZING", Icon: "cup"},
}

var sizes = []domain.Size{
	{Label: "330ml", Price: domain.NewMoney(19, Currency)},
	{Label: "440ml", Price: domain.NewMoney(25, Currency)},
	{Label: "1L", Price: domain.NewMoney(42, Currency)},
}

func Products() []domain.Product {
	return slices.Clone(products)
}

func Flavours() []domain.Flavour {
	return slices.Clone(flavours)
}

func Sizes() []domain.Size {
	return slices.Clone(sizes)
}

// Find resolves base products and flavour variants such as "berry-kick-440ml".
func Find(id string) (domain.Product, bool) {
	for _, p := range products {
		if p.Info().ID == id {
			return p, true
		}
	}

	for _, f := range flavours {
		sizeLabel, ok := strings.CutPrefix(id, f.ID+"-")
		if !ok {
			continue
		}
		variant, err := Variant(f.ID, sizeLabel)
		if err == nil {
			return variant, true
		}
	}

	return nil, false
}

// Variant builds the cart product for one flavour in one bottle size.
func Variant(flavourID, sizeLabel string) (domain.DrinkProduct, error) {
	fi := slices.IndexFunc(flavours, func(f domain.Flavour) bool { return f.ID == flavourID })
	if fi < 0 {
		return domain.DrinkProduct{}, fmt.Errorf("flavour[%s] is not known", flavourID)
	}
	si := slices.IndexFunc(sizes, func(s domain.Size) bool { return s.Label == sizeLabel })
	if si < 0 {
		return domain.DrinkProduct{}, fmt.Errorf("size[%s] is not known", sizeLabel)
	}

	flavour, size := flavours[fi], sizes[si]

	return domain.DrinkProduct{
		ProductInfo: domain.ProductInfo{
			ID:           flavour.ID + "-" + size.Label,
			Name:         flavour.Name + " - " + size.Label,
			Price:        size.Price,
			Image:        variantImage(flavour.ID, size.Label),
			ShortDesc:    flavour.Desc,
			Description:  flavour.Subtitle + ". " + flavour.Desc,
			Availability: domain.InStock,
		},
		Size:        size.Label,
		Flavour:     flavour.Name,
		Ingredients: drinkIngredients,
		Disclaimer:  drinkDisclaimer,
	}, nil
}

func variantImage(flavourID, sizeLabel string) string {
	switch {
	case flavourID == "berry-kick" && sizeLabel == "440ml":
		return "/images/berry-kick-440.png"
	case flavourID == "cool-kick" && sizeLabel == "330ml":
		return "/images/cool-kick-330.png"
	case flavourID == "black-boost":
		return "/images/rooibos-boost.png"
	default:
		return "/images/" + flavourID + ".png"
	}
}
