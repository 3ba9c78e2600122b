package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type itemRecord struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          domain.Category `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Currency          string          `json:"currency"`
	Image             string          `json:"image,omitempty"`
	ShortDesc         string          `json:"shortDesc,omitempty"`
	Description       string          `json:"description,omitempty"`
	Availability      string          `json:"availability,omitempty"`
	Features          []string        `json:"features,omitempty"`
	Size              string          `json:"size,omitempty"`
	Flavour           string          `json:"flavor,omitempty"`
	Ingredients       []string        `json:"ingredients,omitempty"`
	FermentationNotes string          `json:"fermentationNotes,omitempty"`
	Storage           string          `json:"storage,omitempty"`
	Disclaimer        string          `json:"disclaimer,omitempty"`
	Quantity          int             `json:"quantity"`
}

// EncodeCart serializes the cart as an ordered JSON list of line items.
func EncodeCart(items []domain.CartItem) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))

	for i, item := range items {
		if item.Product == nil {
			return nil, fmt.Errorf("item[%d] has no product", i)
		}
		records = append(records, toRecord(item))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

// DecodeCart rejects any snapshot that would break the cart invariants.
func DecodeCart(data []byte) ([]domain.CartItem, error) {
	var records []itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items := make([]domain.CartItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		item, err := fromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, err)
		}

		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("item[%d]: duplicate id[%s]", i, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		items = append(items, item)
	}

	return items, nil
}

func toRecord(item domain.CartItem) itemRecord {
	info := item.Product.Info()

	rec := itemRecord{
		ID:           info.ID,
		Name:         info.Name,
		Category:     item.Product.Category(),
		Price:        info.Price.Amount,
		Currency:     info.Price.Currency.String(),
		Image:        info.Image,
		ShortDesc:    info.ShortDesc,
		Description:  info.Description,
		Availability: string(info.Availability),
		Quantity:     item.Quantity,
	}

	switch p := item.Product.(type) {
	case domain.KitProduct:
		rec.Features = p.Features
	case domain.DrinkProduct:
		rec.Size = p.Size
		rec.Flavour = p.Flavour
		rec.Ingredients = p.Ingredients
		rec.FermentationNotes = p.FermentationNotes
		rec.Storage = p.Storage
		rec.Disclaimer = p.Disclaimer
	}

	return rec
}

func fromRecord(rec itemRecord) (domain.CartItem, error) {
	if rec.ID == "" {
		return domain.CartItem{}, fmt.Errorf("id is empty")
	}
	if rec.Quantity < 1 || rec.Quantity > domain.MaxQuantity {
		return domain.CartItem{}, fmt.Errorf("quantity[%d] is out of range", rec.Quantity)
	}
	if rec.Price.IsNegative() {
		return domain.CartItem{}, fmt.Errorf("price[%s] is negative", rec.Price)
	}

	unit, err := currency.ParseISO(rec.Currency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", rec.Currency, err)
	}

	info := domain.ProductInfo{
		ID:           rec.ID,
		Name:         rec.Name,
		Price:        domain.Money{Amount: rec.Price, Currency: unit},
		Image:        rec.Image,
		ShortDesc:    rec.ShortDesc,
		Description:  rec.Description,
		Availability: domain.Availability(rec.Availability),
	}

	var product domain.Product
	switch rec.Category {
	case domain.CategoryKit:
		product = domain.KitProduct{ProductInfo: info, Features: rec.Features}
	case domain.CategoryDrink:
		product = domain.DrinkProduct{
			ProductInfo:       info,
			Size:              rec.Size,
			Flavour:           rec.Flavour,
			Ingredients:       rec.Ingredients,
			FermentationNotes: rec.FermentationNotes,
			Storage:           rec.Storage,
			Disclaimer:        rec.Disclaimer,
		}
	default:
		return domain.CartItem{}, fmt.Errorf("category[%s] is not valid", rec.Category)
	}

	return domain.CartItem{Product: product, Quantity: rec.Quantity}, nil
}
