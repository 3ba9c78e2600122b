package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/zini-storefront/internal/db"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q        *db.Queries
	beginner txBeginner
}

func NewCart(pool *pgxpool.Pool) port.CartStorage {
	return &cartRepository{
		q:        db.New(pool),
		beginner: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartStorage {
	return &cartRepository{
		q:        db.New(tx),
		beginner: nil, // use provided transaction instead
	}
}

func (r *cartRepository) LoadCart(ctx context.Context, ownerID string) ([]domain.CartItem, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.GetCart: %w", err)
	}

	items, err := mapGetCartRowsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return items, nil
}

// SaveCart replaces the owner's rows with the snapshot, keeping slice order in the position column.
func (r *cartRepository) SaveCart(ctx context.Context, ownerID string, items []domain.CartItem) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.beginner, r.q, func(q *db.Queries) error {
		if _, err := q.DeleteCart(ctx, ownerID); err != nil {
			return fmt.Errorf("q.DeleteCart: %w", err)
		}

		for i, item := range items {
			params, err := mapDomainToAddItemParams(ownerID, i, item)
			if err != nil {
				return fmt.Errorf("mapDomainToAddItemParams: %w", err)
			}

			if err := q.AddItem(ctx, params); err != nil {
				return fmt.Errorf("q.AddItem: %w", err)
			}
		}

		return nil
	})
}

// productDetails holds the descriptive product fields that have no column of their own.
type productDetails struct {
	ShortDesc         string   `json:"shortDesc,omitempty"`
	Description       string   `json:"description,omitempty"`
	Features          []string `json:"features,omitempty"`
	Ingredients       []string `json:"ingredients,omitempty"`
	FermentationNotes string   `json:"fermentationNotes,omitempty"`
	Storage           string   `json:"storage,omitempty"`
	Disclaimer        string   `json:"disclaimer,omitempty"`
}

func mapDomainToAddItemParams(ownerID string, position int, item domain.CartItem) (db.AddItemParams, error) {
	if item.Product == nil {
		return db.AddItemParams{}, fmt.Errorf("item[%d] has no product", position)
	}
	if item.Quantity > domain.MaxQuantity {
		return db.AddItemParams{}, fmt.Errorf("item[%d] quantity[%d] is out of range", position, item.Quantity)
	}

	info := item.Product.Info()
	params := db.AddItemParams{
		OwnerID:       ownerID,
		Position:      int32(position),
		ProductID:     info.ID,
		Category:      string(item.Product.Category()),
		Name:          info.Name,
		Image:         info.Image,
		Availability:  string(info.Availability),
		PriceAmount:   info.Price.Amount,
		PriceCurrency: info.Price.Currency.String(),
		Quantity:      int32(item.Quantity),
	}

	details := productDetails{
		ShortDesc:   info.ShortDesc,
		Description: info.Description,
	}

	switch p := item.Product.(type) {
	case domain.KitProduct:
		details.Features = p.Features
	case domain.DrinkProduct:
		params.Size = p.Size
		params.Flavour = p.Flavour
		details.Ingredients = p.Ingredients
		details.FermentationNotes = p.FermentationNotes
		details.Storage = p.Storage
		details.Disclaimer = p.Disclaimer
	}

	var err error
	params.Details, err = json.Marshal(details)
	if err != nil {
		return db.AddItemParams{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return params, nil
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	var details productDetails
	if len(row.Details) > 0 {
		if err := json.Unmarshal(row.Details, &details); err != nil {
			return domain.CartItem{}, fmt.Errorf("json.Unmarshal: %w", err)
		}
	}

	info := domain.ProductInfo{
		ID:           row.ProductID,
		Name:         row.Name,
		Price:        domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Image:        row.Image,
		ShortDesc:    details.ShortDesc,
		Description:  details.Description,
		Availability: domain.Availability(row.Availability),
	}

	var product domain.Product
	switch domain.Category(row.Category) {
	case domain.CategoryKit:
		product = domain.KitProduct{ProductInfo: info, Features: details.Features}
	case domain.CategoryDrink:
		product = domain.DrinkProduct{
			ProductInfo:       info,
			Size:              row.Size,
			Flavour:           row.Flavour,
			Ingredients:       details.Ingredients,
			FermentationNotes: details.FermentationNotes,
			Storage:           details.Storage,
			Disclaimer:        details.Disclaimer,
		}
	default:
		return domain.CartItem{}, fmt.Errorf("category[%s] is not valid", row.Category)
	}

	return domain.CartItem{
		Product:  product,
		Quantity: int(row.Quantity),
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
