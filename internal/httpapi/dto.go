package httpapi

import (
	"time"

	"github.com/nikolayk812/zini-storefront/internal/cart"
	"github.com/nikolayk812/zini-storefront/internal/checkout"
	"github.com/nikolayk812/zini-storefront/internal/domain"
)

type moneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type productDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          domain.Category `json:"category"`
	Price             moneyDTO        `json:"price"`
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
}

type flavourDTO struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Subtitle string    `json:"subtitle"`
	Desc     string    `json:"desc"`
	Icon     string    `json:"icon"`
	Sizes    []sizeDTO `json:"sizes"`
}

type sizeDTO struct {
	Label     string   `json:"label"`
	ProductID string   `json:"productId"`
	Price     moneyDTO `json:"price"`
}

type cartItemDTO struct {
	Product   productDTO `json:"product"`
	Quantity  int        `json:"quantity"`
	LineTotal moneyDTO   `json:"lineTotal"`
}

type cartDTO struct {
	Items []cartItemDTO `json:"items"`
	Count int           `json:"count"`
	Total moneyDTO      `json:"total"`
}

type orderDTO struct {
	Reference string    `json:"reference"`
	PlacedAt  time.Time `json:"placedAt"`
}

type checkoutDTO struct {
	Step       string              `json:"step"`
	StepNumber int                 `json:"stepNumber"`
	Processing bool                `json:"processing"`
	Form       domain.CheckoutForm `json:"form"`
	Items      []cartItemDTO       `json:"items"`
	Subtotal   moneyDTO            `json:"subtotal"`
	Shipping   moneyDTO            `json:"shipping"`
	Total      moneyDTO            `json:"total"`
	Order      *orderDTO           `json:"order,omitempty"`
}

func toMoneyDTO(m domain.Money) moneyDTO {
	return moneyDTO{Amount: m.Amount.StringFixed(2), Currency: m.Currency.String()}
}

func toProductDTO(p domain.Product) productDTO {
	info := p.Info()

	dto := productDTO{
		ID:           info.ID,
		Name:         info.Name,
		Category:     p.Category(),
		Price:        toMoneyDTO(info.Price),
		Image:        info.Image,
		ShortDesc:    info.ShortDesc,
		Description:  info.Description,
		Availability: string(info.Availability),
	}

	switch v := p.(type) {
	case domain.KitProduct:
		dto.Features = v.Features
	case domain.DrinkProduct:
		dto.Size = v.Size
		dto.Flavour = v.Flavour
		dto.Ingredients = v.Ingredients
		dto.FermentationNotes = v.FermentationNotes
		dto.Storage = v.Storage
		dto.Disclaimer = v.Disclaimer
	}

	return dto
}

func toProductDTOs(products []domain.Product) []productDTO {
	result := make([]productDTO, 0, len(products))
	for _, p := range products {
		result = append(result, toProductDTO(p))
	}
	return result
}

func toCartItemDTOs(items []domain.CartItem) []cartItemDTO {
	result := make([]cartItemDTO, 0, len(items))
	for _, item := range items {
		result = append(result, cartItemDTO{
			Product:   toProductDTO(item.Product),
			Quantity:  item.Quantity,
			LineTotal: toMoneyDTO(item.LineTotal()),
		})
	}
	return result
}

func toCartDTO(snap cart.Snapshot) cartDTO {
	return cartDTO{
		Items: toCartItemDTOs(snap.Items),
		Count: snap.Count,
		Total: toMoneyDTO(snap.Total),
	}
}

func toCheckoutDTO(view checkout.View) checkoutDTO {
	dto := checkoutDTO{
		Step:       view.Step.String(),
		StepNumber: int(view.Step),
		Processing: view.Processing,
		Form:       view.Form,
		Items:      toCartItemDTOs(view.Items),
		Subtotal:   toMoneyDTO(view.Subtotal),
		Shipping:   toMoneyDTO(view.Shipping),
		Total:      toMoneyDTO(view.Total),
	}

	if view.Order != nil {
		dto.Order = &orderDTO{
			Reference: view.Order.Reference,
			PlacedAt:  view.Order.PlacedAt,
		}
	}

	return dto
}
