package domain

type Category string

const (
	CategoryKit   Category = "kit"
	CategoryDrink Category = "drink"
)

type Availability string

const (
	InStock  Availability = "In Stock"
	LowStock Availability = "Low Stock"
	SoldOut  Availability = "Sold Out"
)

// Product is implemented by KitProduct and DrinkProduct only.
type Product interface {
	Info() ProductInfo
	Category() Category

	isProduct()
}

type ProductInfo struct {
	ID           string
	Name         string
	Price        Money
	Image        string
	ShortDesc    string
	Description  string
	Availability Availability
}

type KitProduct struct {
	ProductInfo
	Features []string
}

func (p KitProduct) Info() ProductInfo { return p.ProductInfo }
func (p KitProduct) Category() Category { return CategoryKit }
func (KitProduct) isProduct() {}

type DrinkProduct struct {
	ProductInfo
	Size              string
	Flavour           string
	Ingredients       []string
	FermentationNotes string
	Storage           string
	Disclaimer        string
}

func (p DrinkProduct) Info() ProductInfo { return p.ProductInfo }
func (p DrinkProduct) Category() Category { return CategoryDrink }
func (DrinkProduct) isProduct() {}

type Flavour struct {
	ID       string
	Name     string
	Subtitle string
	Desc     string
	Icon     string
}

type Size struct {
	Label string
	Price Money
}
