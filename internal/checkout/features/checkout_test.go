package features

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/nikolayk812/zini-storefront/internal/cart"
	"github.com/nikolayk812/zini-storefront/internal/checkout"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/localstore"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type checkoutTestContext struct {
	dir       string
	store     *cart.Store
	session   *checkout.Session
	beginErr  error
	detailErr error
	placeErrs []error
}

func (c *checkoutTestContext) reset(dir string) {
	if c.session != nil {
		c.session.Close()
	}
	*c = checkoutTestContext{dir: dir}
}

func (c *checkoutTestContext) anEmptyCart() error {
	storage, err := localstore.New(c.dir)
	if err != nil {
		return err
	}

	c.store, err = cart.New(context.Background(), storage, "zini-cart", currency.ZAR, zap.NewNop())
	return err
}

func (c *checkoutTestContext) iAddOfProductPriced(qty int, id string, price int) error {
	product := domain.DrinkProduct{
		ProductInfo: domain.ProductInfo{
			ID:    id,
			Name:  "Raw Kombucha " + id,
			Price: domain.NewMoney(int64(price), currency.ZAR),
		},
	}
	return c.store.AddItem(context.Background(), product, qty)
}

func (c *checkoutTestContext) iRemoveProduct(id string) error {
	return c.store.RemoveItem(context.Background(), id)
}

func (c *checkoutTestContext) iSetTheQuantityOfTo(id string, qty int) error {
	return c.store.SetQuantity(context.Background(), id, qty)
}

func (c *checkoutTestContext) theCartCountIsAndTheTotalIs(count, total int) error {
	if got := c.store.Count(); got != count {
		return fmt.Errorf("expected count %d, got %d", count, got)
	}
	if got := c.store.Total().Amount; !got.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected total %d, got %s", total, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartHasLineWithQuantity(lines, qty int) error {
	items := c.store.Items()
	if len(items) != lines {
		return fmt.Errorf("expected %d lines, got %d", lines, len(items))
	}
	if items[0].Quantity != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, items[0].Quantity)
	}
	return nil
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	if !c.store.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d lines", len(c.store.Items()))
	}
	return nil
}

func (c *checkoutTestContext) iStartCheckout() error {
	c.session, c.beginErr = checkout.Begin(c.store, checkout.Options{
		ProcessingDelay: 20 * time.Millisecond,
		Logger:          zap.NewNop(),
	})
	return nil
}

func (c *checkoutTestContext) checkoutWasRefusedBecauseTheCartIsEmpty() error {
	if !errors.Is(c.beginErr, checkout.ErrEmptyCart) {
		return fmt.Errorf("expected ErrEmptyCart, got %v", c.beginErr)
	}
	return nil
}

func (c *checkoutTestContext) iChooseShipping(method string) error {
	return c.session.SelectShipping(domain.ShippingMethod(method))
}

func (c *checkoutTestContext) theOrderTotalIs(total int) error {
	if got := c.session.View().Total.Amount; !got.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected order total %d, got %s", total, got)
	}
	return nil
}

func (c *checkoutTestContext) iSubmitPickupDetailsWithEmail(email string) error {
	c.detailErr = c.session.SubmitDetails(checkout.DetailsInput{
		FirstName:      "Thandi",
		LastName:       "Mkhize",
		Email:          email,
		Phone:          "+27 35 340 1234",
		ShippingMethod: domain.ShippingPickup,
	})
	return nil
}

func (c *checkoutTestContext) theDetailsWereRejectedFor(field string) error {
	var verr *checkout.ValidationError
	if !errors.As(c.detailErr, &verr) {
		return fmt.Errorf("expected validation error, got %v", c.detailErr)
	}
	for _, f := range verr.Fields {
		if f == field {
			return nil
		}
	}
	return fmt.Errorf("field %q not in %v", field, verr.Fields)
}

func (c *checkoutTestContext) iChoosePayment(method string) error {
	return c.session.SubmitPayment(domain.PaymentMethod(method))
}

func (c *checkoutTestContext) iPlaceTheOrder() error {
	c.placeErrs = append(c.placeErrs, c.session.PlaceOrder())
	return nil
}

func (c *checkoutTestContext) theSecondPlacementWasRejectedAsAlreadyProcessing() error {
	if len(c.placeErrs) != 2 {
		return fmt.Errorf("expected 2 placements, got %d", len(c.placeErrs))
	}
	if c.placeErrs[0] != nil {
		return fmt.Errorf("first placement failed: %w", c.placeErrs[0])
	}
	if !errors.Is(c.placeErrs[1], checkout.ErrProcessing) {
		return fmt.Errorf("expected ErrProcessing, got %v", c.placeErrs[1])
	}
	return nil
}

func (c *checkoutTestContext) processingFinishes() error {
	select {
	case <-c.session.Done():
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("order placement did not finish")
	}
}

func (c *checkoutTestContext) theCheckoutStepIs(step string) error {
	if got := c.session.Step().String(); got != step {
		return fmt.Errorf("expected step %s, got %s", step, got)
	}
	return nil
}

func (c *checkoutTestContext) anOrderReferenceIsShown() error {
	order := c.session.View().Order
	if order == nil || order.Reference == "" {
		return errors.New("expected an order reference")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext, t *testing.T) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset(t.TempDir())
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.session != nil {
			tc.session.Close()
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	// When steps
	ctx.Step(`^I add (\d+) of product "([^"]*)" priced (\d+)$`, tc.iAddOfProductPriced)
	ctx.Step(`^I remove product "([^"]*)"$`, tc.iRemoveProduct)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfTo)
	ctx.Step(`^I start checkout$`, tc.iStartCheckout)
	ctx.Step(`^I choose "([^"]*)" shipping$`, tc.iChooseShipping)
	ctx.Step(`^I submit pickup details with email "([^"]*)"$`, tc.iSubmitPickupDetailsWithEmail)
	ctx.Step(`^I choose "([^"]*)" payment$`, tc.iChoosePayment)
	ctx.Step(`^I place the order$`, tc.iPlaceTheOrder)
	ctx.Step(`^processing finishes$`, tc.processingFinishes)

	// Then steps
	ctx.Step(`^the cart count is (\d+) and the total is (\d+)$`, tc.theCartCountIsAndTheTotalIs)
	ctx.Step(`^the cart has (\d+) line with quantity (\d+)$`, tc.theCartHasLineWithQuantity)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^checkout was refused because the cart is empty$`, tc.checkoutWasRefusedBecauseTheCartIsEmpty)
	ctx.Step(`^the order total is (\d+)$`, tc.theOrderTotalIs)
	ctx.Step(`^the checkout step is "([^"]*)"$`, tc.theCheckoutStepIs)
	ctx.Step(`^the details were rejected for "([^"]*)"$`, tc.theDetailsWereRejectedFor)
	ctx.Step(`^the second placement was rejected as already processing$`, tc.theSecondPlacementWasRejectedAsAlreadyProcessing)
	ctx.Step(`^an order reference is shown$`, tc.anOrderReferenceIsShown)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			InitializeScenario(ctx, t)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
