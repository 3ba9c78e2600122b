package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/zini-storefront/internal/domain"
)

// DetailsInput is the step 1 form. Address fields are only required for delivery.
type DetailsInput struct {
	FirstName      string                `json:"firstName" validate:"required"`
	LastName       string                `json:"lastName" validate:"required"`
	Email          string                `json:"email" validate:"required,email"`
	Phone          string                `json:"phone" validate:"required"`
	ShippingMethod domain.ShippingMethod `json:"shippingMethod" validate:"required,oneof=pickup delivery"`
	Address        string                `json:"address" validate:"required_if=ShippingMethod delivery"`
	City           string                `json:"city" validate:"required_if=ShippingMethod delivery"`
	Province       string                `json:"province" validate:"required_if=ShippingMethod delivery"`
	PostalCode     string                `json:"postalCode" validate:"required_if=ShippingMethod delivery"`
}

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}

func trimDetails(in DetailsInput) DetailsInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Province = strings.TrimSpace(in.Province)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	return in
}
