package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"nullable,in=customer,admin"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(registerInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	assert.False(t, HasErrors(errs), "%v", errs)
}

func TestStructCollectsFieldErrors(t *testing.T) {
	errs := Struct(registerInput{
		Name:     "A",
		Email:    "not-an-email",
		Password: "x",
	})

	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestNullableSkipsEmptyField(t *testing.T) {
	errs := Struct(registerInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     "",
	})
	assert.NotContains(t, errs, "role")
}

func TestInRuleWithMultipleValues(t *testing.T) {
	ok := Struct(registerInput{
		Name: "Asha", Email: "a@b.co", Password: "secret123", Role: "admin",
	})
	assert.NotContains(t, ok, "role")

	bad := Struct(registerInput{
		Name: "Asha", Email: "a@b.co", Password: "secret123", Role: "root",
	})
	assert.Contains(t, bad, "role")
}

func TestNumericMin(t *testing.T) {
	type item struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}

	assert.Contains(t, Struct(item{Quantity: 0}), "quantity")
	assert.NotContains(t, Struct(item{Quantity: 2}), "quantity")
}

func TestPointerStruct(t *testing.T) {
	errs := Struct(&registerInput{Name: "Asha", Email: "a@b.co", Password: "secret123"})
	assert.False(t, HasErrors(errs))
}
