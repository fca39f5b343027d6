package validatorx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email_shape"`
	Password string   `json:"password" validate:"required,min=6"`
	State    string   `json:"condition_state" validate:"omitempty,oneof=new good"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

func TestValidateStruct_Describe(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name string
		in   sample
		want string
	}{
		{"missing name", sample{Email: "a@b.co", Password: "secret1"}, "name is required"},
		{"bad email", sample{Name: "A", Email: "a@b", Password: "secret1"}, "Invalid email format"},
		{"spaces in email", sample{Name: "A", Email: "a b@c.de", Password: "secret1"}, "Invalid email format"},
		{"short password", sample{Name: "A", Email: "a@b.co", Password: "12345"}, "password must be at least 6 characters"},
		{"bad enum", sample{Name: "A", Email: "a@b.co", Password: "secret1", State: "broken"}, "condition_state must be one of: new good"},
		{"negative price", sample{Name: "A", Email: "a@b.co", Password: "secret1", Price: &neg}, "price must be at least 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			assert.Error(t, err)
			assert.Equal(t, tt.want, Describe(err))
		})
	}

	assert.NoError(t, ValidateStruct(&sample{Name: "A", Email: "a@test.com", Password: "secret1", State: "good"}))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("a@test.com"))
	assert.False(t, IsEmail("a@test"))
	assert.False(t, IsEmail("@test.com"))
	assert.False(t, IsEmail(""))
}
