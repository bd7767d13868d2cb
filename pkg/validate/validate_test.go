package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joimopro25-dot/allinstock-sub001/pkg/validate"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Type  string `json:"type" validate:"oneof=warehouse customer transit"`
}

func TestMessage_UsaNombresJSON(t *testing.T) {
	v := validate.New()
	err := v.Struct(sample{Email: "no-es-email", Type: "x"})
	require.Error(t, err)

	msg := validate.Message(err)
	assert.Contains(t, msg, "name: es obligatorio")
	assert.Contains(t, msg, "email: formato de email inválido")
	assert.Contains(t, msg, "type: debe ser uno de: warehouse customer transit")
}

func TestMessage_ErrorGenerico(t *testing.T) {
	assert.Equal(t, "boom", validate.Message(errors.New("boom")))
}

func TestNew_StructValido(t *testing.T) {
	assert.NoError(t, validate.New().Struct(sample{Name: "A", Type: "transit"}))
}
