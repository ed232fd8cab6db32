package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a single invalid input field with a message ready
// to show the user. Validation happens before any backend call, so invalid
// input never leaves the process.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps field/tag pairs to user-facing messages. The first
// failing field wins, in struct order.
var fieldMessages = map[string]map[string]string{
	"Nome": {
		"required": "informe o nome",
	},
	"Email": {
		"required": "informe o e-mail",
		"contains": "e-mail inválido",
	},
	"Senha": {
		"required": "informe a senha",
		"min":      "a senha deve ter pelo menos 6 caracteres",
	},
	"Titulo": {
		"required": "informe o título",
	},
	"Descricao": {
		"required": "informe a descrição",
	},
	"Numero": {
		"required": "informe o número",
		"min":      "o número deve ser maior que zero",
	},
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	msg := "dados inválidos"
	if byTag, ok := fieldMessages[fe.StructField()]; ok {
		if m, ok := byTag[fe.Tag()]; ok {
			msg = m
		}
	}
	return &ValidationError{Field: fe.StructField(), Message: msg}
}
