package exception

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorParamSubstitution(t *testing.T) {
	err := CustomError{
		Status:  404,
		Code:    EntityNotFound,
		Message: EntityNotFoundMsg,
		Params:  map[string]interface{}{"entity": "shell", "id": "abc-123"},
	}
	assert.Equal(t, "shell with id abc-123 is not found", err.Error())
}

func TestCustomErrorWithoutParams(t *testing.T) {
	err := CustomError{Status: 400, Code: BadRequestBody, Message: BadRequestBodyMsg}
	assert.Equal(t, "Failed to decode body", err.Error())
}
