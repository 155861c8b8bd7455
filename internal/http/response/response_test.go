package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sole-app/sole-backend/internal/apperr"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("bad dob: %w", apperr.ErrValidation), http.StatusUnprocessableEntity},
		{fmt.Errorf("no event: %w", apperr.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("email taken: %w", apperr.ErrConflict), http.StatusConflict},
		{fmt.Errorf("stripe: %w", apperr.ErrDependency), http.StatusBadGateway},
		{errors.New("db error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFromError(tt.err))
	}
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Username string `validate:"required,min=3"`
	}

	v := validator.New()
	err := v.Struct(form{Email: "not-an-email", Username: ""})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Username is a required field")
}
