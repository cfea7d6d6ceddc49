package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCode(t *testing.T) {
	base := NotFound("snapshot")
	wrapped := Wrap(base, "failed to load dataset")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.Equal(t, "failed to load dataset: snapshot not found", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	wrapped := Wrapf(cause, "reading %s", "data.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, cause))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", InvalidInput("year must be numeric"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("bad"), http.StatusBadRequest},
		{NotFound("country"), http.StatusNotFound},
		{Unprocessable("overlay"), http.StatusUnprocessableEntity},
		{Unavailable("loading"), http.StatusServiceUnavailable},
		{DatabaseError("down", nil), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeDatasetError, fmt.Errorf("row 3: missing year"))
	assert.Equal(t, CodeDatasetError, GetCode(err))
	assert.Nil(t, WithCode(CodeDatasetError, nil))
}
