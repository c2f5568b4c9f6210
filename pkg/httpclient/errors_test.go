package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/neetharmaliackal/fittrack-pro-02/pkg/errors"
)

func makeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_DetailShape(t *testing.T) {
	resp := makeResponse(http.StatusBadRequest, `{"detail":"Invalid credentials"}`)

	err := ParseResponseError(resp, "request failed")
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestParseResponseError_FieldMapShape(t *testing.T) {
	body := `{"username":["A user with that username already exists."],"email":["Enter a valid email address.","This field may not be blank."]}`
	resp := makeResponse(http.StatusBadRequest, body)

	err := ParseResponseError(resp, "request failed")
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	// Fields are flattened in sorted field order.
	assert.Equal(t,
		"Enter a valid email address., This field may not be blank., A user with that username already exists.",
		apiErr.Message)
}

func TestParseResponseError_UnparseableBody(t *testing.T) {
	resp := makeResponse(http.StatusInternalServerError, `<html>gateway timeout</html>`)

	err := ParseResponseError(resp, "failed to create activity")
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "failed to create activity", apiErr.Message)
	assert.True(t, errors.Is(err, apperrors.ErrRemote))
}

func TestParseResponseError_EmptyBody(t *testing.T) {
	resp := makeResponse(http.StatusBadGateway, "")

	err := ParseResponseError(resp, "fallback message")
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "fallback message", apiErr.Message)
}

func TestParseResponseError_401MapsToUnauthorized(t *testing.T) {
	resp := makeResponse(http.StatusUnauthorized, `{"detail":"Given token not valid for any token type"}`)

	err := ParseResponseError(resp, "request failed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestErrorMessage_PrefersDetail(t *testing.T) {
	msg := errorMessage([]byte(`{"detail":"No active account found with the given credentials"}`))
	assert.Equal(t, "No active account found with the given credentials", msg)
}

func TestErrorMessage_SingleField(t *testing.T) {
	msg := errorMessage([]byte(`{"password":["This password is too common."]}`))
	assert.Equal(t, "This password is too common.", msg)
}

func TestErrorMessage_UnknownShape(t *testing.T) {
	assert.Empty(t, errorMessage([]byte(`42`)))
	assert.Empty(t, errorMessage([]byte(`"just a string"`)))
	assert.Empty(t, errorMessage([]byte(`{}`)))
	assert.Empty(t, errorMessage([]byte(`not json at all`)))
}

func TestFlattenFieldErrors_Deterministic(t *testing.T) {
	fields := map[string][]string{
		"b_field": {"second"},
		"a_field": {"first"},
	}
	assert.Equal(t, "first, second", flattenFieldErrors(fields))
}
