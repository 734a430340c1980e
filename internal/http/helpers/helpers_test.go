package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
)

type loginIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func req(body, ct string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if ct != "" {
		r.Header.Set("Content-Type", ct)
	}
	return r
}

func TestReadJSON(t *testing.T) {
	var in loginIn
	err := ReadJSON(httptest.NewRecorder(), req(`{"email":"a@b.co","password":"x","extra":1}`, "application/json; charset=utf-8"), &in)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", in.Email)

	err = ReadJSON(httptest.NewRecorder(), req(`{"email":`, "application/json"), &in)
	assert.Equal(t, "INVALID_JSON", httperrors.FromError(err).Code)

	err = ReadJSON(httptest.NewRecorder(), req(`email=a`, "text/plain"), &in)
	assert.Equal(t, 415, httperrors.FromError(err).HTTPStatus)

	var empty loginIn
	err = ReadJSON(httptest.NewRecorder(), req(``, "application/json"), &empty)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "email", verrs[0].Field())
}

func TestReadJSON_TooLarge(t *testing.T) {
	big := `{"email":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	var in loginIn
	err := ReadJSON(httptest.NewRecorder(), req(big, "application/json"), &in)
	assert.Equal(t, "BODY_TOO_LARGE", httperrors.FromError(err).Code)
}

func TestReadForm(t *testing.T) {
	form, err := ReadForm(httptest.NewRecorder(), req("username=a%40b.co&password=pw", "application/x-www-form-urlencoded"))
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", form.Get("username"))
	assert.True(t, IsForm(req("", "application/x-www-form-urlencoded")))
	assert.False(t, IsForm(req("", "application/json")))
}

func TestValidRedirect(t *testing.T) {
	assert.True(t, ValidRedirect(""))
	assert.True(t, ValidRedirect("https://app.example.com/cb"))
	assert.False(t, ValidRedirect("javascript:alert(1)"))
	assert.False(t, ValidRedirect("/relative"))
}
