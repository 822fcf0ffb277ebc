package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jafar777/exte/models"
	"github.com/Jafar777/exte/testutil"
)

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := testutil.SetupServer(t)

	w := testutil.Do(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"firstName": "Amal",
		"lastName":  "Haddad",
		"email":     "Amal@Example.com",
		"password":  "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg authResponse
	testutil.Decode(t, w, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "amal@example.com", reg.User.Email, "email is normalized")
	assert.Equal(t, models.RoleUser, reg.User.Role)

	// the hash never leaves the server
	assert.NotContains(t, w.Body.String(), "PasswordHash")
	assert.NotContains(t, w.Body.String(), "correct-horse")

	// duplicate email
	w = testutil.Do(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"firstName": "Other",
		"lastName":  "Person",
		"email":     "amal@example.com",
		"password":  "another-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "amal@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login authResponse
	testutil.Decode(t, w, &login)
	assert.NotEmpty(t, login.Token)

	// the issued token is accepted by the middleware
	w = testutil.Do(t, r, http.MethodGet, "/cart", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	r, _ := testutil.SetupServer(t)

	w := testutil.Do(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"firstName": "Amal", "lastName": "Haddad",
		"email": "amal@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.Do(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email": "amal@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email": "nobody@example.com", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	r, _ := testutil.SetupServer(t)

	w := testutil.Do(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"firstName": "Amal", "lastName": "Haddad",
		"email": "not-an-email", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"firstName": "Amal", "lastName": "Haddad",
		"email": "amal@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
