package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupDuplicateEmail(t *testing.T) {
	r, _ := newTestEnv(t, nil)

	signup(t, r, "landlord@example.com")

	w := doJSON(r, "POST", "/api/signup",
		`{"username":"other","first_name":"Other","last_name":"User","email":"landlord@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email")
}

func TestSignupRejectsShortPassword(t *testing.T) {
	r, _ := newTestEnv(t, nil)

	w := doJSON(r, "POST", "/api/signup",
		`{"username":"u","first_name":"A","last_name":"B","email":"a@example.com","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestEnv(t, nil)

	signup(t, r, "landlord@example.com")

	w := doJSON(r, "POST", "/api/login",
		`{"email":"landlord@example.com","password":"wrong-password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginTouchesLastLogin(t *testing.T) {
	r, st := newTestEnv(t, nil)

	signup(t, r, "landlord@example.com")

	w := doJSON(r, "POST", "/api/login",
		`{"email":"landlord@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	user, err := st.UserByEmail(context.Background(), "landlord@example.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestUnauthenticatedBrowserRouteRedirectsToLogin(t *testing.T) {
	r, _ := newTestEnv(t, nil)

	w := doGet(r, "/properties", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestUnauthenticatedAPIRouteGets401(t *testing.T) {
	r, _ := newTestEnv(t, nil)

	w := doGet(r, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthenticatedMutationNeverProceeds(t *testing.T) {
	r, st := newTestEnv(t, nil)

	token := signup(t, r, "landlord@example.com")
	user, err := st.UserByEmail(context.Background(), "landlord@example.com")
	require.NoError(t, err)

	// No token: the renter must not be created
	w := postForm(r, "/add_renter", url.Values{
		"first_name": {"Rita"},
		"last_name":  {"Renter"},
		"email":      {"rita@example.com"},
		"phone":      {"555-0100"},
	}, "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")

	renters, err := st.RentersByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, renters)

	// Sanity check: the same form with a token works
	w = postForm(r, "/add_renter", url.Values{
		"first_name": {"Rita"},
		"last_name":  {"Renter"},
		"email":      {"rita@example.com"},
		"phone":      {"555-0100"},
	}, token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/renters", w.Header().Get("Location"))
}

func TestMeIncludesCounts(t *testing.T) {
	r, _ := newTestEnv(t, nil)

	token := signup(t, r, "landlord@example.com")

	w := postForm(r, "/add_property", url.Values{
		"street": {"123 Main St"},
		"city":   {"Austin"},
		"state":  {"TX"},
		"zip":    {"78701"},
	}, token)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = postForm(r, "/add_renter", url.Values{
		"first_name": {"Rita"},
		"last_name":  {"Renter"},
		"email":      {"rita@example.com"},
		"phone":      {"555-0100"},
	}, token)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = doGet(r, "/api/me", token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Email         string `json:"email"`
		PropertyCount int    `json:"property_count"`
		RenterCount   int    `json:"renter_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "landlord@example.com", resp.Email)
	assert.Equal(t, 1, resp.PropertyCount)
	assert.Equal(t, 1, resp.RenterCount)
}

func TestLoginPageSurfacesNotice(t *testing.T) {
	r, _ := newTestEnv(t, nil)

	w := doGet(r, "/login?notice=You+must+be+logged+in", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You must be logged in")
}
