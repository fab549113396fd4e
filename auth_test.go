package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	r := setupTestApp(t)

	w := performRequest(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "anna@example.com",
		"password": "password123",
		"name":     "Anna",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeMap(t, w)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", user["email"])
	assert.Equal(t, "Anna", user["name"])
	assert.NotEmpty(t, user["id"])
	assert.NotEmpty(t, user["createdAt"])
	assert.NotContains(t, user, "password")

	// The stored password is a hash, not the plaintext.
	var stored User
	require.NoError(t, DB.First(&stored, "email = ?", "anna@example.com").Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestSignupMissingFields(t *testing.T) {
	r := setupTestApp(t)

	w := performRequest(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "anna@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decodeMap(t, w)["message"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := setupTestApp(t)

	payload := map[string]string{
		"email":    "anna@example.com",
		"password": "password123",
		"name":     "Anna",
	}

	w := performRequest(r, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already in use", decodeMap(t, w)["message"])

	var count int64
	require.NoError(t, DB.Model(&User{}).Where("email = ?", "anna@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	r := setupTestApp(t)
	createTestUser(t, "anna@example.com", "Anna")

	w := performRequest(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "anna@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.NotEmpty(t, body["authToken"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", user["email"])
	assert.NotContains(t, user, "password")

	// The issued token is accepted by the verify endpoint.
	token := body["authToken"].(string)
	w = performRequest(r, http.MethodGet, "/api/auth/verify", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginSameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	r := setupTestApp(t)
	createTestUser(t, "anna@example.com", "Anna")

	unknown := performRequest(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	wrongPass := performRequest(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "anna@example.com",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
	assert.Equal(t, "Invalid credentials", decodeMap(t, wrongPass)["message"])
}

func TestLoginMissingFields(t *testing.T) {
	r := setupTestApp(t)

	w := performRequest(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "anna@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", decodeMap(t, w)["message"])
}

func TestVerifyUserDeletedAfterIssuance(t *testing.T) {
	r := setupTestApp(t)
	user, token := createTestUser(t, "anna@example.com", "Anna")

	require.NoError(t, DB.Delete(&User{}, "id = ?", user.ID).Error)

	w := performRequest(r, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeMap(t, w)["message"])
}

func TestAuthMiddlewareRejectsBeforeStoreAccess(t *testing.T) {
	r := setupTestApp(t)

	// With no database at all, a 401 proves the middleware never reached a
	// handler; any store access would panic into a 500.
	DB = nil

	w := performRequest(r, http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", decodeMap(t, w)["message"])

	w = performRequest(r, http.MethodGet, "/api/events", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", decodeMap(t, w)["message"])
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r := setupTestApp(t)
	user, _ := createTestUser(t, "anna@example.com", "Anna")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte(AppConfig.TokenSecret))
	require.NoError(t, err)

	w := performRequest(r, http.MethodGet, "/api/auth/verify", tokenString, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", decodeMap(t, w)["message"])
}

func TestAuthMiddlewareRejectsWrongSignature(t *testing.T) {
	r := setupTestApp(t)
	user, _ := createTestUser(t, "anna@example.com", "Anna")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	w := performRequest(r, http.MethodGet, "/api/auth/verify", tokenString, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateTokenClaims(t *testing.T) {
	setupTestApp(t)

	tokenString, err := GenerateToken("user-1", "anna@example.com")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(AppConfig.TokenSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", claims["userId"])
	assert.Equal(t, "anna@example.com", claims["email"])

	exp := int64(claims["exp"].(float64))
	expected := time.Now().Add(tokenLifetime).Unix()
	assert.InDelta(t, expected, exp, 60)
}
