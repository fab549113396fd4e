package main

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 7 * 24 * time.Hour

// GenerateToken issues an HS256-signed credential embedding the user's
// identity, valid for seven days.
func GenerateToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(AppConfig.TokenSecret))
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ========================
// SIGNUP HANDLER
// ========================

func Signup(c *gin.Context) {
	var body SignupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if body.Email == "" || body.Password == "" || body.Name == "" {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	var existing User
	err := DB.Where("email = ?", body.Email).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusBadRequest, "Email already in use")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Signup error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Signup error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	user := User{
		Email:    body.Email,
		Password: string(hash),
		Name:     body.Name,
	}

	if err := DB.Create(&user).Error; err != nil {
		log.Printf("Signup error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

// ========================
// LOGIN HANDLER
// ========================

func Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if body.Email == "" || body.Password == "" {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user User
	if err := DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password so callers cannot tell which
			// part failed.
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Login error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error logging in")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("Login error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error logging in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authToken": token,
		"user":      toUserResponse(user),
	})
}

// ========================
// VERIFY HANDLER
// ========================

// Verify re-fetches the authenticated user; the account may have been
// deleted after the token was issued.
func Verify(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	var user User
	if err := DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Verify error: %v", err)
		respondError(c, http.StatusInternalServerError, "Error verifying token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
