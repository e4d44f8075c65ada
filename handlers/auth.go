package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"rentbook/middleware"
	"rentbook/models"
	"rentbook/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

type SignupInput struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID, err := h.store.CreateUser(c.Request.Context(), models.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
	})

	if errors.Is(err, store.ErrDuplicateEmail) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "field": "email"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, _ := generateToken(userID, input.Email)
	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"token": token, "redirect": "/properties"})
}

func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Best effort, not worth failing the login over
	_ = h.store.TouchLastLogin(c.Request.Context(), user.ID, h.now())

	token, _ := generateToken(user.ID, user.Email)
	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "redirect": "/properties"})
}

// LoginPage is the landing target for unauthenticated redirects. Templating
// is out of scope, so it just surfaces the notice.
func (h *Handlers) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notice": c.Query("notice")})
}

func (h *Handlers) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Enrich with counts
	var response struct {
		models.User
		PropertyCount int `json:"property_count"`
		RenterCount   int `json:"renter_count"`
	}
	response.User = user

	if properties, err := h.store.PropertiesByOwner(c.Request.Context(), userID); err == nil {
		response.PropertyCount = len(properties)
	}
	if renters, err := h.store.RentersByOwner(c.Request.Context(), userID); err == nil {
		response.RenterCount = len(renters)
	}

	c.JSON(http.StatusOK, response)
}

func generateToken(id int64, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id,
		"email":   email,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(),
	})
	return token.SignedString(jwtSecret())
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie("rentbook_jwt", token, 3600*24*7, "/", "", false, true) // HttpOnly=true, Secure=false (dev)
}
