package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"mataro/middleware"
	"mataro/models"
	"mataro/users"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (a *API) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	user, err := a.Users.Register(ctx, req.Email, req.Password)
	if errors.Is(err, users.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use", "code": "CONFLICT"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	a.issueToken(c, http.StatusCreated, user)
}

func (a *API) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	user, err := a.Users.Authenticate(ctx, req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password", "code": "UNAUTHORIZED"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	a.issueToken(c, http.StatusOK, user)
}

func (a *API) issueToken(c *gin.Context, status int, user *models.User) {
	claims := &middleware.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.JWTSecret))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(status, gin.H{
		"token":    signed,
		"userId":   user.ID,
		"username": user.Username,
	})
}
