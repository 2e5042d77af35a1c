package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ksarmiento/blog-backend/internal/config"
	"github.com/ksarmiento/blog-backend/internal/database/model"
	"github.com/ksarmiento/blog-backend/internal/database/store"
	"github.com/ksarmiento/blog-backend/internal/http/middleware"
	"github.com/ksarmiento/blog-backend/internal/token"
	"github.com/ksarmiento/blog-backend/internal/util"
)

// ResetMailer delivers password-reset links. Satisfied by mail.Mailer.
type ResetMailer interface {
	SendResetLink(to, link string) error
}

type AuthHandler struct {
	users  *store.Users
	maker  *token.JWTMaker
	mailer ResetMailer
	cfg    *config.Config
}

func NewAuthHandler(users *store.Users, maker *token.JWTMaker, mailer ResetMailer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users:  users,
		maker:  maker,
		mailer: mailer,
		cfg:    cfg,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	_, err := h.users.ByEmail(req.Email)
	if err == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "User with this email already exists",
		})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotImplemented, gin.H{"message": "Internal server error"})
		return
	}

	hash, err := util.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		c.JSON(http.StatusNotImplemented, gin.H{"message": "Internal server error"})
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}
	if err := h.users.Create(user); err != nil {
		slog.Error("Failed to create user", "error", err)
		c.JSON(http.StatusNotImplemented, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User saved successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// Unknown email and wrong password answer identically so the
	// endpoint cannot be used to enumerate accounts.
	user, err := h.users.ByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := util.CheckPasswordHash(req.Password, user.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect email or password"})
		return
	}

	tokenStr, _, err := h.maker.CreateSessionToken(user.ID, user.Email, user.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.SetCookie(
		middleware.SessionCookie,
		tokenStr,
		int(token.SessionDuration.Seconds()),
		"/",
		"",
		false,
		true,
	)
	c.JSON(http.StatusOK, gin.H{
		"id":   user.ID,
		"name": user.Name,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User with this Email not exist"})
		return
	}

	user, err := h.users.ByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User with this Email not exist"})
		return
	}

	tokenStr, _, err := h.maker.CreateResetToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	link := fmt.Sprintf("%s/%d/%s", h.cfg.ResetURL, user.ID, tokenStr)
	if err := h.mailer.SendResetLink(user.Email, link); err != nil {
		slog.Error("Failed to send reset mail", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Email not sent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	claims, err := h.maker.VerifyToken(c.Param("token"))
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Token expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error: invalid token"})
		return
	}

	hash, err := util.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := h.users.UpdatePassword(claims.ID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Password not updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password successfully updated"})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	c.JSON(http.StatusOK, claims)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "User logout successfully"})
}
