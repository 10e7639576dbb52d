package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/application/services"
	"github.com/gbessoni/selfie-fm/domain"
	"github.com/gbessoni/selfie-fm/infrastructure/gin_interface/dto"
	"github.com/gbessoni/selfie-fm/middleware"
)

type AuthController interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type authController struct {
	logger   outbound.LoggerPort
	profiles outbound.ProfileStorePort
	sessions middleware.AuthHandler
	limiter  *services.LoginLimiter
}

func NewAuthController(
	logger outbound.LoggerPort,
	profiles outbound.ProfileStorePort,
	sessions middleware.AuthHandler,
	limiter *services.LoginLimiter,
) AuthController {
	return &authController{
		logger:   logger,
		profiles: profiles,
		sessions: sessions,
		limiter:  limiter,
	}
}

func (a *authController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if _, err := a.profiles.GetUserByUsername(c, username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username is taken"})
		return
	}

	user := domain.User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	}
	if err := a.profiles.SaveUser(c, user); err != nil {
		respondError(c, err)
		return
	}

	token, err := a.sessions.IssueToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SessionResponse{Token: token, UserID: user.ID})
}

func (a *authController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !a.limiter.Allow(username) {
		respondError(c, domain.Errorf(domain.ErrorRateLimited,
			"too many login attempts, try again later"))
		return
	}

	user, err := a.profiles.GetUserByUsername(c, username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	a.limiter.Reset(username)

	token, err := a.sessions.IssueToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Token: token, UserID: user.ID})
}

func (a *authController) RegisterRoutes(g *gin.Engine) {
	g.POST("/auth/signup", a.Signup)
	g.POST("/auth/login", a.Login)
}
