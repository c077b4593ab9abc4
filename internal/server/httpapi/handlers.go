package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devops25/userauth/internal/common"
)

type authRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	University string `json:"university,omitempty"`
}

type authResponse struct {
	Message  string `json:"message,omitempty"`
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.auth.Register(c.Request.Context(), req.Username, req.Password, req.University)
	if err != nil {
		if errors.Is(err, common.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// A taken username is reported as a normal response, not a conflict.
	c.JSON(http.StatusOK, authResponse{Message: result.Message, Username: result.Username})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, common.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message:  "Login successful",
		Username: result.Username,
		Token:    result.Token,
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	tokenString, ok := bearerToken(c.Request)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	// Succeeds regardless of whether the token was still valid.
	s.sessions.Logout(c.Request.Context(), tokenString)

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": c.GetString(usernameKey)})
}
