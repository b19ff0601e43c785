package controller

import (
	"context"
	"net/http"

	"github.com/maximthomas/meetnow-auth/pkg/authn"
	"github.com/maximthomas/meetnow-auth/pkg/credentials"
	"github.com/maximthomas/meetnow-auth/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const invalidCredentialsMessage = "Invalid email or password"

// Authenticator checks an email and password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (credentials.Credential, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status      string   `json:"status"`
	Identity    string   `json:"identity"`
	Authorities []string `json:"authorities"`
}

// LoginController rest controller for email and password login
type LoginController struct {
	auth   Authenticator
	logger logrus.FieldLogger
}

// Login gin handler function
func (l *LoginController) Login(c *gin.Context) {
	logger := middleware.RequestLogger(c, l.logger)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warnf("error binding json body %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	cred, err := l.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, authn.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "error": invalidCredentialsMessage})
		return
	case err != nil:
		logger.Errorf("authentication error %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail"})
		return
	}

	logger.WithField("identity", cred.Identity).Info("authentication succeeded")
	c.JSON(http.StatusOK, loginResponse{
		Status:      "success",
		Identity:    cred.Identity,
		Authorities: cred.Authorities,
	})
}

func NewLoginController(auth Authenticator, logger logrus.FieldLogger) *LoginController {
	return &LoginController{
		auth:   auth,
		logger: logger.WithField("module", "LoginController"),
	}
}

// Health reports that the service is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
