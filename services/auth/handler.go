package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/zap"
)

// CaptchaVerifier gates login at the boundary. The lifecycle service
// itself never sees the captcha; it is a caller-supplied precondition.
type CaptchaVerifier interface {
	Enabled() bool
	Verify(id, answer string) bool
}

type Handler struct {
	service *Service
	captcha CaptchaVerifier
	config  *config.Config
	logger  *logging.Service
}

func NewHandler(service *Service, captcha CaptchaVerifier, cfg *config.Config, logger *logging.Service) *Handler {
	return &Handler{
		service: service,
		captcha: captcha,
		config:  cfg,
		logger:  logger,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CaptchaID     string `json:"captchaId"`
	CaptchaAnswer string `json:"captchaAnswer"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Password string `json:"password"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	result, err := h.service.Register(req.Email, req.Password, req.FirstName, req.LastName)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{
			"success":          true,
			"message":          "Registered. Check your email to verify your account.",
			"verificationSent": result.VerificationSent,
		})
	case errors.Is(err, ErrMissingField):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing email or password"})
	case errors.Is(err, ErrEmailInUse):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already in use"})
	case isValidationError(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		h.logger.Error("register failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
	}
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if h.captcha != nil && h.captcha.Enabled() {
		if !h.captcha.Verify(req.CaptchaID, req.CaptchaAnswer) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Captcha verification failed"})
		}
	}

	meta := &LoginMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	result, err := h.service.Login(req.Email, req.Password, meta)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, result)
	case errors.Is(err, ErrMissingField):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing email or password"})
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidPassword):
		// Deliberately indistinguishable: revealing which one failed
		// would confirm which addresses are registered.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, ErrEmailNotVerified):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Please verify your email address"})
	default:
		h.logger.Error("login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
	}
}

func (h *Handler) VerifyEmail(c echo.Context) error {
	err := h.service.VerifyEmail(c.Param("token"))
	switch {
	case err == nil:
		return c.Redirect(http.StatusFound, fmt.Sprintf("%s/verified.html", h.config.App.FrontendURL))
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return c.String(http.StatusBadRequest, "Invalid or expired verification link")
	default:
		h.logger.Error("verify email failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Server error")
	}
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var req forgotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	err := h.service.ForgotPassword(req.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"sent": true})
	case errors.Is(err, ErrMissingField):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing email"})
	default:
		h.logger.Error("forgot password failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
	}
}

func (h *Handler) ValidateResetToken(c echo.Context) error {
	valid, err := h.service.ValidateResetToken(c.Param("token"))
	if err != nil {
		h.logger.Error("reset token validation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"valid": false})
	}
	if !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"valid": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	err := h.service.ResetPassword(c.Param("token"), req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	case errors.Is(err, ErrMissingField):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing password"})
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired token"})
	case isValidationError(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		h.logger.Error("reset password failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
	}
}

func isValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
