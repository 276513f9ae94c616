package captcha

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Generate(c echo.Context) error {
	id, image, err := h.service.Generate()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"captchaId": id,
		"image":     image,
	})
}

type verifyRequest struct {
	CaptchaID string `json:"captchaId"`
	Input     string `json:"input"`
}

func (h *Handler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if !h.service.Verify(req.CaptchaID, req.Input) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
