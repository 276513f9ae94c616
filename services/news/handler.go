package news

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/zap"
)

type Handler struct {
	client *Client
	logger *logging.Service
}

func NewHandler(client *Client, logger *logging.Service) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Get proxies GET /news?q=keyword&page=1&pageSize=12 to the upstream
// API and forwards the response as-is.
func (h *Handler) Get(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	result, err := h.client.Fetch(c.Request().Context(), c.QueryParam("q"), page, pageSize)
	if err != nil {
		h.logger.Error("news proxy failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "news_fetch_failed"})
	}

	return c.JSONBlob(result.StatusCode, result.Body)
}
