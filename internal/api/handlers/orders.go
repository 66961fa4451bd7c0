package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/service"
)

// HandleGetOrderBySession handles GET /v1/orders/session/:session_id.
// The first call after a successful checkout records the order.
func HandleGetOrderBySession(repos *repository.Repositories, gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderService := service.NewOrderService(repos.Order, gateway, logger)
		order, err := orderService.RecordFromSession(c.Request.Context(), c.Param("session_id"))
		if err != nil {
			respondError(c, logger, err, "failed to retrieve order details")
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}
