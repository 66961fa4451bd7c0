package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/api/middleware"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/service"
)

// HandleListCustomers handles GET /v1/admin/customers
func HandleListCustomers(gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.ListCustomersQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
			return
		}

		customerService := service.NewCustomerService(gateway, logger)
		records, err := customerService.ListCustomers(c.Request.Context(), q)
		if err != nil {
			respondError(c, logger, err, "failed to fetch customers")
			return
		}

		resp := make([]CustomerResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, toCustomerResponse(r))
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleCustomerStats handles GET /v1/admin/customers/stats
func HandleCustomerStats(gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := service.NewCustomerService(gateway, logger).Stats(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "failed to fetch customer stats")
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(repos *repository.Repositories, gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderService := service.NewOrderService(repos.Order, gateway, logger)
		orders, err := orderService.List(c.Request.Context(), c.Query("status"))
		if err != nil {
			respondError(c, logger, err, "failed to fetch orders")
			return
		}

		resp := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toOrderResponse(o))
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": resp,
			"count":  len(resp),
		})
	}
}

// HandleUpdateOrderStatus handles PATCH /v1/admin/orders/:id
func HandleUpdateOrderStatus(repos *repository.Repositories, gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		orderID := c.Param("id")
		status := domain.OrderStatus(req.Status)

		orderService := service.NewOrderService(repos.Order, gateway, logger)
		if err := orderService.UpdateStatus(c.Request.Context(), orderID, status); err != nil {
			respondError(c, logger, err, "failed to update order status")
			return
		}

		if admin, ok := middleware.GetAdminFromContext(c); ok {
			logger.Info("Admin changed order status",
				zap.String("admin", admin.Name),
				zap.String("order_id", orderID),
				zap.String("status", req.Status),
			)
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     orderID,
			"status": status,
		})
	}
}

// HandleListRefunds handles GET /v1/admin/refunds
func HandleListRefunds(gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		refunds, err := service.NewRefundService(gateway, logger).List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "failed to fetch refunds")
			return
		}

		resp := make([]RefundResponse, 0, len(refunds))
		for _, r := range refunds {
			resp = append(resp, toRefundResponse(r))
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleCreateRefund handles POST /v1/admin/refunds
func HandleCreateRefund(gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateRefundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		refund, err := service.NewRefundService(gateway, logger).Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to create refund")
			return
		}

		c.JSON(http.StatusCreated, toRefundResponse(refund))
	}
}
