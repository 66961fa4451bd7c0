package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/config"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/service"
)

// HandleListProducts handles GET /v1/products
func HandleListProducts(gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := service.NewCatalogService(gateway, nil, logger)
		listings, err := catalog.ListProducts(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "failed to fetch products")
			return
		}

		products := make([]ProductResponse, 0, len(listings))
		for _, l := range listings {
			products = append(products, toProductResponse(l))
		}

		c.JSON(http.StatusOK, products)
	}
}

// HandleShippingQuote handles POST /v1/shipping/quote
func HandleShippingQuote(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ShippingQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		quote := service.NewShippingService(logger).QuoteRequest(req)

		c.JSON(http.StatusOK, toShippingQuoteResponse(quote))
	}
}

// HandleCreateCheckout handles POST /v1/checkout
func HandleCreateCheckout(cfg *config.Config, gateway service.PaymentsGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		baseURL := cfg.Storefront.PublicBaseURL
		if baseURL == "" {
			baseURL = requestOrigin(c)
		}

		checkout := service.NewCheckoutService(gateway, logger)
		session, err := checkout.CreateSession(c.Request.Context(), req, baseURL)
		if err != nil {
			respondError(c, logger, err, "failed to create checkout session")
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": session.URL})
	}
}

func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
