package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/service"
)

// HandleSearchHerbs handles GET /v1/herbs
func HandleSearchHerbs(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.HerbSearchQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
			return
		}

		catalog := service.NewCatalogService(nil, repos.Herb, logger)
		page, err := catalog.SearchHerbs(c.Request.Context(), q)
		if err != nil {
			respondError(c, logger, err, "failed to search herbs")
			return
		}

		herbs := make([]HerbSummaryResponse, 0, len(page.Herbs))
		for _, h := range page.Herbs {
			herbs = append(herbs, toHerbSummaryResponse(h))
		}

		c.JSON(http.StatusOK, HerbSearchResponse{
			Herbs: herbs,
			Pagination: PaginationResponse{
				Total:   page.Total,
				Limit:   page.Limit,
				Offset:  page.Offset,
				HasMore: page.HasMore,
			},
		})
	}
}

// HandleGetHerb handles GET /v1/herbs/:id
func HandleGetHerb(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := service.NewCatalogService(nil, repos.Herb, logger)
		herb, err := catalog.GetHerb(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "failed to fetch herb")
			return
		}

		c.JSON(http.StatusOK, toHerbResponse(herb))
	}
}

// HandleListHerbActions handles GET /v1/herbs/actions
func HandleListHerbActions(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := service.NewCatalogService(nil, repos.Herb, logger)
		actions, err := catalog.ListHerbActions(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "failed to list medicinal actions")
			return
		}

		c.JSON(http.StatusOK, gin.H{"actions": actions})
	}
}

// HandleListHerbPreparations handles GET /v1/herbs/preparations
func HandleListHerbPreparations(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := service.NewCatalogService(nil, repos.Herb, logger)
		preparations, err := catalog.ListHerbPreparations(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "failed to list preparations")
			return
		}

		c.JSON(http.StatusOK, gin.H{"preparations": preparations})
	}
}
