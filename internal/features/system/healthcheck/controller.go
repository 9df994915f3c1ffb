package system_healthcheck

import (
	"net/http"

	"taskboard/internal/util/response"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func NewHealthcheckController(healthcheckService *HealthcheckService) *HealthcheckController {
	return &HealthcheckController{healthcheckService: healthcheckService}
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check system health
// @Description Check that the database and cache are reachable and report host usage
// @Tags system/health
// @Produce json
// @Success 200 {object} HealthcheckResponseDTO
// @Failure 503 {object} response.Envelope
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	if err := c.healthcheckService.IsHealthy(ctx.Request.Context()); err != nil {
		response.Fail(ctx, http.StatusServiceUnavailable, err.Error())
		return
	}

	response.OK(ctx, HealthcheckResponseDTO{
		Status: "ok",
		Host:   c.healthcheckService.HostStats(ctx.Request.Context()),
	})
}
