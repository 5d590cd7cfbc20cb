package app

import (
	"online_course_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// registerRoutes 只暴露运维接口，课程相关操作通过服务层调用
func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}
}
