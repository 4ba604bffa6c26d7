package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/backend/internal/model"
)

const serviceVersion = "1.0.0"

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{Status: "ok", Version: serviceVersion})
}

// 헬스체크 엔드포인트
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}
