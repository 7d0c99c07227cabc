package router

import (
	"chordfund.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func InviteRouter(rg *gin.RouterGroup, h *handler.InviteHandler) {
	rg.POST("/send", h.Send)
	rg.GET("/verify", h.Verify)
	rg.POST("/accept", h.Accept)
}
