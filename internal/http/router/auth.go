package router

import (
	"chordfund.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.GET("/login", h.Login)
	rg.GET("/callback", h.Callback)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", h.Me)
}
