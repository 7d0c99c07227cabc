package router

import (
	"chordfund.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func ProjectRouter(rg *gin.RouterGroup, h *handler.ProjectHandler) {
	rg.POST("", h.Create)
	rg.GET("/by-slug/:slug", h.GetBySlug)
	rg.POST("/:id/members", h.AddMember)
	rg.GET("/:id/members", h.ListMembers)
}
