package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/state", h.state)

		api.POST("/images", h.uploadImage)
		api.POST("/images/url", h.addImageURL)
		api.DELETE("/images/last", h.removeLast)
		api.GET("/uploads/:id", h.upload)

		api.PUT("/captions/:index", h.setCaption)
		api.PUT("/layout", h.setLayout)

		api.POST("/generate", h.generate)
		api.GET("/strip", h.save)
		api.GET("/strip/share", h.share)
		api.GET("/qr", h.qr)
	}
}
