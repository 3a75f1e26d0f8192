package handler

import (
	"errors"
	"net/http"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", h.Get)
	router.PUT("/settings", h.Update)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context(), parishIDFrom(c))
	if err != nil {
		klog.Errorf("GetSettings: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update 提示词模板为空时恢复默认
func (h *SettingsHandler) Update(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.service.Update(c.Request.Context(), parishIDFrom(c), req)
	if err != nil {
		var invalid *service.InvalidPromptTemplateError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidPromptTemplate.Error(), "unknown": invalid.Unknown})
			return
		}
		klog.Errorf("UpdateSettings: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
