package handler

import (
	"errors"
	"net/http"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

type ParishHandler struct {
	service service.ParishService
}

func NewParishHandler(service service.ParishService) *ParishHandler {
	return &ParishHandler{service: service}
}

func (h *ParishHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/parishes", h.Create)
	router.GET("/parishes/:id", h.Get)
}

func (h *ParishHandler) Create(c *gin.Context) {
	var req service.CreateParishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parish, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		klog.Errorf("CreateParish: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create parish"})
		return
	}

	c.JSON(http.StatusCreated, parish)
}

func (h *ParishHandler) Get(c *gin.Context) {
	parish, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrParishNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parish not found"})
			return
		}
		klog.Errorf("GetParish: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get parish"})
		return
	}

	c.JSON(http.StatusOK, parish)
}
