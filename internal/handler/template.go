package handler

import (
	"errors"
	"net/http"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// TemplateHandler 上下文模板处理器
type TemplateHandler struct {
	service service.TemplateService
}

func NewTemplateHandler(service service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

func (h *TemplateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/petition-templates", h.List)
	router.POST("/petition-templates", h.Create)
	router.GET("/petition-templates/:id", h.Get)
	router.PUT("/petition-templates/:id", h.Update)
	router.DELETE("/petition-templates/:id", h.Delete)
}

func writeTemplateError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrSystemTemplate):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	klog.Errorf("%s template: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action + " template"})
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.service.List(c.Request.Context(), parishIDFrom(c))
	if err != nil {
		writeTemplateError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	template, err := h.service.Get(c.Request.Context(), parishIDFrom(c), id)
	if err != nil {
		writeTemplateError(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := h.service.Create(c.Request.Context(), parishIDFrom(c), req)
	if err != nil {
		writeTemplateError(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := h.service.Update(c.Request.Context(), parishIDFrom(c), id, req)
	if err != nil {
		writeTemplateError(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), parishIDFrom(c), id); err != nil {
		writeTemplateError(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
