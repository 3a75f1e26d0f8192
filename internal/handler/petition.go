package handler

import (
	"errors"
	"net/http"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// PetitionHandler 祈祷意向处理器，所有路由都需要 ParishScope
type PetitionHandler struct {
	service service.PetitionService
}

func NewPetitionHandler(service service.PetitionService) *PetitionHandler {
	RegisterValidators()
	return &PetitionHandler{service: service}
}

func (h *PetitionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/petitions", h.List)
	router.POST("/petitions", h.Create)
	router.GET("/petitions/:id", h.Get)
	router.PUT("/petitions/:id", h.Update)
	router.PUT("/petitions/:id/content", h.UpdateContent)
	router.POST("/petitions/:id/regenerate", h.Regenerate)
	router.GET("/petitions/:id/generations", h.ListGenerations)
	router.DELETE("/petitions/:id", h.Delete)
}

// writePetitionError 内部错误只返回通用信息
func writePetitionError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLanguage), errors.Is(err, service.ErrTemplateNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPetitionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		klog.Errorf("%s petition: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action + " petition"})
	}
}

func (h *PetitionHandler) Create(c *gin.Context) {
	var req service.CreatePetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		klog.V(6).Infof("CreatePetition: invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	petition, err := h.service.Create(c.Request.Context(), parishIDFrom(c), req)
	if err != nil {
		writePetitionError(c, "create", err)
		return
	}

	c.JSON(http.StatusCreated, petition)
}

func (h *PetitionHandler) List(c *gin.Context) {
	petitions, err := h.service.List(c.Request.Context(), parishIDFrom(c))
	if err != nil {
		writePetitionError(c, "list", err)
		return
	}

	c.JSON(http.StatusOK, petitions)
}

func (h *PetitionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	petition, err := h.service.Get(c.Request.Context(), parishIDFrom(c), id)
	if err != nil {
		writePetitionError(c, "get", err)
		return
	}

	c.JSON(http.StatusOK, petition)
}

func (h *PetitionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdatePetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	petition, err := h.service.Update(c.Request.Context(), parishIDFrom(c), id, req)
	if err != nil {
		writePetitionError(c, "update", err)
		return
	}

	c.JSON(http.StatusOK, petition)
}

func (h *PetitionHandler) UpdateContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	petition, err := h.service.UpdateContent(c.Request.Context(), parishIDFrom(c), id, req)
	if err != nil {
		writePetitionError(c, "update", err)
		return
	}

	c.JSON(http.StatusOK, petition)
}

func (h *PetitionHandler) Regenerate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	petition, err := h.service.Regenerate(c.Request.Context(), parishIDFrom(c), id)
	if err != nil {
		writePetitionError(c, "regenerate", err)
		return
	}

	c.JSON(http.StatusOK, petition)
}

func (h *PetitionHandler) ListGenerations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	logs, err := h.service.ListGenerations(c.Request.Context(), parishIDFrom(c), id)
	if err != nil {
		writePetitionError(c, "list generations for", err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *PetitionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), parishIDFrom(c), id); err != nil {
		writePetitionError(c, "delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
