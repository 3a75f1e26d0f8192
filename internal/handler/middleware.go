package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/metrics"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderParishID  = "X-Parish-ID"

	parishIDKey = "parishID"
)

// RequestLogger 访问日志，同时记录请求计数
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(HeaderRequestID, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		klog.V(4).Infof("request_id=%s %s %s status=%d latency=%s",
			requestID, c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}

// ParishScope 从 X-Parish-ID 解析当前堂区
func ParishScope(parishes service.ParishService) gin.HandlerFunc {
	return func(c *gin.Context) {
		parishID := c.GetHeader(HeaderParishID)
		if parishID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + HeaderParishID + " header"})
			return
		}

		if _, err := parishes.Get(c.Request.Context(), parishID); err != nil {
			if errors.Is(err, service.ErrParishNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "parish not found"})
				return
			}
			klog.Errorf("ParishScope: failed to load parish %s: %v", parishID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load parish"})
			return
		}

		c.Set(parishIDKey, parishID)
		c.Next()
	}
}

func parishIDFrom(c *gin.Context) string {
	return c.GetString(parishIDKey)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
