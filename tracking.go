package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// visitRecorder stores page views.
type visitRecorder interface {
	RecordVisit(ctx context.Context, ip, userAgent, path string) error
}

var untrackedPrefixes = []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/track", "/personalize", "/projects"}

// Privacy-conscious visitor tracking middleware
func visitorTrackingMiddleware(rec visitRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if rec == nil || c.Request.Method != http.MethodGet || untracked(path) {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := rec.RecordVisit(ctx, ip, ua, path); err != nil {
				logger.Warn("record visit failed", zap.String("path", path), zap.Error(err))
			}
		}()
		c.Next()
	}
}

func untracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
