// Package middleware provides gin middleware for compression, CORS,
// request logging and admin authentication.
package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/pkg/logger"
	"github.com/cinevault/cinevault/pkg/security"
)

type gzipResponseWriter struct {
	gin.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.gzipWriter.Write([]byte(s))
}

// Gzip compresses responses for clients that accept it.
func Gzip() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		gzipWriter := gzip.NewWriter(c.Writer)
		defer gzipWriter.Close()

		c.Writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzipWriter:     gzipWriter,
		}

		c.Next()
	}
}

// CORS allows cross-origin requests to the API.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Admin-Token")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger logs each request with a level matching its status.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		switch {
		case statusCode >= 500:
			log.Errorf("%s %s %d %v %s", clientIP, method, statusCode, latency, path)
		case statusCode >= 400:
			log.Warnf("%s %s %d %v %s", clientIP, method, statusCode, latency, path)
		default:
			log.Infof("%s %s %d %v %s", clientIP, method, statusCode, latency, path)
		}
	}
}

// AdminAuth guards mutating endpoints. When token is empty the guard
// is disabled; otherwise the X-Admin-Token header must match, compared
// in constant time.
func AdminAuth(token string) gin.HandlerFunc {
	validator := security.NewKeyValidator()

	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("X-Admin-Token")
		if !validator.SecureCompare(provided, token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "invalid or missing admin token",
			})
			return
		}

		c.Next()
	}
}
