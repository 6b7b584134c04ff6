package traceapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/envcascade/errors"
	"github.com/kbukum/envcascade/resolve"
)

// TraceSource is the read side of a Manager that the handlers need.
type TraceSource interface {
	MaskedTrace() resolve.Trace
	Keys() []string
	Extras() []string
	Source() string
}

// KeysResponse is the body of GET /config/keys.
type KeysResponse struct {
	Keys   []string `json:"keys"`
	Extras []string `json:"extras"`
	Source string   `json:"source"`
}

// Register mounts the trace routes on r.
func Register(r gin.IRouter, src TraceSource) {
	g := r.Group("/config")
	g.GET("/trace", traceAll(src))
	g.GET("/trace/:key", traceOne(src))
	g.GET("/keys", keys(src))
}

func traceAll(src TraceSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, src.MaskedTrace())
	}
}

func traceOne(src TraceSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		entry, ok := src.MaskedTrace()[key]
		if !ok {
			RespondWithError(c, errors.UnknownKey(key))
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

func keys(src TraceSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		extras := src.Extras()
		if extras == nil {
			extras = []string{}
		}
		c.JSON(http.StatusOK, KeysResponse{
			Keys:   src.Keys(),
			Extras: extras,
			Source: src.Source(),
		})
	}
}

// RespondWithError writes err as a structured error body. ConfigErrors
// carry their own status; anything else is a 500.
func RespondWithError(c *gin.Context, err error) {
	if cfgErr, ok := errors.As(err); ok {
		c.JSON(cfgErr.HTTPStatus(), cfgErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, errors.Internal(err).ToResponse())
}
