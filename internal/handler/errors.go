package handler

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/CageChen/filehub/fileutil"
	"github.com/CageChen/filehub/internal/log"
	"github.com/gin-gonic/gin"
)

// statusFor maps an operation error to an HTTP status and a client-safe message.
// Platform errors carry absolute paths, so they are not echoed back.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, fileutil.ErrPathMissing),
		errors.Is(err, fileutil.ErrSourcePathMissing),
		errors.Is(err, fileutil.ErrTargetPathMissing),
		errors.Is(err, errCrossFolder),
		errors.Is(err, errUnknownOrder):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errReadOnly):
		return http.StatusMethodNotAllowed, err.Error()
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, "file not found"
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, fs.ErrExist):
		return http.StatusConflict, "already exists"
	default:
		return http.StatusInternalServerError, "operation failed"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(err, "request failed", "method", c.Request.Method, "path", c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
