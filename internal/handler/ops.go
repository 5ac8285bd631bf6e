package handler

import (
	"net/http"
	"strings"

	"github.com/CageChen/filehub/fileutil"
	mfs "github.com/CageChen/filehub/internal/fs"
	"github.com/CageChen/filehub/internal/log"
	"github.com/gin-gonic/gin"
)

// RenameRequest renames a file within its directory
type RenameRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// TransferRequest moves or copies a file within one folder
type TransferRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// TruncateRequest empties a file
type TruncateRequest struct {
	Path string `json:"path"`
}

// OpsHandler handles operations that name their paths in the request body
type OpsHandler struct {
	reg *Registry
}

// NewOpsHandler creates a new operations handler
func NewOpsHandler(reg *Registry) *OpsHandler {
	return &OpsHandler{reg: reg}
}

func joinLines(lines []string) string {
	return strings.Join(lines, fileutil.LineSeparator)
}

// Rename renames a file, replacing any sibling of the new name
func (h *OpsHandler) Rename(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Path == "" {
		abortWithError(c, fileutil.ErrPathMissing)
		return
	}

	t, err := h.reg.Resolve(req.Path)
	if err != nil {
		abortWithError(c, err)
		return
	}
	m, err := t.mutator()
	if err != nil {
		abortWithError(c, err)
		return
	}
	result, err := m.Rename(t.rel, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Info("file renamed", "from", t.display(t.rel), "to", t.display(result))
	c.JSON(http.StatusOK, gin.H{"path": t.display(result)})
}

// Move moves a file, replacing an existing target
func (h *OpsHandler) Move(c *gin.Context) {
	h.transfer(c, "moved", func(m mfs.Mutator, src, dst string) (string, error) {
		return m.Move(src, dst)
	})
}

// Copy copies a file, replacing an existing target
func (h *OpsHandler) Copy(c *gin.Context) {
	h.transfer(c, "copied", func(m mfs.Mutator, src, dst string) (string, error) {
		return m.Copy(src, dst)
	})
}

func (h *OpsHandler) transfer(c *gin.Context, verb string, op func(m mfs.Mutator, src, dst string) (string, error)) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// source is blamed before target, as in fileutil
	if req.Source == "" {
		abortWithError(c, fileutil.ErrSourcePathMissing)
		return
	}
	if req.Target == "" {
		abortWithError(c, fileutil.ErrTargetPathMissing)
		return
	}

	src, err := h.reg.Resolve(req.Source)
	if err != nil {
		abortWithError(c, err)
		return
	}
	dst, err := h.reg.Resolve(req.Target)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if src.folder.Alias != dst.folder.Alias {
		abortWithError(c, errCrossFolder)
		return
	}

	m, err := src.mutator()
	if err != nil {
		abortWithError(c, err)
		return
	}
	result, err := op(m, src.rel, dst.rel)
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Info("file "+verb, "from", src.display(src.rel), "to", dst.display(result))
	c.JSON(http.StatusOK, gin.H{"path": dst.display(result)})
}

// Truncate empties a file in place
func (h *OpsHandler) Truncate(c *gin.Context) {
	var req TruncateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Path == "" {
		abortWithError(c, fileutil.ErrPathMissing)
		return
	}

	t, err := h.reg.Resolve(req.Path)
	if err != nil {
		abortWithError(c, err)
		return
	}
	m, err := t.mutator()
	if err != nil {
		abortWithError(c, err)
		return
	}
	result, err := m.Truncate(t.rel)
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Debug("file truncated", "path", t.display(result))
	c.JSON(http.StatusOK, gin.H{"path": t.display(result)})
}
