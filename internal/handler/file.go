// Package handler provides HTTP handlers for the FileHub REST API.
package handler

import (
	"net/http"
	"time"

	"github.com/CageChen/filehub/internal/log"
	"github.com/CageChen/filehub/internal/markdown"
	"github.com/gin-gonic/gin"
)

// FileResponse is the content of a file
type FileResponse struct {
	Path    string    `json:"path"`
	Content string    `json:"content"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// LinesResponse is the content of a file split into lines
type LinesResponse struct {
	Path  string   `json:"path"`
	Lines []string `json:"lines"`
}

// RenderResponse is a markdown file rendered to HTML
type RenderResponse struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"readOnly"`
	*markdown.Document
}

// WriteRequest carries new content for create, write and append. Lines, when
// present, take precedence over Content.
type WriteRequest struct {
	Content string   `json:"content"`
	Lines   []string `json:"lines"`
	Newline bool     `json:"newline"`
}

// FileHandler handles reading and changing single files
type FileHandler struct {
	reg      *Registry
	renderer *markdown.Renderer
}

// NewFileHandler creates a new file handler
func NewFileHandler(reg *Registry) *FileHandler {
	return &FileHandler{
		reg:      reg,
		renderer: markdown.NewRenderer(""),
	}
}

// GetFile returns the text content of a file
func (h *FileHandler) GetFile(c *gin.Context) {
	t, err := h.reg.Resolve(c.Param("path"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	info, err := t.fs.Stat(t.rel)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if info.IsDir {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is a directory"})
		return
	}

	content, err := t.fs.ReadFile(t.rel)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, FileResponse{
		Path:    t.display(t.rel),
		Content: content,
		Size:    info.Size,
		ModTime: info.ModTime,
	})
}

// HeadFile answers 200 when the path exists and 404 otherwise
func (h *FileHandler) HeadFile(c *gin.Context) {
	t, err := h.reg.Resolve(c.Param("path"))
	if err != nil {
		status, _ := statusFor(err)
		c.Status(status)
		return
	}
	if _, err := t.fs.Stat(t.rel); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// GetLines returns the lines of a file
func (h *FileHandler) GetLines(c *gin.Context) {
	t, err := h.reg.Resolve(c.Param("path"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	lines, err := t.fs.ReadLines(t.rel)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, LinesResponse{Path: t.display(t.rel), Lines: lines})
}

// GetRendered returns a markdown file rendered to HTML
func (h *FileHandler) GetRendered(c *gin.Context) {
	t, err := h.reg.Resolve(c.Param("path"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !h.reg.isMarkdown(t.rel) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "not a markdown file"})
		return
	}

	content, err := t.fs.ReadFile(t.rel)
	if err != nil {
		abortWithError(c, err)
		return
	}

	doc, err := h.renderer.Render(content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to render markdown: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, RenderResponse{
		Path:     t.display(t.rel),
		ReadOnly: !t.folder.Writable(),
		Document: doc,
	})
}

// bindWrite resolves the path to a writable folder and decodes the optional body
func (h *FileHandler) bindWrite(c *gin.Context) (target, WriteRequest, bool) {
	var req WriteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return target{}, req, false
		}
	}

	t, err := h.reg.Resolve(c.Param("path"))
	if err != nil {
		abortWithError(c, err)
		return target{}, req, false
	}
	return t, req, true
}

// CreateFile creates or truncates a file, optionally with content
func (h *FileHandler) CreateFile(c *gin.Context) {
	t, req, ok := h.bindWrite(c)
	if !ok {
		return
	}
	m, err := t.mutator()
	if err != nil {
		abortWithError(c, err)
		return
	}

	content := req.Content
	if req.Lines != nil {
		content = joinLines(req.Lines)
	}
	result, err := m.Create(t.rel, content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Info("file created", "path", t.display(result))
	c.JSON(http.StatusCreated, gin.H{"path": t.display(result)})
}

// WriteFile replaces the content of an existing file
func (h *FileHandler) WriteFile(c *gin.Context) {
	t, req, ok := h.bindWrite(c)
	if !ok {
		return
	}
	m, err := t.mutator()
	if err != nil {
		abortWithError(c, err)
		return
	}

	var result string
	if req.Lines != nil {
		result, err = m.WriteLines(t.rel, req.Lines)
	} else {
		result, err = m.Write(t.rel, req.Content)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Debug("file written", "path", t.display(result))
	c.JSON(http.StatusOK, gin.H{"path": t.display(result)})
}

// AppendFile appends content or lines to an existing file
func (h *FileHandler) AppendFile(c *gin.Context) {
	t, req, ok := h.bindWrite(c)
	if !ok {
		return
	}
	m, err := t.mutator()
	if err != nil {
		abortWithError(c, err)
		return
	}

	var result string
	if req.Lines != nil {
		result, err = m.AppendLines(t.rel, req.Lines, req.Newline)
	} else {
		result, err = m.Append(t.rel, req.Content, req.Newline)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Debug("file appended", "path", t.display(result))
	c.JSON(http.StatusOK, gin.H{"path": t.display(result)})
}

// DeleteFile removes a file or an empty directory
func (h *FileHandler) DeleteFile(c *gin.Context) {
	t, err := h.reg.Resolve(c.Param("path"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	m, err := t.mutator()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := m.Delete(t.rel); err != nil {
		abortWithError(c, err)
		return
	}

	log.Info("file deleted", "path", t.display(t.rel))
	c.Status(http.StatusNoContent)
}
