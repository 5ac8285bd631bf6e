package handler

import (
	"net/http"
	"time"

	"github.com/CageChen/filehub/fileutil"
	"github.com/gin-gonic/gin"
)

// EntryResponse is one listed directory child
type EntryResponse struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Type    string    `json:"type"`
	Size    int64     `json:"size,omitempty"`
	ModTime time.Time `json:"modTime"`
}

// ListResponse is the result of a directory listing
type ListResponse struct {
	Path    string          `json:"path"`
	Entries []EntryResponse `json:"entries"`
}

// ListHandler lists directories of served folders
type ListHandler struct {
	reg *Registry
}

// NewListHandler creates a new list handler
func NewListHandler(reg *Registry) *ListHandler {
	return &ListHandler{reg: reg}
}

// List returns the files (kind=files, default) or directories (kind=dirs) of a
// directory. Optional prefix and suffix parameters filter by name, order=asc|desc
// sorts by modification time.
func (h *ListHandler) List(c *gin.Context) {
	t, err := h.reg.Resolve(c.Param("path"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	order := c.Query("order")
	if order != "" && order != "asc" && order != "desc" {
		abortWithError(c, errUnknownOrder)
		return
	}

	var entries []fileutil.Entry
	switch c.DefaultQuery("kind", "files") {
	case "files":
		entries, err = t.fs.ListFiles(t.rel)
	case "dirs":
		entries, err = t.fs.ListDirectories(t.rel)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be files or dirs"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	if prefix, ok := c.GetQuery("prefix"); ok {
		entries = fileutil.FilterByPrefix(entries, prefix)
	}
	if suffix, ok := c.GetQuery("suffix"); ok {
		entries = fileutil.FilterBySuffix(entries, suffix)
	}
	if order != "" {
		fileutil.OrderByLastModified(entries, order == "desc")
	}

	resp := ListResponse{Path: t.display(t.rel), Entries: []EntryResponse{}}
	for _, e := range entries {
		if h.reg.excluded(t, e.Path) {
			continue
		}
		kind := "directory"
		if e.IsFile {
			kind = "file"
		}
		resp.Entries = append(resp.Entries, EntryResponse{
			Name:    e.Name,
			Path:    t.display(e.Path),
			Type:    kind,
			Size:    e.Size,
			ModTime: e.ModTime,
		})
	}

	c.JSON(http.StatusOK, resp)
}
