package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/CageChen/filehub/fileutil"
	"github.com/CageChen/filehub/internal/config"
	"github.com/CageChen/filehub/internal/log"
	"github.com/gin-gonic/gin"
)

// FolderHandler manages the served folders
type FolderHandler struct {
	reg *Registry
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(reg *Registry) *FolderHandler {
	return &FolderHandler{reg: reg}
}

type folderResponse struct {
	config.Folder
	Writable bool `json:"writable"`
}

func (h *FolderHandler) folders() []folderResponse {
	resp := make([]folderResponse, len(h.reg.cfg.Folders))
	for i, f := range h.reg.cfg.Folders {
		resp[i] = folderResponse{Folder: f, Writable: f.Writable()}
	}
	return resp
}

// GetFolders returns the configured folders and global excludes
func (h *FolderHandler) GetFolders(c *gin.Context) {
	h.reg.mu.RLock()
	defer h.reg.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"folders":       h.folders(),
		"globalExclude": h.reg.cfg.Exclude,
	})
}

// AddFolderRequest represents a request to add a folder
type AddFolderRequest struct {
	Path     string   `json:"path" binding:"required"`
	Alias    string   `json:"alias"`
	GitRef   string   `json:"git_ref"`
	ReadOnly bool     `json:"read_only"`
	Exclude  []string `json:"exclude"`
}

// AddFolder adds a new folder to the configuration
func (h *FolderHandler) AddFolder(c *gin.Context) {
	var req AddFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is required",
		})
		return
	}

	info, err := os.Stat(req.Path)
	if err != nil || !info.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is not a directory: " + req.Path,
		})
		return
	}
	if req.GitRef != "" {
		if !fileutil.Exists(filepath.Join(req.Path, ".git")) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "path is not a git repository",
			})
			return
		}
		if _, err := fsForFolder(config.Folder{Path: req.Path, GitRef: req.GitRef}).Stat(""); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "unknown git ref: " + req.GitRef,
			})
			return
		}
	}

	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()

	if err := h.reg.cfg.AddFolder(req.Path, req.Alias, req.GitRef, req.ReadOnly, req.Exclude); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := h.reg.cfg.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to save config: " + err.Error(),
		})
		return
	}

	log.Info("folder added", "path", req.Path, "ref", req.GitRef)
	c.JSON(http.StatusOK, gin.H{
		"message": "folder added",
		"folders": h.folders(),
	})
}

// UpdateFolderRequest represents a request to update a folder (identified by index)
type UpdateFolderRequest struct {
	Index    int      `json:"index"`
	Alias    string   `json:"alias" binding:"required"`
	ReadOnly bool     `json:"read_only"`
	Exclude  []string `json:"exclude"`
}

// UpdateFolder updates a folder's settings by index
func (h *FolderHandler) UpdateFolder(c *gin.Context) {
	var req UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "alias is required",
		})
		return
	}

	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()

	if req.Index < 0 || req.Index >= len(h.reg.cfg.Folders) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid folder index",
		})
		return
	}
	if i, ok := h.reg.cfg.FolderByAlias(req.Alias); ok && i != req.Index {
		c.JSON(http.StatusConflict, gin.H{
			"error": "alias is already in use",
		})
		return
	}

	h.reg.cfg.UpdateFolderByIndex(req.Index, req.Alias, req.ReadOnly, req.Exclude)

	if err := h.reg.cfg.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to save config: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "folder updated",
		"folders": h.folders(),
	})
}

// RemoveFolderRequest represents a request to remove a folder (by index)
type RemoveFolderRequest struct {
	Index int `json:"index"`
}

// RemoveFolder removes a folder from the configuration by index
func (h *FolderHandler) RemoveFolder(c *gin.Context) {
	var req RemoveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "index is required",
		})
		return
	}

	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()

	if req.Index < 0 || req.Index >= len(h.reg.cfg.Folders) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid folder index",
		})
		return
	}

	h.reg.cfg.RemoveFolderByIndex(req.Index)

	if err := h.reg.cfg.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to save config: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "folder removed",
		"folders": h.folders(),
	})
}
