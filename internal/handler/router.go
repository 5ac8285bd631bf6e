package handler

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every API route. Requests outside /api are served from web,
// which may be nil when no frontend is bundled.
func NewRouter(reg *Registry, ws *WSHandler, web fs.FS) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	files := NewFileHandler(reg)
	ops := NewOpsHandler(reg)
	list := NewListHandler(reg)
	folders := NewFolderHandler(reg)

	api := r.Group("/api")
	{
		api.GET("/files/*path", files.GetFile)
		api.HEAD("/files/*path", files.HeadFile)
		api.POST("/files/*path", files.CreateFile)
		api.PUT("/files/*path", files.WriteFile)
		api.PATCH("/files/*path", files.AppendFile)
		api.DELETE("/files/*path", files.DeleteFile)
		api.GET("/lines/*path", files.GetLines)
		api.GET("/render/*path", files.GetRendered)
		api.GET("/list/*path", list.List)

		api.POST("/ops/rename", ops.Rename)
		api.POST("/ops/move", ops.Move)
		api.POST("/ops/copy", ops.Copy)
		api.POST("/ops/truncate", ops.Truncate)

		api.GET("/folders", folders.GetFolders)
		api.POST("/folders", folders.AddFolder)
		api.PUT("/folders", folders.UpdateFolder)
		api.DELETE("/folders", folders.RemoveFolder)

		if ws != nil {
			api.GET("/ws", ws.HandleWS)
		}
	}

	if web != nil {
		r.NoRoute(gin.WrapH(http.FileServer(http.FS(web))))
	}
	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
