package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/db"
	"github.com/smartkiosk/console/internal/model"
	"github.com/smartkiosk/console/internal/storage"
)

// registerRoutes wires the gateway contract: /users CRUD, the playlist
// fetch + bulk replace, and the multipart video upload.
func registerRoutes(r *gin.Engine, store *db.Store, files storage.Storage) {
	r.GET("/users", func(c *gin.Context) {
		users, err := store.ListUsers()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
			return
		}
		c.JSON(http.StatusOK, users)
	})

	r.POST("/users", func(c *gin.Context) {
		var u model.User
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := store.CreateUser(u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}
		c.JSON(http.StatusOK, created)
	})

	r.PUT("/users/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var u model.User
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.UpdateUser(id, u); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
			return
		}
		c.Status(http.StatusOK)
	})

	r.DELETE("/users/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		if err := store.DeleteUser(id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
			return
		}
		c.Status(http.StatusOK)
	})

	r.GET("/playlist-items", func(c *gin.Context) {
		items, err := store.ListMedia()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list playlist"})
			return
		}
		c.JSON(http.StatusOK, items)
	})

	// Bulk replace: the submitted array becomes the entire collection.
	r.POST("/playlist-items", func(c *gin.Context) {
		var items []model.MediaItem
		if err := c.ShouldBindJSON(&items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.ReplaceMedia(items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not replace playlist"})
			return
		}
		c.Status(http.StatusOK)
	})

	r.POST("/playlist-items/upload", func(c *gin.Context) {
		if c.PostForm("key") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing key field"})
			return
		}
		fileHeader, err := c.FormFile("videoFile")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing video file"})
			return
		}
		url, err := files.SaveVideo(fileHeader)
		if err != nil {
			log.Error().Err(err).Msg("[devgateway] upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store video"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	})
}
