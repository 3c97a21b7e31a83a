package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/service"
)

// registerResource binds the full screen route set for one resource:
// list (with filters and free-text search), detail, create, update,
// partial update, and delete-then-refetch. Resources whose create flow
// carries a receipt attachment also accept multipart submissions.
func registerResource[T any](
	rg *gin.RouterGroup,
	h *Handler,
	route, name string,
	screen *service.ResourceScreen[T],
	allowMultipart bool,
) {
	grp := rg.Group(route)

	grp.GET("", func(c *gin.Context) {
		filters, term := splitQuery(c)
		items, err := screen.List(c.Request.Context(), filters, term)
		if err != nil {
			respondError(c, err, "Failed to load "+name+" list")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": items})
	})

	grp.GET("/:id", func(c *gin.Context) {
		doc, err := screen.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to load "+name)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": doc})
	})

	grp.POST("", func(c *gin.Context) {
		if allowMultipart && strings.HasPrefix(c.ContentType(), "multipart/") {
			createMultipart(c, h, name, screen)
			return
		}

		var draft T
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Status:  "error",
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			})
			return
		}
		if err := screen.Create(c.Request.Context(), draft); err != nil {
			respondError(c, err, "Failed to save "+name)
			return
		}

		h.audit.Record(c.Request.Context(), actor(c), "create", name, "", draft)
		c.JSON(http.StatusCreated, models.MessageResponse{Status: "success", Message: "Created successfully"})
	})

	grp.PUT("/:id", func(c *gin.Context) {
		var draft T
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Status:  "error",
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			})
			return
		}
		id := c.Param("id")
		if err := screen.Update(c.Request.Context(), id, draft); err != nil {
			respondError(c, err, "Failed to save "+name)
			return
		}

		h.audit.Record(c.Request.Context(), actor(c), "update", name, id, draft)
		c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Updated successfully"})
	})

	grp.PATCH("/:id", func(c *gin.Context) {
		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Status:  "error",
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			})
			return
		}
		id := c.Param("id")
		if err := screen.PatchFields(c.Request.Context(), id, fields); err != nil {
			respondError(c, err, "Failed to save "+name)
			return
		}

		h.audit.Record(c.Request.Context(), actor(c), "update", name, id, fields)
		c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Updated successfully"})
	})

	grp.DELETE("/:id", func(c *gin.Context) {
		filters, _ := splitQuery(c)
		id := c.Param("id")
		items, err := screen.Delete(c.Request.Context(), id, filters)
		if err != nil {
			respondError(c, err, "Failed to delete "+name)
			return
		}

		h.audit.Record(c.Request.Context(), actor(c), "delete", name, id, nil)
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": items})
	})
}

func createMultipart[T any](c *gin.Context, h *Handler, name string, screen *service.ResourceScreen[T]) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	fields := make(map[string]string, len(form.Value))
	for k, v := range form.Value {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	var files []platform.File
	for field, headers := range form.File {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				continue
			}
			files = append(files, platform.File{Field: field, Name: header.Filename, Data: data})
		}
	}

	if err := screen.CreateMultipart(c.Request.Context(), fields, files); err != nil {
		respondError(c, err, "Failed to save "+name)
		return
	}

	h.audit.Record(c.Request.Context(), actor(c), "create", name, "", fields)
	c.JSON(http.StatusCreated, models.MessageResponse{Status: "success", Message: "Created successfully"})
}

// splitQuery separates the free-text search term from the categorical
// filter parameters forwarded to the platform
func splitQuery(c *gin.Context) (map[string]string, string) {
	filters := map[string]string{}
	term := ""
	for k, v := range c.Request.URL.Query() {
		if len(v) == 0 {
			continue
		}
		if k == "search" {
			term = v[0]
			continue
		}
		filters[k] = v[0]
	}
	return filters, term
}
