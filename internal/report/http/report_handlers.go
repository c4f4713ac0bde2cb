package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/engine"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/service"
)

func filterSpec(c *gin.Context) engine.FilterSpec {
	var spec engine.FilterSpec
	// Bad query values degrade to the zero spec, which matches everything.
	_ = c.ShouldBindQuery(&spec)
	if spec.Period == "" {
		spec.Period = engine.PeriodAll
	}
	return spec
}

func (h *Handler) staleness(c *gin.Context) {
	statuses, err := h.reports.Staleness(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "collaborators": statuses})
}

func (h *Handler) projectOverviews(c *gin.Context) {
	overviews, err := h.reports.ProjectOverviews(c.Request.Context(), filterSpec(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": overviews})
}

func (h *Handler) listActivities(c *gin.Context) {
	activities, err := h.reports.Activities(c.Request.Context(), filterSpec(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(activities), "activities": activities})
}

func (h *Handler) exportTable(c *gin.Context) {
	export, err := h.reports.ExportFlatTable(c.Request.Context(), filterSpec(c), c.GetHeader(actingProfileHeader))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	serveExport(c, export)
}

func (h *Handler) exportEditorial(c *gin.Context) {
	export, err := h.reports.ExportEditorial(c.Request.Context(), filterSpec(c), c.GetHeader(actingProfileHeader))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	serveExport(c, export)
}

func serveExport(c *gin.Context, export *service.Export) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Data(http.StatusOK, "application/pdf", export.Data)
}
