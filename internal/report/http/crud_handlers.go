package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
)

type createProjectReq struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.projects.Create(c.Request.Context(), strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Subtitle), req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

type updateProjectReq struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func (h *Handler) updateProject(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.projects.Update(c.Request.Context(), c.Param("id"),
		strings.TrimSpace(req.Title), strings.TrimSpace(req.Subtitle))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteProject(c *gin.Context) {
	ok, err := h.projects.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listProfiles(c *gin.Context) {
	items, err := h.profiles.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profiles": items})
}

type updateProfileReq struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Role  string `json:"role"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	role := domain.Role(req.Role)
	switch role {
	case domain.RoleAdmin, domain.RoleCollab, domain.RoleDashboard:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid role"})
		return
	}
	if req.Color == "" {
		req.Color = "#111111"
	}

	p, err := h.profiles.Update(c.Request.Context(), c.Param("id"),
		strings.TrimSpace(req.Name), req.Color, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

type createActivityReq struct {
	Text string `json:"text"`
}

func (h *Handler) createActivity(c *gin.Context) {
	var req createActivityReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := c.GetHeader(actingProfileHeader)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing acting profile"})
		return
	}

	a, err := h.activities.Create(c.Request.Context(), c.Param("id"), userID, strings.TrimSpace(req.Text))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "activity": a})
}

type updateActivityReq struct {
	Text string `json:"text"`
}

func (h *Handler) updateActivity(c *gin.Context) {
	var req updateActivityReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	a, err := h.activities.UpdateText(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Text))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "activity": a})
}

func (h *Handler) deleteActivity(c *gin.Context) {
	ok, err := h.activities.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "activity not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
