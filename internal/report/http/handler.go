package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/service"
)

// Collaborators without an entry in the profiles collection still need
// their own rows resolved; clients pass their profile id here.
const actingProfileHeader = "X-Profile-ID"

type ProjectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, title, subtitle, startDate, endDate string) (*domain.Project, error)
	Update(ctx context.Context, id, title, subtitle string) (*domain.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ProfileStore interface {
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, id, name, color string, role domain.Role) (*domain.Profile, error)
}

type ActivityStore interface {
	Create(ctx context.Context, projectID, userID, text string) (*domain.Activity, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Activity, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Handler exposes the reporting views, the PDF exports and the record
// CRUD over HTTP.
type Handler struct {
	reports    *service.ReportService
	projects   ProjectStore
	profiles   ProfileStore
	activities ActivityStore
}

func NewHandler(reports *service.ReportService, projects ProjectStore, profiles ProfileStore, activities ActivityStore) *Handler {
	return &Handler{
		reports:    reports,
		projects:   projects,
		profiles:   profiles,
		activities: activities,
	}
}

// Register attaches all routes to the given router group. exportLimit,
// when non-nil, throttles the PDF endpoints.
func (h *Handler) Register(rg *gin.RouterGroup, exportLimit gin.HandlerFunc) {
	rg.GET("/projects", h.listProjects)
	rg.POST("/projects", h.createProject)
	rg.PATCH("/projects/:id", h.updateProject)
	rg.DELETE("/projects/:id", h.deleteProject)

	rg.GET("/profiles", h.listProfiles)
	rg.PATCH("/profiles/:id", h.updateProfile)

	rg.GET("/activities", h.listActivities)
	rg.POST("/projects/:id/activities", h.createActivity)
	rg.PATCH("/activities/:id", h.updateActivity)
	rg.DELETE("/activities/:id", h.deleteActivity)

	rg.GET("/dashboard/staleness", h.staleness)
	rg.GET("/dashboard/projects", h.projectOverviews)

	exp := rg.Group("/export")
	if exportLimit != nil {
		exp.Use(exportLimit)
	}
	exp.GET("/table.pdf", h.exportTable)
	exp.GET("/projects.pdf", h.exportEditorial)
}
