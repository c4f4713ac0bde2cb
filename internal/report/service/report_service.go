package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vannarellifabrizio-hash/ses-app/internal/exportcache"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/engine"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/pdf"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/render"
)

// SnapshotSource materializes the consistent snapshot the pipeline runs
// on. selfID may be empty when no acting profile needs resolving.
type SnapshotSource interface {
	Snapshot(ctx context.Context, selfID string) (*domain.Snapshot, error)
}

// ExportCache keeps rendered exports addressable by content digest.
type ExportCache interface {
	Get(ctx context.Context, digest string) ([]byte, error)
	Put(ctx context.Context, digest string, data []byte) error
}

// ReportService runs the aggregation pipeline over fresh snapshots and
// serves the dashboard views and PDF exports built from them.
type ReportService struct {
	src   SnapshotSource
	cache ExportCache
	now   func() time.Time
	log   zerolog.Logger
}

// New creates a report service. cache may be nil, which disables export
// caching.
func New(src SnapshotSource, cache ExportCache, log zerolog.Logger) *ReportService {
	return &ReportService{
		src:   src,
		cache: cache,
		now:   time.Now,
		log:   log,
	}
}

// WithClock replaces the time source, for reproducible staleness and
// window evaluation in tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// CollaboratorStatus is one row of the dashboard's last-activity panel.
type CollaboratorStatus struct {
	Profile      domain.Profile `json:"profile"`
	LastActivity *time.Time     `json:"last_activity"`
	Status       engine.Status  `json:"status"`
	StatusColor  string         `json:"status_color"`
	Accent       string         `json:"accent"`
}

// Staleness classifies every collaborator by the age of their most recent
// activity, freshly evaluated against the current clock.
func (s *ReportService) Staleness(ctx context.Context) ([]CollaboratorStatus, error) {
	snap, err := s.src.Snapshot(ctx, "")
	if err != nil {
		return nil, err
	}

	ix := engine.BuildIndices(snap.Projects, snap.Profiles, snap.Activities, snap.Self)
	byUser := engine.EvaluateStaleness(snap.Activities, s.now())

	out := make([]CollaboratorStatus, 0, len(snap.Profiles))
	for _, p := range snap.Profiles {
		if p.Role != domain.RoleCollab {
			continue
		}
		st := engine.StalenessFor(byUser, p.ID)
		out = append(out, CollaboratorStatus{
			Profile:      p,
			LastActivity: st.LastActivity,
			Status:       st.Status,
			StatusColor:  st.Status.Color(),
			Accent:       ix.AccentColor(p.ID),
		})
	}
	return out, nil
}

// Activities returns the filtered activity list, newest first within the
// snapshot's source order.
func (s *ReportService) Activities(ctx context.Context, spec engine.FilterSpec) ([]domain.Activity, error) {
	snap, err := s.src.Snapshot(ctx, "")
	if err != nil {
		return nil, err
	}
	return engine.FilterActivities(snap.Activities, spec, s.now()), nil
}

// ProjectOverview is the dashboard's per-project card: the project, its
// lifecycle state, the resources touched under the current filter and the
// matching activities newest first.
type ProjectOverview struct {
	Project    domain.Project    `json:"project"`
	Past       bool              `json:"past"`
	State      string            `json:"state"`
	Resources  []string          `json:"resources"`
	Activities []domain.Activity `json:"activities"`
}

// ProjectOverviews builds one card per project in snapshot (title) order,
// including projects with no matching activities — the dashboard shows
// those as empty, unlike the editorial export which skips them.
func (s *ReportService) ProjectOverviews(ctx context.Context, spec engine.FilterSpec) ([]ProjectOverview, error) {
	snap, err := s.src.Snapshot(ctx, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	ix := engine.BuildIndices(snap.Projects, snap.Profiles, snap.Activities, snap.Self)
	filtered := engine.FilterActivities(snap.Activities, spec, now)
	res := engine.ResolveResources(filtered)

	byProject := make(map[string][]domain.Activity)
	for _, a := range filtered {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}

	out := make([]ProjectOverview, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		names := make([]string, 0, 4)
		for _, id := range res.Users(p.ID) {
			names = append(names, ix.DisplayName(id))
		}

		past := p.Past(now)
		state := "in corso"
		if past {
			state = "terminato"
		}

		acts := byProject[p.ID]
		if acts == nil {
			acts = []domain.Activity{}
		}
		out = append(out, ProjectOverview{
			Project:    p,
			Past:       past,
			State:      state,
			Resources:  names,
			Activities: acts,
		})
	}
	return out, nil
}

// Export is a rendered PDF ready for download.
type Export struct {
	FileName string
	Data     []byte
}

// ExportFlatTable renders the landscape merged-cell table export for the
// given filter, serving cached bytes when the spec and snapshot are
// unchanged.
func (s *ReportService) ExportFlatTable(ctx context.Context, spec engine.FilterSpec, selfID string) (*Export, error) {
	return s.export(ctx, spec, selfID, "tabella", func(snap *domain.Snapshot, filtered []domain.Activity, ix engine.Indices) *render.Document {
		return render.RenderFlatTable(filtered, ix)
	})
}

// ExportEditorial renders the portrait per-project export.
func (s *ReportService) ExportEditorial(ctx context.Context, spec engine.FilterSpec, selfID string) (*Export, error) {
	return s.export(ctx, spec, selfID, "progetti", func(snap *domain.Snapshot, filtered []domain.Activity, ix engine.Indices) *render.Document {
		res := engine.ResolveResources(filtered)
		return render.RenderEditorial(snap.Projects, filtered, res, ix)
	})
}

func (s *ReportService) export(ctx context.Context, spec engine.FilterSpec, selfID, layout string,
	build func(*domain.Snapshot, []domain.Activity, engine.Indices) *render.Document) (*Export, error) {

	snap, err := s.src.Snapshot(ctx, selfID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	digest := exportDigest(layout, spec, snap, now)
	fileName := fmt.Sprintf("export_attivita_%s_%s.pdf", layout, uuid.New().String())

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, digest); err == nil {
			s.log.Debug().Str("layout", layout).Str("digest", digest).Msg("export cache hit")
			return &Export{FileName: fileName, Data: data}, nil
		} else if err != exportcache.ErrMiss {
			s.log.Warn().Err(err).Msg("export cache read failed")
		}
	}

	ix := engine.BuildIndices(snap.Projects, snap.Profiles, snap.Activities, snap.Self)
	filtered := engine.FilterActivities(snap.Activities, spec, now)

	data, err := pdf.Write(build(snap, filtered, ix))
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", layout, err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, digest, data); err != nil {
			s.log.Warn().Err(err).Msg("export cache write failed")
		}
	}

	s.log.Info().Str("layout", layout).Int("rows", len(filtered)).Int("bytes", len(data)).Msg("export rendered")
	return &Export{FileName: fileName, Data: data}, nil
}

// exportDigest fingerprints layout, filter and snapshot content. The
// rolling last7 window shifts with the clock, so the minute enters the
// digest for that period only.
func exportDigest(layout string, spec engine.FilterSpec, snap *domain.Snapshot, now time.Time) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s\n", layout, spec.Project, spec.User, spec.Period, spec.From, spec.To)
	if spec.Period == engine.PeriodLast7 {
		fmt.Fprintf(h, "now:%d\n", now.Truncate(time.Minute).Unix())
	}
	for _, p := range snap.Projects {
		fmt.Fprintf(h, "p:%s:%s:%s:%s:%s\n", p.ID, p.Title, p.Subtitle, p.StartDate, p.EndDate)
	}
	for _, p := range snap.Profiles {
		fmt.Fprintf(h, "u:%s:%s:%s\n", p.ID, p.Name, p.Email)
	}
	for _, a := range snap.Activities {
		fmt.Fprintf(h, "a:%s:%d:%s\n", a.ID, a.CreatedAt.UnixNano(), a.Text)
	}
	return hex.EncodeToString(h.Sum(nil))
}
