package cronjob

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/engine"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/service"
)

const (
	digestKeyPrefix = "ses:digest:" // Daily staleness digest: ses:digest:{yyyy-mm-dd}
	digestTTL       = 7 * 24 * time.Hour
)

// Scheduler runs the nightly staleness digest. The dashboard reads the
// stored digests to show how collaborator recency moved over the week.
type Scheduler struct {
	reports *service.ReportService
	client  *redis.Client
	log     zerolog.Logger
}

func NewScheduler(reports *service.ReportService, client *redis.Client, log zerolog.Logger) *Scheduler {
	return &Scheduler{reports: reports, client: client, log: log}
}

// Start initializes cron tasks (nightly at 12:00AM).
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.RunDigest()
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create cron job")
		return
	}

	s.log.Info().Msg("cron scheduler started (staleness digest nightly at 12:00AM)")
	c.Start()
}

// RunDigest evaluates staleness over a fresh snapshot and stores the
// result under today's date.
func (s *Scheduler) RunDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	statuses, err := s.reports.Staleness(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("staleness digest failed")
		return
	}

	counts := map[engine.Status]int{}
	for _, st := range statuses {
		counts[st.Status]++
	}

	data, err := json.Marshal(statuses)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal staleness digest")
		return
	}

	key := digestKeyPrefix + time.Now().Format("2006-01-02")
	if err := s.client.Set(ctx, key, data, digestTTL).Err(); err != nil {
		s.log.Error().Err(err).Msg("failed to store staleness digest")
		return
	}

	s.log.Info().
		Int("fresh", counts[engine.StatusFresh]).
		Int("warning", counts[engine.StatusWarning]).
		Int("stale", counts[engine.StatusStale]).
		Str("key", key).
		Msg("staleness digest stored")
}
