package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
)

func sampleActivities() []domain.Activity {
	return []domain.Activity{
		act("a1", "p1", "u1", time.Date(2024, 6, 14, 10, 0, 0, 0, time.Local)),
		act("a2", "p2", "u2", time.Date(2024, 6, 10, 9, 30, 0, 0, time.Local)),
		act("a3", "p1", "u2", time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)),
		act("a4", "p3", "u1", time.Date(2024, 5, 20, 16, 45, 0, 0, time.Local)),
		act("a5", "p2", "u1", time.Date(2024, 4, 2, 11, 15, 0, 0, time.Local)),
	}
}

func TestFilterActivitiesIdentity(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
	in := sampleActivities()

	out := FilterActivities(in, FilterSpec{Project: "all", User: "all", Period: PeriodAll}, now)
	assert.Equal(t, in, out)
}

func TestFilterActivitiesByProjectAndUser(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
	in := sampleActivities()

	out := FilterActivities(in, FilterSpec{Project: "p1", Period: PeriodAll}, now)
	require.Len(t, out, 2)
	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, "a3", out[1].ID)

	out = FilterActivities(in, FilterSpec{User: "u1", Period: PeriodAll}, now)
	require.Len(t, out, 3)

	out = FilterActivities(in, FilterSpec{Project: "p2", User: "u1", Period: PeriodAll}, now)
	require.Len(t, out, 1)
	assert.Equal(t, "a5", out[0].ID)
}

func TestFilterActivitiesLast7Inclusive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	edge := now.Add(-7 * 24 * time.Hour)

	in := []domain.Activity{
		act("on-edge", "p1", "u1", edge),
		act("inside", "p1", "u1", now.Add(-24*time.Hour)),
		act("outside", "p1", "u1", edge.Add(-time.Second)),
	}

	out := FilterActivities(in, FilterSpec{Period: PeriodLast7}, now)
	require.Len(t, out, 2)
	assert.Equal(t, "on-edge", out[0].ID)
	assert.Equal(t, "inside", out[1].ID)
}

func TestFilterActivitiesCustomInclusiveBounds(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)

	in := []domain.Activity{
		act("start-of-from", "p1", "u1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)),
		act("end-of-to", "p1", "u1", time.Date(2024, 6, 10, 23, 59, 59, 0, time.Local)),
		act("before", "p1", "u1", time.Date(2024, 5, 31, 23, 59, 59, 0, time.Local)),
		act("after", "p1", "u1", time.Date(2024, 6, 11, 0, 0, 0, 0, time.Local)),
	}

	out := FilterActivities(in, FilterSpec{Period: PeriodCustom, From: "2024-06-01", To: "2024-06-10"}, now)
	require.Len(t, out, 2)
	assert.Equal(t, "start-of-from", out[0].ID)
	assert.Equal(t, "end-of-to", out[1].ID)
}

func TestFilterActivitiesInvertedRangeIsEmpty(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)

	out := FilterActivities(sampleActivities(), FilterSpec{Period: PeriodCustom, From: "2024-06-10", To: "2024-06-01"}, now)
	assert.Empty(t, out)
}

func TestFilterActivitiesMalformedDateFailsSoft(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)

	for _, spec := range []FilterSpec{
		{Period: PeriodCustom, From: "not-a-date", To: "2024-06-10"},
		{Period: PeriodCustom, From: "2024-06-01", To: "10/06/2024"},
		{Period: PeriodCustom},
	} {
		out := FilterActivities(sampleActivities(), spec, now)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	}
}

func TestFilterActivitiesIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
	in := sampleActivities()
	spec := FilterSpec{Project: "p1", User: "all", Period: PeriodLast7}

	first := FilterActivities(in, spec, now)
	second := FilterActivities(in, spec, now)
	assert.Equal(t, first, second)
}
