// service/dashboard_service_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingwise/clinic-api/dao"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/service"
)

func TestDashboardServiceStats(t *testing.T) {
	store := dao.NewMockStore()
	svc := service.NewDashboardService(store, store, store, store, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	// The mock store is seeded with one of each.
	assert.Equal(t, int64(1), stats.PatientCount)
	assert.Equal(t, int64(1), stats.AppointmentCount)
	assert.Equal(t, int64(1), stats.TeamMemberCount)
	assert.Equal(t, int64(1), stats.CampaignCount)
	assert.Equal(t, int64(1), stats.StatusBreakdown[model.AppointmentScheduled])
	assert.Len(t, stats.RecentPatients, 1)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestDashboardServiceTodayAppointments(t *testing.T) {
	store := dao.NewMockStore()
	svc := service.NewDashboardService(store, store, store, store, nil)
	ctx := context.Background()

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	patientID, err := store.CreatePatient(ctx, model.Patient{Name: "Day Patient", Email: "d@example.com"})
	require.NoError(t, err)

	_, err = store.CreateAppointment(ctx, model.Appointment{
		PatientID:    patientID,
		Title:        "Morning slot",
		Status:       model.AppointmentScheduled,
		StartsAt:     startOfDay.Add(time.Hour),
		DurationMins: 20,
	})
	require.NoError(t, err)

	appointments, err := svc.TodayAppointments(ctx)
	require.NoError(t, err)

	found := false
	for _, a := range appointments {
		if a.Title == "Morning slot" {
			found = true
		}
	}
	assert.True(t, found, "appointment scheduled today should be in the view")

	// A second read within the window is served from the cache. Removing
	// the appointment from the store must not change the cached view.
	for _, a := range appointments {
		require.NoError(t, store.DeleteAppointment(ctx, a.ID))
	}

	cached, err := svc.TodayAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(appointments), len(cached))
}
