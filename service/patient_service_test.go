// service/patient_service_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingwise/clinic-api/config"
	"github.com/pingwise/clinic-api/dao"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
)

func TestMain(m *testing.M) {
	_ = config.InitConfig()
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

func newPatientService(store *dao.MockStore) service.IPatientService {
	return service.NewPatientService(
		store,
		store,
		util.NewValidationUtil(),
		util.NewCacheService(),
		util.NewNotificationService(),
		util.NewEventBus(),
		nil,
	)
}

func TestPatientServiceCreateAndGet(t *testing.T) {
	store := dao.NewMockStore()
	svc := newPatientService(store)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, model.Patient{
		Name:  "Jordan Li",
		Email: "jordan@example.com",
	}, "tester")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Li", got.Name)
}

func TestPatientServiceCreateRejectsInvalid(t *testing.T) {
	store := dao.NewMockStore()
	svc := newPatientService(store)

	_, err := svc.CreatePatient(context.Background(), model.Patient{Name: ""}, "tester")
	assert.ErrorIs(t, err, pw_errors.ErrInvalidPatientData)
}

func TestPatientServiceDeleteGuardedByAppointments(t *testing.T) {
	store := dao.NewMockStore()
	svc := newPatientService(store)
	ctx := context.Background()

	// The seeded patient has a seeded appointment.
	patients, err := store.ListPatients(ctx, 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, patients)
	seeded := patients[0]

	err = svc.DeletePatient(ctx, seeded.ID, "tester")
	assert.ErrorIs(t, err, pw_errors.ErrPatientHasAppointments)

	// Still present.
	_, err = svc.GetPatient(ctx, seeded.ID)
	assert.NoError(t, err)
}

func TestPatientServiceSearch(t *testing.T) {
	store := dao.NewMockStore()
	svc := newPatientService(store)
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, model.Patient{Name: "Jordan Li", Email: "jordan@example.com"}, "tester")
	require.NoError(t, err)
	_, err = svc.CreatePatient(ctx, model.Patient{Name: "Jordana Smith", Email: "js@example.com"}, "tester")
	require.NoError(t, err)

	results, err := svc.SearchPatients(ctx, model.PatientSearchCriteria{Name: "jordan"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.SearchPatients(ctx, model.PatientSearchCriteria{Email: "js@example.com"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Jordana Smith", results[0].Name)
}

func TestPatientServiceDeleteWithoutAppointments(t *testing.T) {
	store := dao.NewMockStore()
	svc := newPatientService(store)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, model.Patient{
		Name:  "No Appointments",
		Email: "na@example.com",
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(ctx, created.ID, "tester"))

	_, err = svc.GetPatient(ctx, created.ID)
	assert.ErrorIs(t, err, pw_errors.ErrPatientNotFound)
}
