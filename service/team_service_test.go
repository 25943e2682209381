// service/team_service_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingwise/clinic-api/dao"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
)

func newTeamService(store *dao.MockStore) service.ITeamService {
	return service.NewTeamService(store, util.NewValidationUtil(), util.NewCacheService(), util.NewEventBus(), nil)
}

func TestTeamServiceDerivesInitials(t *testing.T) {
	store := dao.NewMockStore()
	svc := newTeamService(store)
	ctx := context.Background()

	created, err := svc.CreateTeamMember(ctx, model.TeamMember{
		Name:     "Maria del Carmen",
		Role:     "nurse",
		Email:    "maria@pingwise.app",
		Initials: "XX", // client-supplied initials are ignored
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "MD", created.Initials)

	created.Name = "Omar Haddad"
	updated, err := svc.UpdateTeamMember(ctx, *created, "tester")
	require.NoError(t, err)
	assert.Equal(t, "OH", updated.Initials)
}
