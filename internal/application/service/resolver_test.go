package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CreatesWalkInOnFirstContact(t *testing.T) {
	env := newTestEnv(t)

	resolution, err := env.resolver.Resolve(env.ctx, env.shop.ID, &CustomerRef{
		Name:  "Suresh",
		Phone: "9111111111",
	})
	require.NoError(t, err)
	assert.True(t, resolution.Created)
	assert.Equal(t, "Suresh", resolution.Name)

	user, err := env.userRepo.GetByID(env.ctx, resolution.CustomerID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, enum.UserRoleRetailer, user.Role)

	profile, err := env.profileRepo.GetByUserID(env.ctx, resolution.CustomerID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, enum.CustomerTypeWalkIn, profile.CustomerType)
	assert.True(t, profile.CurrentBalance.IsZero())
}

func TestResolve_ReusesExistingAccountByPhone(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.resolver.Resolve(env.ctx, env.shop.ID, &CustomerRef{
		Name:  "Suresh",
		Phone: "9111111111",
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := env.resolver.Resolve(env.ctx, env.shop.ID, &CustomerRef{
		Name:  "Someone Else",
		Phone: "9111111111",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.CustomerID, second.CustomerID)
	assert.Equal(t, "Suresh", second.Name)

	assert.Equal(t, int64(1), env.countRows(t, &entity.RetailerProfile{}))
}

func TestResolve_DefaultsWalkInName(t *testing.T) {
	env := newTestEnv(t)

	resolution, err := env.resolver.Resolve(env.ctx, env.shop.ID, &CustomerRef{
		Phone: "9111111111",
	})
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", resolution.Name)
}

func TestResolve_RequiresPhone(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.resolver.Resolve(env.ctx, env.shop.ID, &CustomerRef{Name: "No Phone"})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestResolve_ByID_OtherShopHidden(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")

	_, err := env.resolver.Resolve(env.ctx, uuid.New(), &CustomerRef{
		CustomerID: &retailer.ID,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestResolve_PhoneCollisionInsertReportsNoRow(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.resolver.Resolve(env.ctx, env.shop.ID, &CustomerRef{
		Name:  "Asha",
		Phone: "9222222222",
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	// Losing the insert race must not error; the unique phone index swallows
	// the insert and the resolver falls back to reusing the winner.
	dup := &entity.User{
		ShopID:   env.shop.ID,
		Name:     "Asha Again",
		Phone:    "9222222222",
		Password: "x",
		Role:     enum.UserRoleRetailer,
		Status:   "active",
	}
	created, err := env.userRepo.CreateIfAbsent(env.ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	winner, err := env.userRepo.GetByPhone(env.ctx, "9222222222")
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, first.CustomerID, winner.ID)

	var count int64
	require.NoError(t, env.db.Model(&entity.User{}).Where("phone = ?", "9222222222").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
