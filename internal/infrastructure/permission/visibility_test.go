package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/movecomments/internal/shared/logger"
)

func setupVisibility(t *testing.T) (*ProjectVisibility, *Enforcer) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	enforcer, err := NewEnforcer(db, "", logger.NewNop())
	require.NoError(t, err)

	return NewProjectVisibility(enforcer), enforcer
}

func TestProjectVisibility_DirectGrants(t *testing.T) {
	v, _ := setupVisibility(t)
	ctx := context.Background()

	require.NoError(t, v.GrantView(5, 3))
	require.NoError(t, v.GrantView(5, 1))
	require.NoError(t, v.GrantView(6, 2))

	ids, all, err := v.VisibleProjectIDs(ctx, 5)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Equal(t, []uint{1, 3}, ids)

	ok, err := v.CanView(5, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.CanView(5, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectVisibility_RoleGrants(t *testing.T) {
	v, e := setupVisibility(t)
	ctx := context.Background()

	require.NoError(t, e.AddPolicy("role:developer", ProjectObject(4), ActionView))
	require.NoError(t, e.AddRoleForUser(UserSubject(7), "role:developer"))

	ids, all, err := v.VisibleProjectIDs(ctx, 7)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Equal(t, []uint{4}, ids)
}

func TestProjectVisibility_Admin(t *testing.T) {
	v, _ := setupVisibility(t)

	require.NoError(t, v.GrantAdmin(1))

	_, all, err := v.VisibleProjectIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, all)

	ok, err := v.CanView(1, 99)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProjectVisibility_NoGrants(t *testing.T) {
	v, _ := setupVisibility(t)

	ids, all, err := v.VisibleProjectIDs(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Empty(t, ids)
}

func TestProjectVisibility_IgnoresOtherObjects(t *testing.T) {
	v, e := setupVisibility(t)

	require.NoError(t, e.AddPolicy(UserSubject(5), "report:1", ActionView))
	require.NoError(t, e.AddPolicy(UserSubject(5), ProjectObject(2), "edit"))

	ids, _, err := v.VisibleProjectIDs(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProjectVisibility_RevokeView(t *testing.T) {
	v, _ := setupVisibility(t)
	ctx := context.Background()

	require.NoError(t, v.GrantView(5, 1))
	require.NoError(t, v.GrantView(5, 2))
	require.NoError(t, v.RevokeView(5, 1))

	ids, all, err := v.VisibleProjectIDs(ctx, 5)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Equal(t, []uint{2}, ids)

	ok, err := v.CanView(5, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
