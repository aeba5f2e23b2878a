package rpuser

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tourshop/common/entity"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/entity/etuser"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entity.User{}))
	repo := NewUserRepository(db)

	user, err := etuser.NewUser(0, "Ana", "ana@example.com", etprimitive.RoleCliente)
	require.NoError(t, err)
	user.PasswordHash = "hash"
	require.NoError(t, repo.Create(ctx, user))
	assert.Positive(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)
	assert.Equal(t, etprimitive.RoleCliente, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	exists, err := repo.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
	exists, err = repo.Exists(ctx, user.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)
}
