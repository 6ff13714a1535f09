package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Uvais-khan078/village360/config"
	"github.com/Uvais-khan078/village360/database"
	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/auth/serviceImp"
	"github.com/Uvais-khan078/village360/pkg/storage/storageImp"
)

func sqliteOpener(t *testing.T) (opener, *gorm.DB) {
	t.Helper()
	db, err := database.Open(config.AppConfig{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "admin.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return func() (*gorm.DB, error) { return db, nil }, db
}

func run(open opener, args ...string) (string, error) {
	cmd := newRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	open, db := sqliteOpener(t)
	out, err := run(open, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")
	assert.True(t, db.Migrator().HasTable(&entities.Amenity{}))
}

func TestCreateUserAndResetPassword(t *testing.T) {
	open, db := sqliteOpener(t)

	out, err := run(open, "create-user", "--username", "root", "--email", "root@example.org",
		"--password", "secret1", "--role", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "created root (admin)")

	st := storageImp.NewGorm(db)
	u, err := st.GetUserByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, u.Role)
	assert.True(t, serviceImp.CheckPassword(u.Password, "secret1"))

	_, err = run(open, "reset-password", "--username", "root", "--password", "changed1")
	require.NoError(t, err)
	u, err = st.GetUserByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.True(t, serviceImp.CheckPassword(u.Password, "changed1"))

	_, err = run(open, "reset-password", "--username", "ghost", "--password", "changed1")
	assert.EqualError(t, err, `user "ghost" not found`)
}

func TestCreateUserRequiresFlags(t *testing.T) {
	open, _ := sqliteOpener(t)
	_, err := run(open, "create-user", "--username", "x")
	assert.Error(t, err)
}

func TestMemoryDriverRefused(t *testing.T) {
	_, err := run(func() (*gorm.DB, error) { return nil, nil }, "migrate")
	assert.Error(t, err)
}
