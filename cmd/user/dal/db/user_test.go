package db

import (
	"context"
	"testing"

	"giggles.com/pkg/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserColumns(t *testing.T) {
	ctx := context.Background()
	db, rec := dbtest.NewDryRun(t)
	d := NewUserDB(db)

	_, err := d.GetUser(ctx, "u1", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`,`username`,`avatar_url`,`aura` FROM `users` WHERE id = 'u1' LIMIT 1", rec.Last())

	// 旧表没有 aura 列
	_, err = d.GetUser(ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`,`username`,`avatar_url` FROM `users` WHERE id = 'u1' LIMIT 1", rec.Last())
}

func TestGetUsername(t *testing.T) {
	db, rec := dbtest.NewDryRun(t)
	name, err := NewUserDB(db).GetUsername(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, "SELECT `username` FROM `users` WHERE id = 'u1' LIMIT 1", rec.Last())
}
