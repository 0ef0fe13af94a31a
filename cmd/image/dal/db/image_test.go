package db

import (
	"context"
	"testing"
	"time"

	"giggles.com/pkg/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchImagesSQL(t *testing.T) {
	db, rec := dbtest.NewDryRun(t)
	_, err := NewImageDB(db).SearchImages(context.Background(), "u1", []string{"cat", "dog"}, 10)
	require.NoError(t, err)

	// 用户条件必须和 OR 组合整体 AND，不能被 OR 拆开
	assert.Equal(t, "SELECT * FROM `images` WHERE user_id = 'u1' AND ("+
		"LOWER(storage_path) LIKE '%cat%' OR LOWER(url) LIKE '%cat%' OR "+
		"LOWER(storage_path) LIKE '%dog%' OR LOWER(url) LIKE '%dog%'"+
		") ORDER BY created_at DESC LIMIT 10", rec.Last())
}

func TestSearchImagesNoTokens(t *testing.T) {
	db, rec := dbtest.NewDryRun(t)
	list, err := NewImageDB(db).SearchImages(context.Background(), "u1", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, rec.SQL())
}

func TestListImagesSQL(t *testing.T) {
	ctx := context.Background()
	db, rec := dbtest.NewDryRun(t)
	d := NewImageDB(db)

	_, err := d.ListImages(ctx, "u1", nil, 20)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `images` WHERE user_id = 'u1' ORDER BY created_at DESC LIMIT 20", rec.Last())

	before := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	_, err = d.ListImages(ctx, "u1", &before, 20)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `images` WHERE user_id = 'u1' AND created_at < '2025-03-01 08:00:00' ORDER BY created_at DESC LIMIT 20", rec.Last())
}

func TestImageOwnership(t *testing.T) {
	ctx := context.Background()
	db, rec := dbtest.NewDryRun(t)
	d := NewImageDB(db)

	_, err := d.GetUserImage(ctx, "i1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `images` WHERE id = 'i1' AND user_id = 'u1' LIMIT 1", rec.Last())

	require.NoError(t, d.DeleteImage(ctx, "i1"))
	assert.Equal(t, "DELETE FROM `images` WHERE id = 'i1'", rec.Last())
}
