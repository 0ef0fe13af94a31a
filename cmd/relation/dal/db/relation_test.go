package db

import (
	"context"
	"strings"
	"sync"
	"testing"

	"giggles.com/cmd/model"
	"giggles.com/pkg/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// 关注关系以 (follower_id, followed_id) 为联合主键，重复关注只会留下一条
func TestFollowIdentity(t *testing.T) {
	s, err := schema.Parse(&model.Follow{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	keys := make([]string, 0, len(s.PrimaryFields))
	for _, f := range s.PrimaryFields {
		keys = append(keys, f.DBName)
	}
	assert.ElementsMatch(t, []string{"follower_id", "followed_id"}, keys)
}

func TestUpsertFollow(t *testing.T) {
	ctx := context.Background()
	db, rec := dbtest.NewDryRun(t)
	d := NewRelationDB(db)

	require.NoError(t, d.UpsertFollow(ctx, "bob", "alice"))
	require.NoError(t, d.UpsertFollow(ctx, "bob", "alice"))

	sqls := rec.SQL()
	require.Len(t, sqls, 2)
	for _, sql := range sqls {
		assert.True(t, strings.HasPrefix(sql, "INSERT INTO `follows` (`follower_id`,`followed_id`,`created_at`) VALUES ('bob','alice',"), sql)
		assert.Contains(t, sql, "ON DUPLICATE KEY UPDATE")
	}
}

func TestCreateFollowIsPlainInsert(t *testing.T) {
	db, rec := dbtest.NewDryRun(t)
	require.NoError(t, NewRelationDB(db).CreateFollow(context.Background(), "bob", "alice"))

	sql := rec.Last()
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO `follows`"), sql)
	assert.NotContains(t, sql, "ON DUPLICATE KEY")
}

func TestRelationQueries(t *testing.T) {
	ctx := context.Background()
	db, rec := dbtest.NewDryRun(t)
	d := NewRelationDB(db)

	require.NoError(t, d.DeleteFollow(ctx, "bob", "alice"))
	assert.Equal(t, "DELETE FROM `follows` WHERE follower_id = 'bob' AND followed_id = 'alice'", rec.Last())

	_, err := d.IsRelationExist(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, "SELECT count(*) FROM `follows` WHERE follower_id = 'bob' AND followed_id = 'alice'", rec.Last())

	_, err = d.GetFollowerCount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "SELECT count(*) FROM `follows` WHERE followed_id = 'alice'", rec.Last())

	_, err = d.GetFollowingCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "SELECT count(*) FROM `follows` WHERE follower_id = 'bob'", rec.Last())
}
