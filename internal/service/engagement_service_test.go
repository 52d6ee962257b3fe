package service

import (
	"Cuben/internal/api/config"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	pkgredis "Cuben/internal/pkg/redis"
	"Cuben/internal/repository"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// 内存库每个连接各自独立，并发分支必须复用同一连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// 所有表建在同一个库里，索引名不能撞车
func TestMigrateAllModelsTogether(t *testing.T) {
	setupTestDB(t,
		&model.Member{}, &model.MemberFollow{}, &model.Product{},
		&model.Article{}, &model.Post{}, &model.Comment{},
		&model.Engagement{}, &model.View{},
	)
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	pkgredis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	if config.Cfg == nil {
		config.Cfg = &config.Config{}
	}
	return mr
}

func newEngagementServiceForTest(t *testing.T) (EngagementService, repository.EngagementRepo, repository.ViewRepo, *miniredis.Miniredis) {
	t.Helper()
	db := setupTestDB(t, &model.Engagement{}, &model.View{})
	mr := setupTestRedis(t)
	engagementRepo := repository.NewEngagementRepo(db)
	viewRepo := repository.NewViewRepo(db)
	return NewEngagementService(engagementRepo, viewRepo), engagementRepo, viewRepo, mr
}

func TestToggleFlipsLedger(t *testing.T) {
	svc, repo, _, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	modifier, err := svc.Toggle(ctx, 1, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, modifier)

	count, err := repo.CountByTarget(ctx, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	modifier, err = svc.Toggle(ctx, 1, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, -1, modifier)

	count, err = repo.CountByTarget(ctx, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestToggleActionsAreIndependent(t *testing.T) {
	svc, repo, _, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, 1, 100, model.TargetProduct, model.ActionSave)
	require.NoError(t, err)

	// 取消收藏不影响点赞
	modifier, err := svc.Toggle(ctx, 1, 100, model.TargetProduct, model.ActionSave)
	require.NoError(t, err)
	assert.Equal(t, -1, modifier)

	likes, err := repo.CountByTarget(ctx, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
}

func TestToggleSeparatesKinds(t *testing.T) {
	svc, repo, _, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	// 同一个 id 在不同目标类型下互不干扰
	_, err := svc.Toggle(ctx, 1, 5, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, 1, 5, model.TargetPost, model.ActionLike)
	require.NoError(t, err)

	productLikes, err := repo.CountByTarget(ctx, 5, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), productLikes)

	postLikes, err := repo.CountByTarget(ctx, 5, model.TargetPost, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), postLikes)
}

func TestRecordViewWriteOnce(t *testing.T) {
	svc, _, viewRepo, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	isNew, err := svc.RecordView(ctx, 1, 100, model.TargetArticle)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = svc.RecordView(ctx, 1, 100, model.TargetArticle)
	require.NoError(t, err)
	assert.False(t, isNew)

	count, err := viewRepo.CountByTarget(ctx, 100, model.TargetArticle)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordViewAnonymousCollapses(t *testing.T) {
	svc, _, viewRepo, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	// 所有匿名浏览共用 0 号键，只记一条
	isNew, err := svc.RecordView(ctx, 0, 100, model.TargetPost)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = svc.RecordView(ctx, 0, 100, model.TargetPost)
	require.NoError(t, err)
	assert.False(t, isNew)

	isNew, err = svc.RecordView(ctx, 7, 100, model.TargetPost)
	require.NoError(t, err)
	assert.True(t, isNew)

	count, err := viewRepo.CountByTarget(ctx, 100, model.TargetPost)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMeEngagementAnonymousDefaults(t *testing.T) {
	svc, _, _, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)

	me, err := svc.MeEngagement(ctx, 0, 100, model.TargetProduct)
	require.NoError(t, err)
	assert.False(t, me.Liked)
	assert.False(t, me.Saved)

	me, err = svc.MeEngagement(ctx, 1, 100, model.TargetProduct)
	require.NoError(t, err)
	assert.True(t, me.Liked)
	assert.False(t, me.Saved)
}

func TestMeEngagementMapBatch(t *testing.T) {
	svc, _, _, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, 10, model.TargetArticle, model.ActionLike)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, 1, 20, model.TargetArticle, model.ActionSave)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, 2, 30, model.TargetArticle, model.ActionLike)
	require.NoError(t, err)

	result, err := svc.MeEngagementMap(ctx, 1, model.TargetArticle, []uint64{10, 20, 30})
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.True(t, result[10].Liked)
	assert.False(t, result[10].Saved)
	assert.True(t, result[20].Saved)
	assert.False(t, result[20].Liked)
	// 别人的点赞不会标到我头上
	assert.False(t, result[30].Liked)
	assert.False(t, result[30].Saved)
}

func TestGetActionCountUsesCache(t *testing.T) {
	svc, _, _, mr := newEngagementServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)

	// 缓存未命中：回源台账并回填
	count, err := svc.GetActionCount(ctx, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.True(t, mr.Exists(consts.ProductLikeKey+"100"))

	// 缓存命中：直接取缓存值
	require.NoError(t, mr.Set(consts.ProductLikeKey+"100", "42"))
	count, err = svc.GetActionCount(ctx, 100, model.TargetProduct, model.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestGetActionCountMemberSaveSkipsCache(t *testing.T) {
	svc, _, _, mr := newEngagementServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, 9, model.TargetMember, model.ActionSave)
	require.NoError(t, err)

	// 会员收藏没有计数缓存键，始终回源台账
	count, err := svc.GetActionCount(ctx, 9, model.TargetMember, model.ActionSave)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, mr.Keys())
}

func TestGetActionTargetIDsPagination(t *testing.T) {
	svc, _, _, _ := newEngagementServiceForTest(t)
	ctx := context.Background()

	for id := uint64(1); id <= 5; id++ {
		_, err := svc.Toggle(ctx, 1, id, model.TargetProduct, model.ActionLike)
		require.NoError(t, err)
	}

	ids, total, err := svc.GetActionTargetIDs(ctx, 1, model.TargetProduct, model.ActionLike, 2, 0)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Equal(t, int64(5), total)

	ids, total, err = svc.GetActionTargetIDs(ctx, 1, model.TargetProduct, model.ActionLike, 10, 4)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
	assert.Equal(t, int64(5), total)
}
