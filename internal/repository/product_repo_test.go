package repository

import (
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// 内存库每个连接各自独立，并发分支必须复用同一连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Member{}, &model.Product{}))
	return db
}

func seedRepoProduct(t *testing.T, db *gorm.DB) *model.Product {
	t.Helper()
	member := &model.Member{
		MemberType:     model.MemberAgent,
		MemberStatus:   model.MemberStatusActive,
		MemberNick:     "agent",
		MemberPhone:    "agent-phone",
		MemberPassword: "hashed",
	}
	require.NoError(t, db.Create(member).Error)
	product := &model.Product{
		MemberID:      member.ID,
		ProductType:   model.ProductApartment,
		ProductStatus: model.ProductStatusActive,
		ProductName:   "测试房源",
		ProductPrice:  1000,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestAdjustCounterRejectsUnknownColumn(t *testing.T) {
	db := newRepoTestDB(t)
	product := seedRepoProduct(t, db)
	repo := NewProductRepo(db)

	// 白名单之外的列一律拒绝，防止把计数接口当成任意更新用
	_, err := repo.AdjustCounter(context.Background(), product.ID, "product_name", 1)
	assert.ErrorIs(t, err, ErrCounterColumn)

	_, err = repo.AdjustCounter(context.Background(), product.ID, "product_likes; DROP TABLE products", 1)
	assert.ErrorIs(t, err, ErrCounterColumn)
}

func TestAdjustCounterMissingTarget(t *testing.T) {
	db := newRepoTestDB(t)
	repo := NewProductRepo(db)

	_, err := repo.AdjustCounter(context.Background(), 9999, consts.ColProductLikes, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdjustCounterAtomicDelta(t *testing.T) {
	db := newRepoTestDB(t)
	product := seedRepoProduct(t, db)
	repo := NewProductRepo(db)
	ctx := context.Background()

	updated, err := repo.AdjustCounter(ctx, product.ID, consts.ColProductLikes, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ProductLikes)

	updated, err = repo.AdjustCounter(ctx, product.ID, consts.ColProductLikes, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.ProductLikes)

	// 不同计数列互不影响
	updated, err = repo.AdjustCounter(ctx, product.ID, consts.ColProductViews, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ProductViews)
	assert.Equal(t, 0, updated.ProductLikes)
}

func TestUpdateScopedByOwnerAndStatus(t *testing.T) {
	db := newRepoTestDB(t)
	product := seedRepoProduct(t, db)
	repo := NewProductRepo(db)
	ctx := context.Background()

	affected, err := repo.Update(ctx, product.ID, product.MemberID+1, map[string]interface{}{
		"product_name": "别人的改名",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.Update(ctx, product.ID, product.MemberID, map[string]interface{}{
		"product_status": model.ProductStatusDelete,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// 已删除的行对 owner 入口不可见，管理端 UpdateAny 仍可触达
	affected, err = repo.Update(ctx, product.ID, product.MemberID, map[string]interface{}{
		"product_name": "删除后改名",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.UpdateAny(ctx, product.ID, map[string]interface{}{
		"product_status": model.ProductStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}
