package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/es"
	"Cuben/internal/repository"
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubProductES 控制 ES 检索结果，避免测试依赖真实集群
type stubProductES struct {
	ids   []uint64
	total int64
	err   error
}

func (s *stubProductES) SearchProducts(ctx context.Context, queryText string, from, size int) ([]uint64, int64, error) {
	return s.ids, s.total, s.err
}

func (s *stubProductES) IndexProduct(ctx context.Context, product *es.ProductES, version int64) error {
	return nil
}

func (s *stubProductES) DeleteProduct(ctx context.Context, id uint64) error {
	return nil
}

type productTestEnv struct {
	db         *gorm.DB
	mr         *miniredis.Miniredis
	svc        ProductService
	memberRepo repository.MemberRepo
	esStub     *stubProductES
}

func newProductTestEnv(t *testing.T) *productTestEnv {
	t.Helper()
	db := setupTestDB(t, &model.Member{}, &model.Product{}, &model.Engagement{}, &model.View{})
	mr := setupTestRedis(t)

	memberRepo := repository.NewMemberRepo(db)
	productRepo := repository.NewProductRepo(db)
	engagement := NewEngagementService(repository.NewEngagementRepo(db), repository.NewViewRepo(db))
	esStub := &stubProductES{}

	return &productTestEnv{
		db:         db,
		mr:         mr,
		svc:        NewProductService(productRepo, memberRepo, engagement, esStub),
		memberRepo: memberRepo,
		esStub:     esStub,
	}
}

func (e *productTestEnv) seedAgent(t *testing.T, nick string) *model.Member {
	t.Helper()
	member := &model.Member{
		MemberType:     model.MemberAgent,
		MemberStatus:   model.MemberStatusActive,
		MemberNick:     nick,
		MemberPhone:    nick + "-phone",
		MemberPassword: "hashed",
	}
	require.NoError(t, e.db.Create(member).Error)
	return member
}

func (e *productTestEnv) seedProduct(t *testing.T, agent *model.Member) *dto.ProductDTO {
	t.Helper()
	product, err := e.svc.CreateProduct(context.Background(), agent.ID, &dto.ProductCreateReq{
		ProductType:    "APARTMENT",
		ProductName:    "江景两房",
		ProductPrice:   880000,
		ProductAddress: "滨江路 18 号",
		ProductDesc:    "南北通透，带阳台",
	})
	require.NoError(t, err)
	return product
}

func TestCreateProductAdjustsOwnerCounter(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")

	env.seedProduct(t, agent)
	env.seedProduct(t, agent)

	owner, err := env.memberRepo.GetByID(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, owner.MemberProducts)
}

func TestCreateProductRejectsPlainUser(t *testing.T) {
	env := newProductTestEnv(t)
	user := &model.Member{
		MemberType:     model.MemberUser,
		MemberStatus:   model.MemberStatusActive,
		MemberNick:     "user1",
		MemberPhone:    "user1-phone",
		MemberPassword: "hashed",
	}
	require.NoError(t, env.db.Create(user).Error)

	_, err := env.svc.CreateProduct(context.Background(), user.ID, &dto.ProductCreateReq{
		ProductType:  "HOUSE",
		ProductName:  "独栋小院",
		ProductPrice: 100,
		ProductDesc:  "不该创建成功",
	})
	assert.ErrorIs(t, err, UnauthorizedError)
}

func TestLikeProductRoundTrip(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	product := env.seedProduct(t, agent)
	ctx := context.Background()

	state, err := env.svc.LikeProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Modifier)
	assert.Equal(t, 1, state.Count)

	got, err := env.svc.GetProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, got.MeLiked.Liked)
	assert.Equal(t, 1, got.ProductLikes)

	// 再点一次取消，计数回到 0
	state, err = env.svc.LikeProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, state.Modifier)
	assert.Equal(t, 0, state.Count)
}

func TestSaveIndependentOfLike(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	product := env.seedProduct(t, agent)
	ctx := context.Background()

	_, err := env.svc.LikeProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	_, err = env.svc.SaveProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)

	state, err := env.svc.SaveProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, state.Modifier)
	assert.Equal(t, 0, state.Count)

	got, err := env.svc.GetProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, got.MeLiked.Liked)
	assert.False(t, got.MeLiked.Saved)
	assert.Equal(t, 1, got.ProductLikes)
}

func TestViewProductAnonymousOnce(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	product := env.seedProduct(t, agent)
	ctx := context.Background()

	state, err := env.svc.ViewProduct(ctx, 0, product.ID)
	require.NoError(t, err)
	assert.True(t, state.IsNew)
	assert.Equal(t, 1, state.Count)

	// 匿名重复浏览不再累加
	state, err = env.svc.ViewProduct(ctx, 0, product.ID)
	require.NoError(t, err)
	assert.False(t, state.IsNew)
	assert.Equal(t, 1, state.Count)
}

func TestRepeatViewServedFromCountCache(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	product := env.seedProduct(t, agent)
	ctx := context.Background()

	state, err := env.svc.ViewProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, state.IsNew)

	// 重复浏览读计数缓存而不是列值
	key := consts.ProductViewKey + strconv.FormatUint(product.ID, 10)
	require.NoError(t, env.mr.Set(key, "7"))

	state, err = env.svc.ViewProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, state.IsNew)
	assert.Equal(t, 7, state.Count)
}

func TestGetProductsRejectsUnknownSort(t *testing.T) {
	env := newProductTestEnv(t)

	_, err := env.svc.GetProducts(context.Background(), 0, &dto.ProductsInquiry{
		PageReq: dto.PageReq{Page: 1, Limit: 10},
		Sort:    "passwordHash",
	})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetProductsFiltersAndSorts(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	ctx := context.Background()

	cheap, err := env.svc.CreateProduct(ctx, agent.ID, &dto.ProductCreateReq{
		ProductType: "APARTMENT", ProductName: "小户型", ProductPrice: 100, ProductDesc: "便宜的房子",
	})
	require.NoError(t, err)
	_, err = env.svc.CreateProduct(ctx, agent.ID, &dto.ProductCreateReq{
		ProductType: "VILLA", ProductName: "海景别墅", ProductPrice: 9000, ProductDesc: "昂贵的房子",
	})
	require.NoError(t, err)

	result, err := env.svc.GetProducts(ctx, 0, &dto.ProductsInquiry{
		PageReq:   dto.PageReq{Page: 1, Limit: 10},
		Sort:      "productPrice",
		Direction: "ASC",
	})
	require.NoError(t, err)
	require.Len(t, result.List, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, cheap.ID, result.List[0].ID)

	filtered, err := env.svc.GetProducts(ctx, 0, &dto.ProductsInquiry{
		PageReq:  dto.PageReq{Page: 1, Limit: 10},
		Sort:     "createdAt",
		TypeList: []string{"VILLA"},
	})
	require.NoError(t, err)
	require.Len(t, filtered.List, 1)
	assert.Equal(t, "海景别墅", filtered.List[0].ProductName)
}

func TestSearchProductsFallsBackOnESError(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	ctx := context.Background()

	_, err := env.svc.CreateProduct(ctx, agent.ID, &dto.ProductCreateReq{
		ProductType: "HOUSE", ProductName: "湖边小屋", ProductPrice: 300, ProductDesc: "临湖而建",
	})
	require.NoError(t, err)

	env.esStub.err = errors.New("es down")
	result, err := env.svc.SearchProducts(ctx, 0, &dto.ProductSearchReq{
		PageReq: dto.PageReq{Page: 1, Limit: 10},
		Text:    "湖边",
	})
	require.NoError(t, err)
	require.Len(t, result.List, 1)
	assert.Equal(t, "湖边小屋", result.List[0].ProductName)
}

func TestSearchProductsKeepsESOrder(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	ctx := context.Background()

	first := env.seedProduct(t, agent)
	second := env.seedProduct(t, agent)

	env.esStub.ids = []uint64{second.ID, first.ID}
	env.esStub.total = 2

	result, err := env.svc.SearchProducts(ctx, 0, &dto.ProductSearchReq{
		PageReq: dto.PageReq{Page: 1, Limit: 10},
		Text:    "两房",
	})
	require.NoError(t, err)
	require.Len(t, result.List, 2)
	assert.Equal(t, second.ID, result.List[0].ID)
	assert.Equal(t, first.ID, result.List[1].ID)
}

func TestFavoriteListingAnnotated(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	ctx := context.Background()

	liked := env.seedProduct(t, agent)
	env.seedProduct(t, agent)

	_, err := env.svc.LikeProduct(ctx, agent.ID, liked.ID)
	require.NoError(t, err)

	result, err := env.svc.GetFavoriteProducts(ctx, agent.ID, &dto.PageReq{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.List, 1)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, liked.ID, result.List[0].ID)
	assert.True(t, result.List[0].MeLiked.Liked)
}

func TestFavoriteListingTotalSpansPages(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p := env.seedProduct(t, agent)
		_, err := env.svc.LikeProduct(ctx, agent.ID, p.ID)
		require.NoError(t, err)
	}

	// 总数是台账里的全量，不是当页条数
	result, err := env.svc.GetFavoriteProducts(ctx, agent.ID, &dto.PageReq{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.List, 2)
	assert.Equal(t, int64(3), result.Total)

	result, err = env.svc.GetFavoriteProducts(ctx, agent.ID, &dto.PageReq{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.List, 1)
	assert.Equal(t, int64(3), result.Total)
}

func TestReadsSurviveAnnotationFailure(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	ctx := context.Background()

	product := env.seedProduct(t, agent)
	_, err := env.svc.LikeProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)

	// 台账查询故障时读取照常返回，标注按未点赞未收藏兜底
	require.NoError(t, env.db.Migrator().DropTable(&model.Engagement{}))

	got, err := env.svc.GetProduct(ctx, agent.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, got.MeLiked.Liked)
	assert.False(t, got.MeLiked.Saved)

	listed, err := env.svc.GetProducts(ctx, agent.ID, &dto.ProductsInquiry{
		PageReq: dto.PageReq{Page: 1, Limit: 10},
		Sort:    "createdAt",
	})
	require.NoError(t, err)
	require.Len(t, listed.List, 1)
	assert.False(t, listed.List[0].MeLiked.Liked)
}

func TestVisitedListingTotalSpansPages(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p := env.seedProduct(t, agent)
		_, err := env.svc.ViewProduct(ctx, agent.ID, p.ID)
		require.NoError(t, err)
	}

	result, err := env.svc.GetVisitedProducts(ctx, agent.ID, &dto.PageReq{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.List, 2)
	assert.Equal(t, int64(3), result.Total)
}

func TestAdminRestoreBypassesStatusGate(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	product := env.seedProduct(t, agent)
	ctx := context.Background()

	// 卖家软删除后普通 Update 入口已对它失效
	_, err := env.svc.UpdateProduct(ctx, agent.ID, product.ID, &dto.ProductUpdateReq{
		ProductStatus: "DELETE",
	})
	require.NoError(t, err)
	_, err = env.svc.UpdateProduct(ctx, agent.ID, product.ID, &dto.ProductUpdateReq{
		ProductName: "改不动的名字",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	// 管理端入口不受状态闸口限制，可以恢复
	restored, err := env.svc.UpdateProductByAdmin(ctx, product.ID, &dto.ProductUpdateReq{
		ProductStatus: "ACTIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", restored.ProductStatus)
}

func TestOwnerCounterConservedOnDeleteRestoreDelete(t *testing.T) {
	env := newProductTestEnv(t)
	agent := env.seedAgent(t, "agent1")
	product := env.seedProduct(t, agent)
	ctx := context.Background()

	_, err := env.svc.UpdateProduct(ctx, agent.ID, product.ID, &dto.ProductUpdateReq{ProductStatus: "DELETE"})
	require.NoError(t, err)

	// 已删除的房源再被管理端删除，不能重复扣减
	_, err = env.svc.UpdateProductByAdmin(ctx, product.ID, &dto.ProductUpdateReq{ProductStatus: "DELETE"})
	require.NoError(t, err)

	owner, err := env.memberRepo.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, owner.MemberProducts)
}
