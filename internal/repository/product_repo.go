package repository

import (
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrCounterColumn 计数列不在白名单内
var ErrCounterColumn = errors.New("counter column not allowed")

// ProductQuery 商品列表的过滤条件，排序列在 service 层校验后传入
type ProductQuery struct {
	MemberID   uint64
	Statuses   []model.ProductStatus
	TypeList   []model.ProductType
	PriceMin   int64
	PriceMax   int64
	PeriodFrom *time.Time
	PeriodTo   *time.Time
	Text       string
	SortColumn string
	Direction  string
	Page       int
	Limit      int
}

type ProductRepo interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uint64, statuses ...model.ProductStatus) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Product, error)
	Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error)
	UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error)
	AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Product, error)
	Search(ctx context.Context, q *ProductQuery) ([]*model.Product, int64, error)
}

type ProductRepoImpl struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepo {
	return &ProductRepoImpl{db}
}

func (s *ProductRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepoImpl) GetByID(ctx context.Context, id uint64, statuses ...model.ProductStatus) (*model.Product, error) {
	var product model.Product
	q := s.db.WithContext(ctx).Preload("Member").Where("id = ?", id)
	if len(statuses) > 0 {
		q = q.Where("product_status IN ?", statuses)
	}
	if err := q.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Product, error) {
	var products []*model.Product
	err := s.db.WithContext(ctx).Preload("Member").Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// Update 条件更新：memberID 为 0 表示管理员操作，不校验归属
func (s *ProductRepoImpl) Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND product_status = ?", id, model.ProductStatusActive)
	if memberID > 0 {
		q = q.Where("member_id = ?", memberID)
	}
	res := q.Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateAny 不校验状态和归属的更新，管理端下架/恢复走这里
func (s *ProductRepoImpl) UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// AdjustCounter 原子增减冗余计数并返回更新后的实体。
// 除本方法外任何代码不得写这些列。
func (s *ProductRepoImpl) AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Product, error) {
	if !consts.ProductCounterColumns[column] {
		return nil, ErrCounterColumn
	}
	res := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetByID(ctx, id)
}

// Search 同一过滤集上并行取当前页和总数
func (s *ProductRepoImpl) Search(ctx context.Context, q *ProductQuery) ([]*model.Product, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("product_status IN ?", q.Statuses)
		if q.MemberID > 0 {
			db = db.Where("member_id = ?", q.MemberID)
		}
		if len(q.TypeList) > 0 {
			db = db.Where("product_type IN ?", q.TypeList)
		}
		if q.PriceMin > 0 {
			db = db.Where("product_price >= ?", q.PriceMin)
		}
		if q.PriceMax > 0 {
			db = db.Where("product_price <= ?", q.PriceMax)
		}
		if q.PeriodFrom != nil {
			db = db.Where("created_at >= ?", q.PeriodFrom)
		}
		if q.PeriodTo != nil {
			db = db.Where("created_at <= ?", q.PeriodTo)
		}
		if q.Text != "" {
			pattern := "%" + q.Text + "%"
			db = db.Where("product_name LIKE ? OR product_desc LIKE ?", pattern, pattern)
		}
		return db
	}

	var (
		products []*model.Product
		total    int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).
			Order(q.SortColumn + " " + q.Direction).
			Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
			Preload("Member").
			Find(&products).Error
	})
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).Model(&model.Product{}).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
