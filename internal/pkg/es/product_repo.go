package es

import (
	"context"
	"errors"
	log "log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type ProductRepo interface {
	SearchProducts(ctx context.Context, queryText string, from, size int) ([]uint64, int64, error)
	IndexProduct(ctx context.Context, product *ProductES, version int64) error
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewProductRepo(client *elasticsearch.TypedClient) ProductRepo {
	return &ProductRepoImpl{client: client}
}

// SearchProducts 按名称/描述/地址做全文检索，只返回 ACTIVE 房源的 id，
// 行数据回 MySQL 取，避免索引滞后导致的脏读
func (s *ProductRepoImpl) SearchProducts(ctx context.Context, queryText string, from, size int) ([]uint64, int64, error) {
	if from >= MaxSearchDepth {
		return []uint64{}, 0, nil
	}

	req := &search.Request{
		Query: &types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{{
					MultiMatch: &types.MultiMatchQuery{
						Query:  queryText,
						Fields: []string{"product_name^3", "product_desc", "product_address^2"},
					},
				}},
				Filter: []types.Query{{
					Term: map[string]types.TermQuery{
						"product_status": {Value: "ACTIVE"},
					},
				}},
			},
		},
	}

	res, err := s.client.Search().
		Index(ProductIndex).
		Request(req).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc ProductES
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		ids = append(ids, doc.ID)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}
	return ids, total, nil
}

// IndexProduct 以 MySQL 侧版本号做外部版本控制，旧事件直接丢弃
func (s *ProductRepoImpl) IndexProduct(ctx context.Context, product *ProductES, version int64) error {
	docID := strconv.FormatUint(product.ID, 10)

	_, err := s.client.Index(ProductIndex).
		Id(docID).
		Document(product).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				log.Warn("Version conflict detected, skipping old data",
					"product_id", product.ID,
					"version", version)
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *ProductRepoImpl) DeleteProduct(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)
	_, err := s.client.Delete(ProductIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				log.Warn("Product already deleted or not found in ES", "id", id)
				return nil
			}
		}
		return err
	}
	return nil
}
