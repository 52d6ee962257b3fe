package kafka

import (
	"Cuben/internal/pkg/es"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

type ProductsHandler struct {
	productESRepo es.ProductRepo
}

func NewProductsHandler(productESRepo es.ProductRepo) *ProductsHandler {
	return &ProductsHandler{productESRepo: productESRepo}
}

func (s *ProductsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("product consumer setup")
	return nil
}

func (s *ProductsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("product consumer cleanup")
	return nil
}

func (s *ProductsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-product consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-product process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ProductsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "products")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT, UPDATE:
		return s.handleUpsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

// handleUpsert 同步房源到 ES，软删除的行按删除处理
func (s *ProductsHandler) handleUpsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	productID := StrToUint64(row["id"])

	if StrVal(row["product_status"]) == "DELETE" {
		return s.productESRepo.DeleteProduct(ctx, productID)
	}

	doc := &es.ProductES{
		ID:             productID,
		MemberID:       StrToUint64(row["member_id"]),
		ProductType:    StrVal(row["product_type"]),
		ProductStatus:  StrVal(row["product_status"]),
		ProductName:    StrVal(row["product_name"]),
		ProductAddress: StrVal(row["product_address"]),
		ProductDesc:    StrVal(row["product_desc"]),
		ProductPrice:   StrToInt64(row["product_price"]),
		ProductLikes:   int(StrToInt64(row["product_likes"])),
		ProductViews:   int(StrToInt64(row["product_views"])),
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", StrVal(row["created_at"]), time.Local); err == nil {
		doc.CreatedAt = t.Unix()
	}

	// binlog 事件时间做外部版本号，乱序的旧事件会被 ES 拒掉
	if err := s.productESRepo.IndexProduct(ctx, doc, msg.ES); err != nil {
		log.ErrorContext(ctx, "index product error", "productID", productID, "err", err)
		return err
	}

	log.InfoContext(ctx, "product indexed", "productID", productID, "status", doc.ProductStatus)
	return nil
}

func (s *ProductsHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	productID := StrToUint64(msg.Data[0]["id"])
	if err := s.productESRepo.DeleteProduct(ctx, productID); err != nil {
		log.ErrorContext(ctx, "delete product from es error", "productID", productID, "err", err)
		return err
	}
	log.InfoContext(ctx, "product removed from es", "productID", productID)
	return nil
}
