package kafka

import (
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

type ActionParams struct {
	TargetID       uint64
	CountKeyPrefix string
	DirtyKey       string
	IsIncrement    bool
	NotifyFunc     func()
}

// ExecAction 维护计数缓存与脏集合。
// 缓存 key 不存在时不做增减，等下一次读取从台账重建，避免写出残缺计数。
func ExecAction(ctx context.Context, params ActionParams) {
	if params.CountKeyPrefix != "" {
		key := params.CountKeyPrefix + strconv.FormatUint(params.TargetID, 10)
		if _, err := redis.GetInt64(ctx, key); err == nil {
			delta := int64(1)
			if !params.IsIncrement {
				delta = -1
			}
			if err := redis.IncrBy(ctx, key, delta); err != nil {
				log.ErrorContext(ctx, "incr count cache error", "key", key, "err", err)
			}
		} else if !errors.Is(err, goredis.Nil) {
			log.ErrorContext(ctx, "read count cache error", "key", key, "err", err)
		}
	}

	if params.DirtyKey != "" {
		if err := redis.SAdd(ctx, params.DirtyKey, params.TargetID); err != nil {
			log.ErrorContext(ctx, "mark dirty error", "key", params.DirtyKey, "err", err)
		}
	}

	if params.NotifyFunc != nil {
		params.NotifyFunc()
	}
}

// 计数缓存 key 与脏集合 key 按 (目标类型, 动作) 查表，
// 会员收藏没有冗余计数列，对应 key 为空串。
func actionKeys(targetKind, action string) (countPrefix, dirtyKey string) {
	switch targetKind {
	case "PRODUCT":
		dirtyKey = consts.ProductDirtyKey
		if action == "LIKE" {
			countPrefix = consts.ProductLikeKey
		} else {
			countPrefix = consts.ProductSaveKey
		}
	case "ARTICLE":
		dirtyKey = consts.ArticleDirtyKey
		if action == "LIKE" {
			countPrefix = consts.ArticleLikeKey
		} else {
			countPrefix = consts.ArticleSaveKey
		}
	case "POST":
		dirtyKey = consts.PostDirtyKey
		if action == "LIKE" {
			countPrefix = consts.PostLikeKey
		} else {
			countPrefix = consts.PostSaveKey
		}
	case "MEMBER":
		dirtyKey = consts.MemberDirtyKey
		if action == "LIKE" {
			countPrefix = consts.MemberLikeKey
		}
	}
	return
}

func viewKeys(targetKind string) (countPrefix, dirtyKey string) {
	switch targetKind {
	case "PRODUCT":
		return consts.ProductViewKey, consts.ProductDirtyKey
	case "ARTICLE":
		return consts.ArticleViewKey, consts.ArticleDirtyKey
	case "POST":
		return consts.PostViewKey, consts.PostDirtyKey
	case "MEMBER":
		return consts.MemberViewKey, consts.MemberDirtyKey
	}
	return "", ""
}
