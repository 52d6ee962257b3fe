package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	Create(ctx context.Context, msg *NotificationModel) error
	List(ctx context.Context, memberID uint64, unreadOnly bool, limit, offset int64) ([]*NotificationModel, int64, error)
	MarkRead(ctx context.Context, memberID uint64, msgIDs []string) error
	MarkAllRead(ctx context.Context, memberID uint64) error
	UnreadCount(ctx context.Context, memberID uint64) (int64, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

func (s *notificationRepoImpl) Create(ctx context.Context, msg *NotificationModel) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// List 按时间倒序分页取收件箱
func (s *notificationRepoImpl) List(ctx context.Context, memberID uint64, unreadOnly bool, limit, offset int64) ([]*NotificationModel, int64, error) {
	filter := bson.M{"member_id": memberID}
	if unreadOnly {
		filter["is_read"] = false
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*NotificationModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// MarkRead 批量标记已读，只能动自己的收件箱
func (s *notificationRepoImpl) MarkRead(ctx context.Context, memberID uint64, msgIDs []string) error {
	objectIDs := make([]primitive.ObjectID, 0, len(msgIDs))
	for _, id := range msgIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return mongo.ErrInvalidIndexValue
		}
		objectIDs = append(objectIDs, objectID)
	}
	filter := bson.M{"_id": bson.M{"$in": objectIDs}, "member_id": memberID}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllRead 一键清除未读
func (s *notificationRepoImpl) MarkAllRead(ctx context.Context, memberID uint64) error {
	filter := bson.M{"member_id": memberID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

func (s *notificationRepoImpl) UnreadCount(ctx context.Context, memberID uint64) (int64, error) {
	filter := bson.M{"member_id": memberID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}
