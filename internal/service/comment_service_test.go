package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type commentTestEnv struct {
	db          *gorm.DB
	svc         CommentService
	articleRepo repository.ArticleRepo
}

func newCommentTestEnv(t *testing.T) *commentTestEnv {
	t.Helper()
	db := setupTestDB(t, &model.Member{}, &model.Product{}, &model.Article{}, &model.Post{}, &model.Comment{})
	setupTestRedis(t)

	articleRepo := repository.NewArticleRepo(db)
	svc := NewCommentService(
		repository.NewCommentRepo(db),
		repository.NewProductRepo(db),
		articleRepo,
		repository.NewPostRepo(db),
		repository.NewMemberRepo(db),
	)
	return &commentTestEnv{db: db, svc: svc, articleRepo: articleRepo}
}

func (e *commentTestEnv) seedMember(t *testing.T, nick string) *model.Member {
	t.Helper()
	member := &model.Member{
		MemberType:     model.MemberUser,
		MemberStatus:   model.MemberStatusActive,
		MemberNick:     nick,
		MemberPhone:    nick + "-phone",
		MemberPassword: "hashed",
	}
	require.NoError(t, e.db.Create(member).Error)
	return member
}

func (e *commentTestEnv) seedArticle(t *testing.T, author *model.Member, status model.ArticleStatus) *model.Article {
	t.Helper()
	article := &model.Article{
		MemberID:        author.ID,
		ArticleCategory: model.ArticleKnowledge,
		ArticleStatus:   status,
		ArticleTitle:    "二手房交易流程",
		ArticleContent:  "从签约到过户的完整步骤。",
	}
	require.NoError(t, e.db.Create(article).Error)
	return article
}

func TestCreateCommentAdjustsRefCounter(t *testing.T) {
	env := newCommentTestEnv(t)
	author := env.seedMember(t, "writer")
	reader := env.seedMember(t, "reader")
	article := env.seedArticle(t, author, model.ArticleStatusActive)
	ctx := context.Background()

	comment, err := env.svc.CreateComment(ctx, reader.ID, &dto.CommentCreateReq{
		CommentGroup:   "ARTICLE",
		CommentRefID:   article.ID,
		CommentContent: "写得很实用",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", comment.CommentStatus)

	got, err := env.articleRepo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ArticleComments)

	// 删除后父实体计数回落
	require.NoError(t, env.svc.DeleteComment(ctx, reader.ID, comment.ID))
	got, err = env.articleRepo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ArticleComments)
}

func TestCommentOnInactiveRefRejected(t *testing.T) {
	env := newCommentTestEnv(t)
	author := env.seedMember(t, "writer")
	reader := env.seedMember(t, "reader")
	article := env.seedArticle(t, author, model.ArticleStatusDelete)

	_, err := env.svc.CreateComment(context.Background(), reader.ID, &dto.CommentCreateReq{
		CommentGroup:   "ARTICLE",
		CommentRefID:   article.ID,
		CommentContent: "评论不该成功",
	})
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestCommentOwnershipEnforced(t *testing.T) {
	env := newCommentTestEnv(t)
	author := env.seedMember(t, "writer")
	reader := env.seedMember(t, "reader")
	stranger := env.seedMember(t, "stranger")
	article := env.seedArticle(t, author, model.ArticleStatusActive)
	ctx := context.Background()

	comment, err := env.svc.CreateComment(ctx, reader.ID, &dto.CommentCreateReq{
		CommentGroup:   "ARTICLE",
		CommentRefID:   article.ID,
		CommentContent: "原始内容",
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateComment(ctx, stranger.ID, &dto.CommentUpdateReq{
		CommentID:      comment.ID,
		CommentContent: "别人改不了",
	})
	assert.ErrorIs(t, err, ErrCommentNotFound)

	err = env.svc.DeleteComment(ctx, stranger.ID, comment.ID)
	assert.ErrorIs(t, err, UnauthorizedError)

	updated, err := env.svc.UpdateComment(ctx, reader.ID, &dto.CommentUpdateReq{
		CommentID:      comment.ID,
		CommentContent: "作者自己改的",
	})
	require.NoError(t, err)
	assert.Equal(t, "作者自己改的", updated.CommentContent)
}

func TestDeleteCommentTwiceFails(t *testing.T) {
	env := newCommentTestEnv(t)
	author := env.seedMember(t, "writer")
	article := env.seedArticle(t, author, model.ArticleStatusActive)
	ctx := context.Background()

	comment, err := env.svc.CreateComment(ctx, author.ID, &dto.CommentCreateReq{
		CommentGroup:   "ARTICLE",
		CommentRefID:   article.ID,
		CommentContent: "一会就删",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteComment(ctx, author.ID, comment.ID))
	err = env.svc.DeleteComment(ctx, author.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	got, err := env.articleRepo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ArticleComments)
}

func TestGetCommentsExcludesDeleted(t *testing.T) {
	env := newCommentTestEnv(t)
	author := env.seedMember(t, "writer")
	article := env.seedArticle(t, author, model.ArticleStatusActive)
	ctx := context.Background()

	kept, err := env.svc.CreateComment(ctx, author.ID, &dto.CommentCreateReq{
		CommentGroup:   "ARTICLE",
		CommentRefID:   article.ID,
		CommentContent: "留着的评论",
	})
	require.NoError(t, err)
	gone, err := env.svc.CreateComment(ctx, author.ID, &dto.CommentCreateReq{
		CommentGroup:   "ARTICLE",
		CommentRefID:   article.ID,
		CommentContent: "要删的评论",
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.DeleteComment(ctx, author.ID, gone.ID))

	result, err := env.svc.GetComments(ctx, &dto.CommentsInquiry{
		PageReq:      dto.PageReq{Page: 1, Limit: 10},
		Sort:         "createdAt",
		CommentGroup: "ARTICLE",
		CommentRefID: article.ID,
	})
	require.NoError(t, err)
	require.Len(t, result.List, 1)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, kept.ID, result.List[0].ID)
}
