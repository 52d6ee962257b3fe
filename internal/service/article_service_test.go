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

type articleTestEnv struct {
	db  *gorm.DB
	svc ArticleService
}

func newArticleTestEnv(t *testing.T) *articleTestEnv {
	t.Helper()
	db := setupTestDB(t, &model.Member{}, &model.Article{}, &model.Engagement{}, &model.View{})
	setupTestRedis(t)

	engagement := NewEngagementService(repository.NewEngagementRepo(db), repository.NewViewRepo(db))
	svc := NewArticleService(repository.NewArticleRepo(db), repository.NewMemberRepo(db), engagement)
	return &articleTestEnv{db: db, svc: svc}
}

func (e *articleTestEnv) seedMember(t *testing.T, nick string) *model.Member {
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

func (e *articleTestEnv) seedArticle(t *testing.T, author *model.Member) *dto.ArticleDTO {
	t.Helper()
	article, err := e.svc.CreateArticle(context.Background(), author.ID, &dto.ArticleCreateReq{
		ArticleCategory: "KNOWLEDGE",
		ArticleTitle:    "买房避坑指南",
		ArticleContent:  "签合同前先查产权，再看学区。",
	})
	require.NoError(t, err)
	return article
}

func TestLikeArticleTogglesCounter(t *testing.T) {
	env := newArticleTestEnv(t)
	author := env.seedMember(t, "writer")
	reader := env.seedMember(t, "reader")
	article := env.seedArticle(t, author)
	ctx := context.Background()

	state, err := env.svc.LikeArticle(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Modifier)
	assert.Equal(t, 1, state.Count)

	state, err = env.svc.LikeArticle(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, state.Modifier)
	assert.Equal(t, 0, state.Count)
}

func TestViewArticleAnonymousIncrementsOnce(t *testing.T) {
	env := newArticleTestEnv(t)
	author := env.seedMember(t, "writer")
	article := env.seedArticle(t, author)
	ctx := context.Background()

	state, err := env.svc.ViewArticle(ctx, 0, article.ID)
	require.NoError(t, err)
	assert.True(t, state.IsNew)
	assert.Equal(t, 1, state.Count)

	state, err = env.svc.ViewArticle(ctx, 0, article.ID)
	require.NoError(t, err)
	assert.False(t, state.IsNew)
	assert.Equal(t, 1, state.Count)

	// 登录用户是另一个观察者，浏览数继续累加
	reader := env.seedMember(t, "reader")
	state, err = env.svc.ViewArticle(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, state.IsNew)
	assert.Equal(t, 2, state.Count)
}

func TestUpdateArticleOnlyByAuthor(t *testing.T) {
	env := newArticleTestEnv(t)
	author := env.seedMember(t, "writer")
	stranger := env.seedMember(t, "stranger")
	article := env.seedArticle(t, author)
	ctx := context.Background()

	_, err := env.svc.UpdateArticle(ctx, stranger.ID, article.ID, &dto.ArticleUpdateReq{
		ArticleTitle: "别人的标题",
	})
	assert.ErrorIs(t, err, ErrArticleNotFound)

	updated, err := env.svc.UpdateArticle(ctx, author.ID, article.ID, &dto.ArticleUpdateReq{
		ArticleTitle: "更新后的标题",
	})
	require.NoError(t, err)
	assert.Equal(t, "更新后的标题", updated.ArticleTitle)
}

func TestAdminRestoreDeletedArticle(t *testing.T) {
	env := newArticleTestEnv(t)
	author := env.seedMember(t, "writer")
	article := env.seedArticle(t, author)
	ctx := context.Background()

	_, err := env.svc.UpdateArticle(ctx, author.ID, article.ID, &dto.ArticleUpdateReq{
		ArticleStatus: "DELETE",
	})
	require.NoError(t, err)
	_, err = env.svc.GetArticle(ctx, 0, article.ID)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	restored, err := env.svc.UpdateArticleByAdmin(ctx, article.ID, &dto.ArticleUpdateReq{
		ArticleStatus: "ACTIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", restored.ArticleStatus)

	got, err := env.svc.GetArticle(ctx, 0, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.ID, got.ID)
}

func TestGetArticlesCategoryFilter(t *testing.T) {
	env := newArticleTestEnv(t)
	author := env.seedMember(t, "writer")
	ctx := context.Background()

	env.seedArticle(t, author)
	_, err := env.svc.CreateArticle(ctx, author.ID, &dto.ArticleCreateReq{
		ArticleCategory: "EVENTS",
		ArticleTitle:    "周末看房团",
		ArticleContent:  "本周六集合，先到先得。",
	})
	require.NoError(t, err)

	result, err := env.svc.GetArticles(ctx, 0, &dto.ArticlesInquiry{
		PageReq:         dto.PageReq{Page: 1, Limit: 10},
		Sort:            "createdAt",
		ArticleCategory: "EVENTS",
	})
	require.NoError(t, err)
	require.Len(t, result.List, 1)
	assert.Equal(t, "周末看房团", result.List[0].ArticleTitle)

	_, err = env.svc.GetArticles(ctx, 0, &dto.ArticlesInquiry{
		PageReq: dto.PageReq{Page: 1, Limit: 10},
		Sort:    "memberPassword",
	})
	assert.ErrorIs(t, err, ErrParamInvalid)
}
