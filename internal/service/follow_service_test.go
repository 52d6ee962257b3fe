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

type followTestEnv struct {
	db         *gorm.DB
	svc        FollowService
	memberRepo repository.MemberRepo
}

func newFollowTestEnv(t *testing.T) *followTestEnv {
	t.Helper()
	db := setupTestDB(t, &model.Member{}, &model.MemberFollow{}, &model.Engagement{}, &model.View{})
	setupTestRedis(t)

	memberRepo := repository.NewMemberRepo(db)
	engagement := NewEngagementService(repository.NewEngagementRepo(db), repository.NewViewRepo(db))
	svc := NewFollowService(repository.NewMemberFollowRepo(db), memberRepo, engagement)
	return &followTestEnv{db: db, svc: svc, memberRepo: memberRepo}
}

func (e *followTestEnv) seedMember(t *testing.T, nick string) *model.Member {
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

func TestSubscribeIdempotent(t *testing.T) {
	env := newFollowTestEnv(t)
	fan := env.seedMember(t, "fan")
	idol := env.seedMember(t, "idol")
	ctx := context.Background()

	require.NoError(t, env.svc.Subscribe(ctx, fan.ID, idol.ID))
	// 重复关注静默吞掉，计数不再涨
	require.NoError(t, env.svc.Subscribe(ctx, fan.ID, idol.ID))

	got, err := env.memberRepo.GetByID(ctx, idol.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberFollowers)
	got, err = env.memberRepo.GetByID(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberFollowings)
}

func TestSubscribeSelfRejected(t *testing.T) {
	env := newFollowTestEnv(t)
	fan := env.seedMember(t, "fan")

	err := env.svc.Subscribe(context.Background(), fan.ID, fan.ID)
	assert.ErrorIs(t, err, ErrFollowSelf)
}

func TestUnsubscribeRestoresCounters(t *testing.T) {
	env := newFollowTestEnv(t)
	fan := env.seedMember(t, "fan")
	idol := env.seedMember(t, "idol")
	ctx := context.Background()

	require.NoError(t, env.svc.Subscribe(ctx, fan.ID, idol.ID))
	require.NoError(t, env.svc.Unsubscribe(ctx, fan.ID, idol.ID))

	got, err := env.memberRepo.GetByID(ctx, idol.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MemberFollowers)

	err = env.svc.Unsubscribe(ctx, fan.ID, idol.ID)
	assert.ErrorIs(t, err, ErrFollowMissing)
}

func TestFollowersAnnotatedWithMeFollowed(t *testing.T) {
	env := newFollowTestEnv(t)
	fan := env.seedMember(t, "fan")
	idol := env.seedMember(t, "idol")
	other := env.seedMember(t, "other")
	ctx := context.Background()

	require.NoError(t, env.svc.Subscribe(ctx, fan.ID, idol.ID))
	require.NoError(t, env.svc.Subscribe(ctx, other.ID, idol.ID))
	// fan 也关注了 other，粉丝列表里 other 要带上 meFollowed
	require.NoError(t, env.svc.Subscribe(ctx, fan.ID, other.ID))

	result, err := env.svc.GetFollowers(ctx, fan.ID, idol.ID, &dto.PageReq{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.List, 2)
	assert.Equal(t, int64(2), result.Total)

	byID := map[uint64]bool{}
	for _, m := range result.List {
		byID[m.ID] = m.MeFollowed
	}
	assert.True(t, byID[other.ID])
	assert.False(t, byID[fan.ID])
}
