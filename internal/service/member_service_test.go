package service

import (
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/repository"
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memberTestEnv struct {
	db  *gorm.DB
	mr  *miniredis.Miniredis
	svc MemberService
}

func newMemberTestEnv(t *testing.T) *memberTestEnv {
	t.Helper()
	db := setupTestDB(t, &model.Member{}, &model.MemberFollow{}, &model.Engagement{}, &model.View{})
	mr := setupTestRedis(t)

	engagement := NewEngagementService(repository.NewEngagementRepo(db), repository.NewViewRepo(db))
	svc := NewMemberService(repository.NewMemberRepo(db), repository.NewMemberFollowRepo(db), engagement)

	return &memberTestEnv{db: db, mr: mr, svc: svc}
}

func (e *memberTestEnv) seedMember(t *testing.T, nick string) *model.Member {
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

func TestGetMemberLikesBackedByLedger(t *testing.T) {
	env := newMemberTestEnv(t)
	ctx := context.Background()

	fan := env.seedMember(t, "fan")
	star := env.seedMember(t, "star")

	state, err := env.svc.LikeMember(ctx, fan.ID, star.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Modifier)

	// 缓存未命中时回源台账计数
	got, err := env.svc.GetMember(ctx, 0, star.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberLikes)
}

func TestGetMemberLikesServedFromCache(t *testing.T) {
	env := newMemberTestEnv(t)
	ctx := context.Background()

	star := env.seedMember(t, "star")

	// 缓存命中时以缓存值为准，不读列值
	key := consts.MemberLikeKey + strconv.FormatUint(star.ID, 10)
	require.NoError(t, env.mr.Set(key, "5"))

	got, err := env.svc.GetMember(ctx, 0, star.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.MemberLikes)
}
