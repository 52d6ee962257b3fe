package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/minio"
	"Cuben/internal/pkg/redis"
	"Cuben/internal/pkg/security"
	"Cuben/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type MemberService interface {
	Signup(ctx context.Context, req *dto.SignupReq) (*dto.MemberDTO, error)
	Login(ctx context.Context, req *dto.LoginReq) (*dto.MemberDTO, error)
	Logout(ctx context.Context, token string) error
	GetMember(ctx context.Context, meID, memberID uint64) (*dto.MemberDTO, error)
	UpdateMember(ctx context.Context, memberID uint64, req *dto.MemberUpdateReq) (*dto.MemberDTO, error)
	GetAgents(ctx context.Context, meID uint64, inquiry *dto.AgentsInquiry) (*dto.MembersDTO, error)
	LikeMember(ctx context.Context, meID, memberID uint64) (*dto.EngagementStateDTO, error)

	GetAllMembers(ctx context.Context, inquiry *dto.MembersInquiry) (*dto.MembersDTO, error)
	UpdateMemberByAdmin(ctx context.Context, adminID uint64, req *dto.MemberAdminUpdateReq) (*dto.MemberDTO, error)
}

type memberServiceImpl struct {
	memberRepo repository.MemberRepo
	followRepo repository.MemberFollowRepo
	engagement EngagementService
}

func NewMemberService(
	memberRepo repository.MemberRepo,
	followRepo repository.MemberFollowRepo,
	engagement EngagementService,
) MemberService {
	return &memberServiceImpl{
		memberRepo: memberRepo,
		followRepo: followRepo,
		engagement: engagement,
	}
}

func (s *memberServiceImpl) Signup(ctx context.Context, req *dto.SignupReq) (*dto.MemberDTO, error) {
	existing, err := s.memberRepo.GetByNick(ctx, req.MemberNick)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberNickExist
	}

	passwordHash, err := security.HashPassword(req.MemberPassword)
	if err != nil {
		return nil, err
	}

	memberType := model.MemberUser
	if req.MemberType != "" {
		memberType = model.MemberType(req.MemberType)
	}
	member := &model.Member{
		MemberType:     memberType,
		MemberStatus:   model.MemberStatusActive,
		MemberNick:     req.MemberNick,
		MemberFullName: req.MemberFullName,
		MemberPhone:    req.MemberPhone,
		MemberPassword: passwordHash,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, ErrCreateFailed
	}

	token, err := security.GenerateToken(member.ID, string(member.MemberType))
	if err != nil {
		return nil, err
	}
	result := toMemberDTO(member)
	result.AccessToken = token
	return result, nil
}

func (s *memberServiceImpl) Login(ctx context.Context, req *dto.LoginReq) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.GetByNick(ctx, req.MemberNick)
	if err != nil {
		return nil, err
	}
	if member == nil || member.MemberStatus == model.MemberStatusDelete {
		return nil, ErrMemberNotFound
	}
	if member.MemberStatus == model.MemberStatusBlock {
		return nil, ErrMemberBlocked
	}
	if err := security.CheckPasswordHash(req.MemberPassword, member.MemberPassword); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(member.ID, string(member.MemberType))
	if err != nil {
		return nil, err
	}
	result := toMemberDTO(member)
	result.AccessToken = token
	return result, nil
}

// Logout 把 token 签名放进黑名单，有效期与 token 剩余寿命同级
func (s *memberServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, security.JWTExpirationTime)
}

func (s *memberServiceImpl) GetMember(ctx context.Context, meID, memberID uint64) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID, model.MemberStatusActive, model.MemberStatusBlock)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	result := toMemberDTO(member)
	// 主页点赞数走缓存回源台账，列值只作兜底
	if likes, err := s.engagement.GetActionCount(ctx, memberID, model.TargetMember, model.ActionLike); err == nil {
		result.MemberLikes = int(likes)
	}
	if meID > 0 && meID != memberID {
		me, err := s.engagement.MeEngagement(ctx, meID, memberID, model.TargetMember)
		if err != nil {
			// 标注失败不阻断读取，按未点赞未收藏兜底
			log.Error("me engagement failed", "memberID", memberID, "err", err)
			me = dto.MeEngagement{}
		}
		result.MeLiked = me
		followed, err := s.followRepo.Exists(ctx, meID, memberID)
		if err != nil {
			return nil, err
		}
		result.MeFollowed = followed
	}
	return result, nil
}

func (s *memberServiceImpl) UpdateMember(ctx context.Context, memberID uint64, req *dto.MemberUpdateReq) (*dto.MemberDTO, error) {
	updates := map[string]interface{}{}
	if req.MemberNick != "" {
		existing, err := s.memberRepo.GetByNick(ctx, req.MemberNick)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != memberID {
			return nil, ErrMemberNickExist
		}
		updates["member_nick"] = req.MemberNick
	}
	if req.MemberFullName != "" {
		updates["member_full_name"] = req.MemberFullName
	}
	if req.MemberImage != "" {
		updates["member_image"] = req.MemberImage
	}
	if req.MemberDesc != "" {
		updates["member_desc"] = req.MemberDesc
	}
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	affected, err := s.memberRepo.Update(ctx, memberID, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrMemberNotFound
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	return toMemberDTO(member), nil
}

func (s *memberServiceImpl) GetAgents(ctx context.Context, meID uint64, inquiry *dto.AgentsInquiry) (*dto.MembersDTO, error) {
	sortColumn, ok := consts.MemberSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	members, total, err := s.memberRepo.Search(ctx, &repository.MemberQuery{
		Types:      []model.MemberType{model.MemberAgent},
		Statuses:   []model.MemberStatus{model.MemberStatusActive},
		Text:       inquiry.Text,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	})
	if err != nil {
		return nil, err
	}
	return s.expandMembers(ctx, meID, members, total)
}

func (s *memberServiceImpl) LikeMember(ctx context.Context, meID, memberID uint64) (*dto.EngagementStateDTO, error) {
	if meID == memberID {
		return nil, ErrTargetInvalid
	}
	if _, err := s.memberRepo.GetByID(ctx, memberID, model.MemberStatusActive); err != nil {
		return nil, ErrMemberNotFound
	}

	modifier, err := s.engagement.Toggle(ctx, meID, memberID, model.TargetMember, model.ActionLike)
	if err != nil {
		return nil, err
	}
	updated, err := s.memberRepo.AdjustCounter(ctx, memberID, consts.ColMemberLikes, modifier)
	if err != nil {
		return nil, ErrUpdateFailed
	}
	return &dto.EngagementStateDTO{TargetID: memberID, Modifier: modifier, Count: updated.MemberLikes}, nil
}

func (s *memberServiceImpl) GetAllMembers(ctx context.Context, inquiry *dto.MembersInquiry) (*dto.MembersDTO, error) {
	sortColumn, ok := consts.MemberSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	q := &repository.MemberQuery{
		Text:       inquiry.Text,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	}
	if inquiry.MemberStatus != "" {
		q.Statuses = []model.MemberStatus{model.MemberStatus(inquiry.MemberStatus)}
	}
	if inquiry.MemberType != "" {
		q.Types = []model.MemberType{model.MemberType(inquiry.MemberType)}
	}

	members, total, err := s.memberRepo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.expandMembers(ctx, 0, members, total)
}

func (s *memberServiceImpl) UpdateMemberByAdmin(ctx context.Context, adminID uint64, req *dto.MemberAdminUpdateReq) (*dto.MemberDTO, error) {
	if req.MemberID == adminID && req.MemberStatus != "" && req.MemberStatus != string(model.MemberStatusActive) {
		return nil, ErrMemberBlockSelf
	}

	updates := map[string]interface{}{}
	if req.MemberStatus != "" {
		updates["member_status"] = req.MemberStatus
	}
	if req.MemberType != "" {
		updates["member_type"] = req.MemberType
	}
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	member, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	// 管理员更新不受 ACTIVE 状态闸口限制，解封也要能操作
	if _, err := s.memberRepo.UpdateAny(ctx, member.ID, updates); err != nil {
		return nil, err
	}

	updated, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	return toMemberDTO(updated), nil
}

// expandMembers 一次 IN 查询补齐 meLiked / meFollowed
func (s *memberServiceImpl) expandMembers(ctx context.Context, meID uint64, members []*model.Member, total int64) (*dto.MembersDTO, error) {
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	meMap, err := s.engagement.MeEngagementMap(ctx, meID, model.TargetMember, ids)
	if err != nil {
		log.Error("me engagement map failed", "err", err)
		meMap = map[uint64]dto.MeEngagement{}
	}
	followedSet := map[uint64]struct{}{}
	if meID > 0 && len(ids) > 0 {
		followedIDs, err := s.followRepo.FilterFollowings(ctx, meID, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range followedIDs {
			followedSet[id] = struct{}{}
		}
	}

	list := make([]*dto.MemberDTO, 0, len(members))
	for _, m := range members {
		item := toMemberDTO(m)
		item.MeLiked = meMap[m.ID]
		_, item.MeFollowed = followedSet[m.ID]
		list = append(list, item)
	}
	return &dto.MembersDTO{List: list, Total: total}, nil
}

func toMemberDTO(member *model.Member) *dto.MemberDTO {
	item := &dto.MemberDTO{}
	_ = copier.Copy(item, member)
	if member.MemberImage != "" {
		item.MemberImage = minio.GetPublicURL(member.MemberImage)
	}
	item.CreatedAt = member.CreatedAt.Format("2006-01-02 15:04:05")
	return item
}
