package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrMemberNotFound      = errors.New("会员不存在")
	ErrMemberBlocked       = errors.New("会员已被封禁")
	ErrMemberBlockSelf     = errors.New("不能封禁自己")
	ErrMemberNickExist     = errors.New("昵称已存在")
	ErrPasswordIncorrect   = errors.New("密码错误")
	ErrProductNotFound     = errors.New("房源不存在")
	ErrArticleNotFound     = errors.New("文章不存在")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrNotificationMissing = errors.New("通知不存在")
	ErrTargetInvalid       = errors.New("目标对象无效")
	ErrCreateFailed        = errors.New("创建失败")
	ErrUpdateFailed        = errors.New("更新失败")
	ErrFollowSelf          = errors.New("不能关注自己")
	ErrFollowMissing       = errors.New("未关注该会员")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrMemberNotFound:      NotFound,
	ErrMemberBlocked:       Unauthorized,
	ErrMemberBlockSelf:     Unauthorized,
	ErrMemberNickExist:     BadRequest,
	ErrPasswordIncorrect:   Unauthorized,
	ErrProductNotFound:     NotFound,
	ErrArticleNotFound:     NotFound,
	ErrPostNotFound:        NotFound,
	ErrCommentNotFound:     NotFound,
	ErrNotificationMissing: NotFound,
	ErrTargetInvalid:       BadRequest,
	ErrCreateFailed:        InternalServerError,
	ErrUpdateFailed:        InternalServerError,
	ErrFollowSelf:          BadRequest,
	ErrFollowMissing:       BadRequest,
	ErrFileNotSupported:    BadRequest,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
