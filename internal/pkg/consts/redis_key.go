package consts

const (
	ProductLikeKey    = "product:like:"
	ProductSaveKey    = "product:save:"
	ProductViewKey    = "product:view:"
	ProductCommentKey = "product:comment:"
	ArticleLikeKey    = "article:like:"
	ArticleSaveKey    = "article:save:"
	ArticleViewKey    = "article:view:"
	ArticleCommentKey = "article:comment:"
	PostLikeKey       = "post:like:"
	PostSaveKey       = "post:save:"
	PostViewKey       = "post:view:"
	PostCommentKey    = "post:comment:"
	MemberLikeKey     = "member:like:"
	MemberViewKey     = "member:view:"

	ProductDirtyKey = "product:dirty"
	ArticleDirtyKey = "article:dirty"
	PostDirtyKey    = "post:dirty"
	MemberDirtyKey  = "member:dirty"

	TokenBlacklistKey = "auth:token:blacklist:"
)

const (
	RecountLockKey = "job:recount:lock"
)
