package consts

// 冗余计数列名，计数投影只接受这些列
const (
	ColProductLikes    = "product_likes"
	ColProductSaves    = "product_saves"
	ColProductViews    = "product_views"
	ColProductComments = "product_comments"

	ColArticleLikes    = "article_likes"
	ColArticleSaves    = "article_saves"
	ColArticleViews    = "article_views"
	ColArticleComments = "article_comments"

	ColPostLikes    = "post_likes"
	ColPostSaves    = "post_saves"
	ColPostViews    = "post_views"
	ColPostComments = "post_comments"

	ColMemberProducts   = "member_products"
	ColMemberArticles   = "member_articles"
	ColMemberPosts      = "member_posts"
	ColMemberFollowers  = "member_followers"
	ColMemberFollowings = "member_followings"
	ColMemberLikes      = "member_likes"
	ColMemberViews      = "member_views"
	ColMemberComments   = "member_comments"
)

var ProductCounterColumns = map[string]bool{
	ColProductLikes:    true,
	ColProductSaves:    true,
	ColProductViews:    true,
	ColProductComments: true,
}

var ArticleCounterColumns = map[string]bool{
	ColArticleLikes:    true,
	ColArticleSaves:    true,
	ColArticleViews:    true,
	ColArticleComments: true,
}

var PostCounterColumns = map[string]bool{
	ColPostLikes:    true,
	ColPostSaves:    true,
	ColPostViews:    true,
	ColPostComments: true,
}

var MemberCounterColumns = map[string]bool{
	ColMemberProducts:   true,
	ColMemberArticles:   true,
	ColMemberPosts:      true,
	ColMemberFollowers:  true,
	ColMemberFollowings: true,
	ColMemberLikes:      true,
	ColMemberViews:      true,
	ColMemberComments:   true,
}

// 排序字段白名单：对外的 sort 参数 -> 实际排序列。
// 不在表里的 sort 一律按参数错误拒绝，不会落到数据库。
var ProductSortFields = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"productLikes": "product_likes",
	"productViews": "product_views",
	"productPrice": "product_price",
}

var ArticleSortFields = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"articleLikes": "article_likes",
	"articleViews": "article_views",
}

var PostSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"postLikes": "post_likes",
	"postViews": "post_views",
}

var MemberSortFields = map[string]string{
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"memberLikes":     "member_likes",
	"memberViews":     "member_views",
	"memberFollowers": "member_followers",
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

const (
	MimePrefixImage = "image"
)
