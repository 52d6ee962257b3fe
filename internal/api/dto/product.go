package dto

type ProductCreateReq struct {
	ProductType    string   `json:"productType" binding:"required,oneof=APARTMENT VILLA HOUSE"`
	ProductName    string   `json:"productName" binding:"required,min=3,max=100"`
	ProductPrice   int64    `json:"productPrice" binding:"required,gt=0"`
	ProductImages  []string `json:"productImages" binding:"required,min=1,max=10"`
	ProductAddress string   `json:"productAddress" binding:"omitempty,max=255"`
	ProductDesc    string   `json:"productDesc" binding:"omitempty,min=5,max=500"`
}

type ProductUpdateReq struct {
	ProductStatus  string   `json:"productStatus" binding:"omitempty,oneof=ACTIVE SOLD DELETE"`
	ProductName    string   `json:"productName" binding:"omitempty,min=3,max=100"`
	ProductPrice   int64    `json:"productPrice" binding:"omitempty,gt=0"`
	ProductImages  []string `json:"productImages" binding:"omitempty,max=10"`
	ProductAddress string   `json:"productAddress" binding:"omitempty,max=255"`
	ProductDesc    string   `json:"productDesc" binding:"omitempty,min=5,max=500"`
}

type ProductsInquiry struct {
	PageReq
	Sort      string   `form:"sort,default=createdAt"`
	Direction string   `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	MemberID  uint64   `form:"memberId"`
	TypeList  []string `form:"typeList" binding:"omitempty,dive,oneof=APARTMENT VILLA HOUSE"`
	PriceMin  int64    `form:"priceMin" binding:"omitempty,min=0"`
	PriceMax  int64    `form:"priceMax" binding:"omitempty,min=0"`
	// 时间区间过滤，格式 2006-01-02
	PeriodFrom string `form:"periodFrom" binding:"omitempty,datetime=2006-01-02"`
	PeriodTo   string `form:"periodTo" binding:"omitempty,datetime=2006-01-02"`
	Text       string `form:"text"`
}

type AllProductsInquiry struct {
	PageReq
	Sort          string `form:"sort,default=createdAt"`
	Direction     string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	ProductStatus string `form:"productStatus" binding:"omitempty,oneof=ACTIVE SOLD DELETE"`
}

type ProductSearchReq struct {
	PageReq
	Text string `form:"text" binding:"required,min=1,max=100"`
}

type ProductDTO struct {
	ID             uint64   `json:"id"`
	MemberID       uint64   `json:"memberId"`
	ProductType    string   `json:"productType"`
	ProductStatus  string   `json:"productStatus"`
	ProductName    string   `json:"productName"`
	ProductPrice   int64    `json:"productPrice"`
	ProductAddress string   `json:"productAddress"`
	ProductDesc    string   `json:"productDesc"`
	ProductImages  []string `json:"productImages"`

	ProductLikes    int `json:"productLikes"`
	ProductSaves    int `json:"productSaves"`
	ProductViews    int `json:"productViews"`
	ProductComments int `json:"productComments"`

	MeLiked    MeEngagement `json:"meLiked"`
	MemberData *MemberDTO   `json:"memberData,omitempty"`

	SoldAt    string `json:"soldAt,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ProductsDTO struct {
	List  []*ProductDTO `json:"list"`
	Total int64         `json:"total"`
}
