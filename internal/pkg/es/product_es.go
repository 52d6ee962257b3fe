package es

// ProductES 房源搜索索引文档，CDC 消费端负责与 MySQL 同步
type ProductES struct {
	ID             uint64 `json:"id"`
	MemberID       uint64 `json:"member_id"`
	ProductType    string `json:"product_type"`
	ProductStatus  string `json:"product_status"`
	ProductName    string `json:"product_name"`
	ProductAddress string `json:"product_address"`
	ProductDesc    string `json:"product_desc"`
	ProductPrice   int64  `json:"product_price"`
	ProductLikes   int    `json:"product_likes"`
	ProductViews   int    `json:"product_views"`
	CreatedAt      int64  `json:"created_at"`
}
