package model

import (
	"time"
)

type ProductType string

const (
	ProductApartment ProductType = "APARTMENT"
	ProductVilla     ProductType = "VILLA"
	ProductHouse     ProductType = "HOUSE"
)

type ProductStatus string

const (
	ProductStatusActive ProductStatus = "ACTIVE"
	ProductStatusSold   ProductStatus = "SOLD"
	ProductStatusDelete ProductStatus = "DELETE"
)

type Product struct {
	ID             uint64        `gorm:"primaryKey"`
	MemberID       uint64        `gorm:"not null;index:idx_products_member" json:"memberId"`
	ProductType    ProductType   `gorm:"type:varchar(16);not null" json:"productType"`
	ProductStatus  ProductStatus `gorm:"type:varchar(16);not null;default:'ACTIVE';index:idx_products_status" json:"productStatus"`
	ProductName    string        `gorm:"type:varchar(100);not null" json:"productName"`
	ProductPrice   int64         `gorm:"not null" json:"productPrice"`
	ProductAddress string        `gorm:"type:varchar(255)" json:"productAddress"`
	ProductDesc    string        `gorm:"type:varchar(500)" json:"productDesc"`
	ProductImages  []string      `gorm:"type:json;serializer:json" json:"productImages"`

	ProductLikes    int `gorm:"not null;default:0" json:"productLikes"`
	ProductSaves    int `gorm:"not null;default:0" json:"productSaves"`
	ProductViews    int `gorm:"not null;default:0" json:"productViews"`
	ProductComments int `gorm:"not null;default:0" json:"productComments"`

	SoldAt    *time.Time `json:"soldAt"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// 关联关系
	Member Member `gorm:"foreignKey:MemberID;references:ID"`
}

func (Product) TableName() string {
	return "products"
}
