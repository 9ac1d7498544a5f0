package models

const (
	MarketStatusAvailable = "available"
	MarketStatusSold      = "sold"
	MarketStatusReserved  = "reserved"
)

type MarketItem struct {
	ID           string   `bson:"_id,omitempty" json:"id"`
	Title        string   `bson:"title" json:"title"`
	Description  string   `bson:"description" json:"description"`
	Price        float64  `bson:"price" json:"price"`
	Images       []string `bson:"images" json:"images"`
	SellerID     string   `bson:"sellerId" json:"sellerId"`
	SellerName   string   `bson:"sellerName,omitempty" json:"sellerName,omitempty"`
	SellerAvatar string   `bson:"sellerAvatar,omitempty" json:"sellerAvatar,omitempty"`
	CreatedAt    int64    `bson:"createdAt" json:"createdAt"`
	Status       string   `bson:"status" json:"status"`
}
