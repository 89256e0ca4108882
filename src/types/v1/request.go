package types

import "github.com/shopspring/decimal"

// 入站动作的请求体定义
// 资金 (funds) 在链上语境里是随消息附带的托管款, 这里显式作为请求字段传入

// CreateAskReq 创建挂单
type CreateAskReq struct {
	Caller         string          `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string          `json:"collection_address" binding:"required,hexaddress"`
	TokenID        string          `json:"token_id" binding:"required"`
	SaleType       int8            `json:"sale_type" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	FundsRecipient string          `json:"funds_recipient" binding:"omitempty,hexaddress"`
	ExpireTime     int64           `json:"expire_time" binding:"required"`
	Funds          *Coin           `json:"funds"` // 挂单费, 数额必须与全局参数 listing_fee 一致
}

// RemoveAskReq 撤销挂单
type RemoveAskReq struct {
	Caller         string `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string `json:"collection_address" binding:"required,hexaddress"`
	TokenID        string `json:"token_id" binding:"required"`
}

// UpdateAskPriceReq 修改挂单价格
type UpdateAskPriceReq struct {
	Caller         string          `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string          `json:"collection_address" binding:"required,hexaddress"`
	TokenID        string          `json:"token_id" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
}

// PlaceBidReq 对单个挂单出价, 资金随请求托管
type PlaceBidReq struct {
	Caller         string `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string `json:"collection_address" binding:"required,hexaddress"`
	TokenID        string `json:"token_id" binding:"required"`
	Funds          Coin   `json:"funds" binding:"required"`
}

// AcceptBidReq 卖家结算到期拍卖
type AcceptBidReq struct {
	Caller         string `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string `json:"collection_address" binding:"required,hexaddress"`
	TokenID        string `json:"token_id" binding:"required"`
}

// PlaceCollectionBidReq 创建集合级限价单
type PlaceCollectionBidReq struct {
	Caller         string `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string `json:"collection_address" binding:"required,hexaddress"`
	ExpireTime     int64  `json:"expire_time" binding:"required"`
	Funds          Coin   `json:"funds" binding:"required"`
}

// RemoveCollectionBidReq 撤销集合级限价单
type RemoveCollectionBidReq struct {
	Caller         string `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string `json:"collection_address" binding:"required,hexaddress"`
}

// AcceptCollectionBidReq 卖家用具体 token 吃掉集合级限价单
type AcceptCollectionBidReq struct {
	Caller         string `json:"caller" binding:"required,hexaddress"`
	CollectionAddr string `json:"collection_address" binding:"required,hexaddress"`
	TokenID        string `json:"token_id" binding:"required"`
	Bidder         string `json:"bidder" binding:"required,hexaddress"`
}

// UpdateParamsReq 运营方修改全局参数, 为空的字段保持原值
type UpdateParamsReq struct {
	Caller       string           `json:"caller" binding:"required,hexaddress"`
	AskExpiryMin *int64           `json:"ask_expiry_min"`
	AskExpiryMax *int64           `json:"ask_expiry_max"`
	BidExpiryMin *int64           `json:"bid_expiry_min"`
	BidExpiryMax *int64           `json:"bid_expiry_max"`
	MinPrice     *decimal.Decimal `json:"min_price"`
	ListingFee   *decimal.Decimal `json:"listing_fee"`
	Operators    []string         `json:"operators"`
}

// HookReq 注册/移除某个事件族的 hook 订阅者
type HookReq struct {
	Caller   string `json:"caller" binding:"required,hexaddress"`
	Family   string `json:"family" binding:"required"`
	HookAddr string `json:"hook_address" binding:"required"`
}
