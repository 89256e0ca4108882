package types

import "github.com/shopspring/decimal"

// SaleType 挂单的销售类型
const (
	SaleTypeFixedPrice int8 = 1 // 一口价, 买家支付标价立即成交
	SaleTypeAuction    int8 = 2 // 英式拍卖, 出价递增, 到期后由卖家结算
)

// Coin 附带的托管资金, 单一币种
type Coin struct {
	Denom  string          `json:"denom" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Ask 挂单视图
// max_bidder 为空字符串表示当前还没有真实出价 (显式的"无人出价"状态,
// 不再复用引擎自身地址作为哨兵值)
type Ask struct {
	SaleType        int8            `json:"sale_type"`
	CollectionAddr  string          `json:"collection_address"`
	TokenID         string          `json:"token_id"`
	Seller          string          `json:"seller"`
	FundsRecipient  string          `json:"funds_recipient,omitempty"`
	Price           decimal.Decimal `json:"price"`
	ExpireTime      int64           `json:"expire_time"`
	IsActive        bool            `json:"is_active"`
	MaxBidder       string          `json:"max_bidder,omitempty"`
	MaxBid          decimal.Decimal `json:"max_bid"`
}

// Bid 单品出价存档视图, 只增不改, 用于审计和查询
// 当前领先者以 Ask 的 max_bidder/max_bid 为准
type Bid struct {
	CollectionAddr string          `json:"collection_address"`
	TokenID        string          `json:"token_id"`
	Bidder         string          `json:"bidder"`
	Price          decimal.Decimal `json:"price"`
	EventTime      int64           `json:"event_time"`
}

// CollectionBid 集合级限价单 (不绑定具体 token)
type CollectionBid struct {
	CollectionAddr string          `json:"collection_address"`
	Bidder         string          `json:"bidder"`
	Price          decimal.Decimal `json:"price"`
	ExpireTime     int64           `json:"expire_time"`
}

// SudoParams 全局参数视图
type SudoParams struct {
	Denom         string          `json:"denom"`
	AskExpiryMin  int64           `json:"ask_expiry_min"`
	AskExpiryMax  int64           `json:"ask_expiry_max"`
	BidExpiryMin  int64           `json:"bid_expiry_min"`
	BidExpiryMax  int64           `json:"bid_expiry_max"`
	MinPrice      decimal.Decimal `json:"min_price"`
	ListingFee    decimal.Decimal `json:"listing_fee"`
	Operators     []string        `json:"operators"`
}
