package model

import "github.com/shopspring/decimal"

// 市场引擎的持久化模型
// 主键与二级索引的约束与引擎不变量一一对应:
// 同一 (collection, token_id) 至多一条挂单, 同一 (collection, bidder) 至多一条集合出价

// Ask 挂单记录
// MaxBidder 为空字符串表示"尚无真实出价", MaxBid 初始化为全局最低价,
// 新出价必须严格大于 MaxBid 才能成为领先者
type Ask struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	SaleType       int8            `gorm:"column:sale_type;type:tinyint;not null"`
	CollectionAddr string          `gorm:"column:collection_address;type:varchar(66);not null;uniqueIndex:ux_collection_token,priority:1;index:idx_ask_collection"`
	TokenID        string          `gorm:"column:token_id;type:varchar(128);not null;uniqueIndex:ux_collection_token,priority:2"`
	Seller         string          `gorm:"column:seller;type:varchar(66);not null;index:idx_ask_seller"`
	FundsRecipient string          `gorm:"column:funds_recipient;type:varchar(66);default:''"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(60,18);not null"`
	ExpireTime     int64           `gorm:"column:expire_time;not null"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	MaxBidder      string          `gorm:"column:max_bidder;type:varchar(66);default:''"`
	MaxBid         decimal.Decimal `gorm:"column:max_bid;type:decimal(60,18)"`
	CreateTime     int64           `gorm:"column:create_time;autoCreateTime"`
	UpdateTime     int64           `gorm:"column:update_time;autoUpdateTime"`
}

func (Ask) TableName() string { return "em_asks" }

// Bid 成为过领先者的出价存档, 只增不改
type Bid struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string          `gorm:"column:collection_address;type:varchar(66);not null;uniqueIndex:ux_bid_key,priority:1"`
	TokenID        string          `gorm:"column:token_id;type:varchar(128);not null;uniqueIndex:ux_bid_key,priority:2"`
	Bidder         string          `gorm:"column:bidder;type:varchar(66);not null;uniqueIndex:ux_bid_key,priority:3;index:idx_bid_bidder"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(60,18);not null"`
	EventTime      int64           `gorm:"column:event_time;not null"`
}

func (Bid) TableName() string { return "em_bids" }

// CollectionBid 集合级限价单, 同一 (collection, bidder) 至多一条
type CollectionBid struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string          `gorm:"column:collection_address;type:varchar(66);not null;uniqueIndex:ux_cbid_key,priority:1"`
	Bidder         string          `gorm:"column:bidder;type:varchar(66);not null;uniqueIndex:ux_cbid_key,priority:2;index:idx_cbid_bidder"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(60,18);not null"`
	ExpireTime     int64           `gorm:"column:expire_time;not null"`
	CreateTime     int64           `gorm:"column:create_time;autoCreateTime"`
}

func (CollectionBid) TableName() string { return "em_collection_bids" }

// SudoParams 全局参数单例行 (id 恒为 1)
// 只在初始化时创建, 之后仅能通过运营方特权动作修改
type SudoParams struct {
	ID           int64           `gorm:"column:id;primaryKey"`
	Denom        string          `gorm:"column:denom;type:varchar(66);not null"`
	AskExpiryMin int64           `gorm:"column:ask_expiry_min;not null"`
	AskExpiryMax int64           `gorm:"column:ask_expiry_max;not null"`
	BidExpiryMin int64           `gorm:"column:bid_expiry_min;not null"`
	BidExpiryMax int64           `gorm:"column:bid_expiry_max;not null"`
	MinPrice     decimal.Decimal `gorm:"column:min_price;type:decimal(60,18);not null"`
	ListingFee   decimal.Decimal `gorm:"column:listing_fee;type:decimal(60,18);not null"`
	Operators    string          `gorm:"column:operators;type:text"` // 逗号分隔的运营方地址
	UpdateTime   int64           `gorm:"column:update_time;autoUpdateTime"`
}

func (SudoParams) TableName() string { return "em_sudo_params" }

// Hook 某个事件族下注册的订阅者
type Hook struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Family   string `gorm:"column:family;type:varchar(32);not null;uniqueIndex:ux_hook,priority:1"`
	HookAddr string `gorm:"column:hook_address;type:varchar(256);not null;uniqueIndex:ux_hook,priority:2"`
}

func (Hook) TableName() string { return "em_hooks" }

// Collection 协作方集合合约的版税配置视图
// 查不到记录等价于"该集合未配置版税"
type Collection struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Address         string          `gorm:"column:address;type:varchar(66);not null;uniqueIndex"`
	Name            string          `gorm:"column:name;type:varchar(128)"`
	RoyaltyRate     decimal.Decimal `gorm:"column:royalty_rate;type:decimal(10,9)"` // [0,1)
	RoyaltyReceiver string          `gorm:"column:royalty_receiver;type:varchar(66)"`
}

func (Collection) TableName() string { return "em_collections" }

// Activity 引擎事件与 hook 投递失败的只读流水
type Activity struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ActivityType   string          `gorm:"column:activity_type;type:varchar(32);not null;index"`
	CollectionAddr string          `gorm:"column:collection_address;type:varchar(66);index"`
	TokenID        string          `gorm:"column:token_id;type:varchar(128)"`
	Maker          string          `gorm:"column:maker;type:varchar(66)"`
	Taker          string          `gorm:"column:taker;type:varchar(66)"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(60,18)"`
	Remark         string          `gorm:"column:remark;type:varchar(512)"`
	EventTime      int64           `gorm:"column:event_time;not null"`
}

func (Activity) TableName() string { return "em_activities" }

// Activity 类型
const (
	ActivityMakeAsk      = "make_ask"
	ActivityCancelAsk    = "cancel_ask"
	ActivityUpdateAsk    = "update_ask"
	ActivityMakeBid      = "make_bid"
	ActivityMakeCBid     = "make_collection_bid"
	ActivityCancelCBid   = "cancel_collection_bid"
	ActivitySale         = "sale"
	ActivityHookFailed   = "hook_failed"
	ActivityUpdateParams = "update_params"
)
