package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// 副作用消息类型
// 引擎自身不执行支付和转移, 只是按固定顺序组装消息列表,
// 在状态写入成功后交给外层调度方(宿主)异步执行
const (
	MsgKindRefund        = "refund"         // 退还被超越的领先出价
	MsgKindRoyaltyPayout = "royalty_payout" // 版税分成打款
	MsgKindPayout        = "payout"         // 卖家(或指定收款人)货款打款
	MsgKindTransferItem  = "transfer_item"  // 指示收藏集合约转移 NFT 所有权
	MsgKindHookNotify    = "hook_notify"    // 单向订阅者通知, 允许失败
)

// Hook 事件族
const (
	HookFamilyAsk           = "ask"
	HookFamilyBid           = "bid"
	HookFamilyCollectionBid = "collection_bid"
	HookFamilySale          = "sale"
)

// Hook 动作标签
const (
	HookActionCreate = "create"
	HookActionUpdate = "update"
	HookActionDelete = "delete"
)

// Message 单条待执行的副作用消息
// 消息顺序是有语义的: 审计方可以按顺序重放消息还原一笔成交
type Message struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`

	// 打款类消息字段 (refund / royalty_payout / payout)
	To     string          `json:"to,omitempty"`
	Amount decimal.Decimal `json:"amount,omitempty"`
	Denom  string          `json:"denom,omitempty"`

	// 物品转移消息字段 (transfer_item)
	CollectionAddr string `json:"collection_address,omitempty"`
	TokenID        string `json:"token_id,omitempty"`
	Recipient      string `json:"recipient,omitempty"`

	// 通知消息字段 (hook_notify)
	HookFamily string          `json:"hook_family,omitempty"`
	HookAddr   string          `json:"hook_address,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Attribute 动作产生的事件属性 (key-value), 与消息列表一起返回
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ExecuteResult 一次入站动作的执行结果
type ExecuteResult struct {
	Messages   []Message   `json:"messages"`
	Attributes []Attribute `json:"attributes"`
}

// AskEvent 推送给 ask hook 订阅者的事件载荷
type AskEvent struct {
	Action string `json:"action"`
	Ask    Ask    `json:"ask"`
}

// BidEvent 推送给 bid hook 订阅者的事件载荷
type BidEvent struct {
	Action string `json:"action"`
	Bid    Bid    `json:"bid"`
}

// CollectionBidEvent 推送给 collection bid hook 订阅者的事件载荷
type CollectionBidEvent struct {
	Action        string        `json:"action"`
	CollectionBid CollectionBid `json:"collection_bid"`
}

// SaleEvent 成交事件载荷, 推送给 sale hook 订阅者
type SaleEvent struct {
	CollectionAddr string          `json:"collection_address"`
	TokenID        string          `json:"token_id"`
	Price          decimal.Decimal `json:"price"`
	Seller         string          `json:"seller"`
	Buyer          string          `json:"buyer"`
}
