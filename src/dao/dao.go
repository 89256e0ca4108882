package dao

import (
	"context"

	"github.com/ProjectsTask/EasySwapBase/stores/xkv"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

// Storer 引擎依赖的持久化接口
// 生产实现是基于 GORM 的 Dao; 单测使用内存实现
// Transact 内的所有读写属于同一个逻辑事务: 要么全部落盘, 要么全部丢弃
type Storer interface {
	Transact(ctx context.Context, fn func(tx Storer) error) error

	GetAsk(ctx context.Context, collectionAddr, tokenID string) (*model.Ask, error)
	SaveAsk(ctx context.Context, ask *model.Ask) error
	DeleteAsk(ctx context.Context, collectionAddr, tokenID string) error
	ListAsksByCollection(ctx context.Context, collectionAddr, startAfterToken string, limit int) ([]model.Ask, error)
	ListAsksBySeller(ctx context.Context, seller, startAfterKey string, limit int) ([]model.Ask, error)
	CountAsks(ctx context.Context, collectionAddr string) (int64, error)
	ListedCollections(ctx context.Context, startAfter string, limit int) ([]string, error)

	SaveBid(ctx context.Context, bid *model.Bid) error
	GetBid(ctx context.Context, collectionAddr, tokenID, bidder string) (*model.Bid, error)
	ListBidsByItem(ctx context.Context, collectionAddr, tokenID, startAfterBidder string, limit int) ([]model.Bid, error)
	ListBidsByBidder(ctx context.Context, bidder, startAfterKey string, limit int) ([]model.Bid, error)

	GetCollectionBid(ctx context.Context, collectionAddr, bidder string) (*model.CollectionBid, error)
	SaveCollectionBid(ctx context.Context, bid *model.CollectionBid) error
	DeleteCollectionBid(ctx context.Context, collectionAddr, bidder string) error

	GetParams(ctx context.Context) (*model.SudoParams, error)
	SaveParams(ctx context.Context, params *model.SudoParams) error

	ListHooks(ctx context.Context, family string) ([]string, error)
	AddHook(ctx context.Context, family, hookAddr string) error
	RemoveHook(ctx context.Context, family, hookAddr string) error

	GetCollection(ctx context.Context, collectionAddr string) (*model.Collection, error)

	AddActivity(ctx context.Context, activity *model.Activity) error
}

// Dao 数据访问对象, Storer 的 GORM 实现
// 数据库交互逻辑集中在本层, Service 层不直接操作 DB
type Dao struct {
	DB      *gorm.DB
	KvStore *xkv.Store // 只用作查询侧缓存, 不参与事务
}

func New(db *gorm.DB, kvStore *xkv.Store) *Dao {
	return &Dao{
		DB:      db,
		KvStore: kvStore,
	}
}

// Transact 在单个数据库事务中执行 fn
// fn 收到的 Storer 绑定到事务连接, fn 返回错误时整个事务回滚
func (d *Dao) Transact(ctx context.Context, fn func(tx Storer) error) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Dao{DB: tx, KvStore: d.KvStore})
	})
}
