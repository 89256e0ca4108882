package service

import (
	"context"

	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// 只读查询, 不加引擎锁, 直接读存储
// 列表类查询统一使用升序键 + start_after 游标分页

func (e *Engine) GetAsk(ctx context.Context, collectionAddr, tokenID string) (*types.Ask, error) {
	ask, err := e.store.GetAsk(ctx, collectionAddr, tokenID)
	if err != nil {
		return nil, err
	}
	view := toAskView(ask)
	return &view, nil
}

func (e *Engine) ListAsksByCollection(ctx context.Context, collectionAddr, startAfterToken string, limit int) ([]types.Ask, error) {
	asks, err := e.store.ListAsksByCollection(ctx, collectionAddr, startAfterToken, limit)
	if err != nil {
		return nil, err
	}
	views := make([]types.Ask, 0, len(asks))
	for i := range asks {
		views = append(views, toAskView(&asks[i]))
	}
	return views, nil
}

func (e *Engine) ListAsksBySeller(ctx context.Context, seller, startAfterKey string, limit int) ([]types.Ask, error) {
	asks, err := e.store.ListAsksBySeller(ctx, seller, startAfterKey, limit)
	if err != nil {
		return nil, err
	}
	views := make([]types.Ask, 0, len(asks))
	for i := range asks {
		views = append(views, toAskView(&asks[i]))
	}
	return views, nil
}

// AskCount 某集合下的挂单总数
func (e *Engine) AskCount(ctx context.Context, collectionAddr string) (int64, error) {
	return e.store.CountAsks(ctx, collectionAddr)
}

// ListedCollections 当前有挂单的集合地址列表
func (e *Engine) ListedCollections(ctx context.Context, startAfter string, limit int) ([]string, error) {
	return e.store.ListedCollections(ctx, startAfter, limit)
}

func (e *Engine) GetBid(ctx context.Context, collectionAddr, tokenID, bidder string) (*types.Bid, error) {
	bid, err := e.store.GetBid(ctx, collectionAddr, tokenID, bidder)
	if err != nil {
		return nil, err
	}
	view := toBidView(bid)
	return &view, nil
}

func (e *Engine) ListBidsByItem(ctx context.Context, collectionAddr, tokenID, startAfterBidder string, limit int) ([]types.Bid, error) {
	bids, err := e.store.ListBidsByItem(ctx, collectionAddr, tokenID, startAfterBidder, limit)
	if err != nil {
		return nil, err
	}
	views := make([]types.Bid, 0, len(bids))
	for i := range bids {
		views = append(views, toBidView(&bids[i]))
	}
	return views, nil
}

func (e *Engine) ListBidsByBidder(ctx context.Context, bidder, startAfterKey string, limit int) ([]types.Bid, error) {
	bids, err := e.store.ListBidsByBidder(ctx, bidder, startAfterKey, limit)
	if err != nil {
		return nil, err
	}
	views := make([]types.Bid, 0, len(bids))
	for i := range bids {
		views = append(views, toBidView(&bids[i]))
	}
	return views, nil
}

func (e *Engine) GetCollectionBid(ctx context.Context, collectionAddr, bidder string) (*types.CollectionBid, error) {
	bid, err := e.store.GetCollectionBid(ctx, collectionAddr, bidder)
	if err != nil {
		return nil, err
	}
	view := toCollectionBidView(bid)
	return &view, nil
}

func (e *Engine) GetParams(ctx context.Context) (*types.SudoParams, error) {
	params, err := e.store.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	view := toParamsView(params)
	return &view, nil
}

// ListHooks 查询某事件族的订阅地址
func (e *Engine) ListHooks(ctx context.Context, family string) ([]string, error) {
	return e.store.ListHooks(ctx, family)
}
