package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// PlaceCollectionBid 创建集合级限价单
// 同一 (collection, bidder) 已有旧单时, 先退还旧单托管再落新单, 两步同事务
func (e *Engine) PlaceCollectionBid(ctx context.Context, req *types.PlaceCollectionBidReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		if err := validateFunds(params, req.Funds); err != nil {
			return err
		}
		if err := validateBidExpiry(params, now, req.ExpireTime); err != nil {
			return err
		}

		var msgs []types.Message
		existing, err := tx.GetCollectionBid(ctx, req.CollectionAddr, req.Caller)
		if err != nil && !errors.Is(err, errs.ErrBidNotFound) {
			return err
		}
		if existing != nil {
			msgs = append(msgs, newRefundMsg(existing.Bidder, existing.Price, params.Denom))
		}

		bid := &model.CollectionBid{
			CollectionAddr: req.CollectionAddr,
			Bidder:         req.Caller,
			Price:          req.Funds.Amount,
			ExpireTime:     req.ExpireTime,
		}
		if err := tx.SaveCollectionBid(ctx, bid); err != nil {
			return err
		}
		if err := tx.AddActivity(ctx, &model.Activity{
			ActivityType:   model.ActivityMakeCBid,
			CollectionAddr: req.CollectionAddr,
			Maker:          req.Caller,
			Price:          req.Funds.Amount,
			EventTime:      now.Unix(),
		}); err != nil {
			return err
		}

		hookMsgs, err := buildHookMsgs(ctx, tx, types.HookFamilyCollectionBid, types.CollectionBidEvent{
			Action:        types.HookActionCreate,
			CollectionBid: toCollectionBidView(bid),
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, hookMsgs...)

		res = types.ExecuteResult{
			Messages: msgs,
			Attributes: []types.Attribute{
				{Key: "action", Value: "set_collection_bid"},
				{Key: "collection", Value: req.CollectionAddr},
				{Key: "bidder", Value: req.Caller},
				{Key: "price", Value: req.Funds.Amount.String()},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.dispatchHooks(ctx, &res)
	return &res, nil
}

// RemoveCollectionBid 撤销集合级限价单并退还托管资金
func (e *Engine) RemoveCollectionBid(ctx context.Context, req *types.RemoveCollectionBidReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		bid, err := tx.GetCollectionBid(ctx, req.CollectionAddr, req.Caller)
		if err != nil {
			return err
		}
		if err := tx.DeleteCollectionBid(ctx, req.CollectionAddr, req.Caller); err != nil {
			return err
		}
		if err := tx.AddActivity(ctx, &model.Activity{
			ActivityType:   model.ActivityCancelCBid,
			CollectionAddr: req.CollectionAddr,
			Maker:          req.Caller,
			Price:          bid.Price,
			EventTime:      now.Unix(),
		}); err != nil {
			return err
		}

		msgs := []types.Message{
			newRefundMsg(bid.Bidder, bid.Price, params.Denom),
		}
		hookMsgs, err := buildHookMsgs(ctx, tx, types.HookFamilyCollectionBid, types.CollectionBidEvent{
			Action:        types.HookActionDelete,
			CollectionBid: toCollectionBidView(bid),
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, hookMsgs...)

		res = types.ExecuteResult{
			Messages: msgs,
			Attributes: []types.Attribute{
				{Key: "action", Value: "remove_collection_bid"},
				{Key: "collection", Value: req.CollectionAddr},
				{Key: "bidder", Value: req.Caller},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.dispatchHooks(ctx, &res)
	return &res, nil
}

// AcceptCollectionBid 卖家用具体 token 吃掉某个集合级限价单
// 该 token 若有挂单则挂单被消耗, 挂单上的领先出价(如有)退款;
// 限价单已到期则拒绝, 成交按限价单价格结算
func (e *Engine) AcceptCollectionBid(ctx context.Context, req *types.AcceptCollectionBidReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		bid, err := tx.GetCollectionBid(ctx, req.CollectionAddr, req.Bidder)
		if err != nil {
			return err
		}
		if isExpired(now, bid.ExpireTime) {
			return errs.ErrBidExpired
		}

		var msgs []types.Message
		item := &model.Ask{
			CollectionAddr: req.CollectionAddr,
			TokenID:        req.TokenID,
			Seller:         req.Caller,
		}
		ask, err := tx.GetAsk(ctx, req.CollectionAddr, req.TokenID)
		if err != nil && !errors.Is(err, errs.ErrAskNotFound) {
			return err
		}
		if ask != nil {
			// 有挂单时必须由挂单卖家接受, 挂单被消耗
			if ask.Seller != req.Caller {
				return errs.ErrUnauthorized
			}
			if !ask.IsActive {
				return errs.ErrAskNotActive
			}
			if isExpired(now, ask.ExpireTime) {
				return errs.ErrAskExpired
			}
			if ask.MaxBidder != "" {
				msgs = append(msgs, newRefundMsg(ask.MaxBidder, ask.MaxBid, params.Denom))
			}
			if err := tx.DeleteAsk(ctx, req.CollectionAddr, req.TokenID); err != nil {
				return err
			}
			item = ask
		}

		if err := tx.DeleteCollectionBid(ctx, req.CollectionAddr, req.Bidder); err != nil {
			return err
		}

		saleMsgs, err := e.finalizeSale(ctx, tx, item, bid.Price, bid.Bidder, params.Denom, now)
		if err != nil {
			return err
		}
		msgs = append(msgs, saleMsgs...)

		res = types.ExecuteResult{
			Messages: msgs,
			Attributes: []types.Attribute{
				{Key: "action", Value: "accept_collection_bid"},
				{Key: "collection", Value: req.CollectionAddr},
				{Key: "token_id", Value: req.TokenID},
				{Key: "bidder", Value: req.Bidder},
				{Key: "price", Value: bid.Price.String()},
				{Key: "sale_finalized", Value: "true"},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.dispatchHooks(ctx, &res)
	return &res, nil
}
