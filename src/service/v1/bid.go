package service

import (
	"context"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// PlaceBid 对单个挂单出价
// 一口价: 资金必须恰好等于标价, 立即成交结算
// 拍卖: 出价必须严格高于当前领先价, 旧领先者(如有)退款, 新出价入托管
func (e *Engine) PlaceBid(ctx context.Context, req *types.PlaceBidReq) (*types.ExecuteResult, error) {
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

		ask, err := tx.GetAsk(ctx, req.CollectionAddr, req.TokenID)
		if err != nil {
			return err
		}
		if !ask.IsActive {
			return errs.ErrAskNotActive
		}
		if isExpired(now, ask.ExpireTime) {
			return errs.ErrAskExpired
		}

		switch ask.SaleType {
		case types.SaleTypeFixedPrice:
			// 只接受精确等于标价的资金, 多付少付都拒绝
			if !req.Funds.Amount.Equal(ask.Price) {
				return errs.ErrInvalidPrice
			}
			if err := tx.DeleteAsk(ctx, req.CollectionAddr, req.TokenID); err != nil {
				return err
			}
			msgs, err := e.finalizeSale(ctx, tx, ask, ask.Price, req.Caller, params.Denom, now)
			if err != nil {
				return err
			}
			res = types.ExecuteResult{
				Messages: msgs,
				Attributes: []types.Attribute{
					{Key: "action", Value: "set_bid"},
					{Key: "collection", Value: req.CollectionAddr},
					{Key: "token_id", Value: req.TokenID},
					{Key: "bidder", Value: req.Caller},
					{Key: "price", Value: ask.Price.String()},
					{Key: "sale_finalized", Value: "true"},
				},
			}
			return nil

		case types.SaleTypeAuction:
			// 严格单调抬价: 等于当前领先价也拒绝
			if req.Funds.Amount.LessThanOrEqual(ask.MaxBid) {
				return errs.ErrInsufficientFundsSend
			}

			var msgs []types.Message
			if ask.MaxBidder != "" {
				msgs = append(msgs, newRefundMsg(ask.MaxBidder, ask.MaxBid, params.Denom))
			}

			ask.MaxBidder = req.Caller
			ask.MaxBid = req.Funds.Amount
			if err := tx.SaveAsk(ctx, ask); err != nil {
				return err
			}

			bid := &model.Bid{
				CollectionAddr: req.CollectionAddr,
				TokenID:        req.TokenID,
				Bidder:         req.Caller,
				Price:          req.Funds.Amount,
				EventTime:      now.Unix(),
			}
			if err := tx.SaveBid(ctx, bid); err != nil {
				return err
			}
			if err := tx.AddActivity(ctx, &model.Activity{
				ActivityType:   model.ActivityMakeBid,
				CollectionAddr: req.CollectionAddr,
				TokenID:        req.TokenID,
				Maker:          req.Caller,
				Price:          req.Funds.Amount,
				EventTime:      now.Unix(),
			}); err != nil {
				return err
			}

			hookMsgs, err := buildHookMsgs(ctx, tx, types.HookFamilyBid, types.BidEvent{
				Action: types.HookActionCreate,
				Bid:    toBidView(bid),
			})
			if err != nil {
				return err
			}
			msgs = append(msgs, hookMsgs...)

			res = types.ExecuteResult{
				Messages: msgs,
				Attributes: []types.Attribute{
					{Key: "action", Value: "set_bid"},
					{Key: "collection", Value: req.CollectionAddr},
					{Key: "token_id", Value: req.TokenID},
					{Key: "bidder", Value: req.Caller},
					{Key: "price", Value: req.Funds.Amount.String()},
				},
			}
			return nil

		default:
			return errs.ErrAskNotActive
		}
	})
	if err != nil {
		return nil, err
	}

	e.dispatchHooks(ctx, &res)
	return &res, nil
}

// AcceptBid 卖家结算到期拍卖
// 未到期拒绝; 到期无人出价则物品退回卖家; 有领先者按其托管价结算
func (e *Engine) AcceptBid(ctx context.Context, req *types.AcceptBidReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		ask, err := tx.GetAsk(ctx, req.CollectionAddr, req.TokenID)
		if err != nil {
			return err
		}
		if ask.Seller != req.Caller {
			return errs.ErrUnauthorized
		}
		if !ask.IsActive {
			return errs.ErrAskNotActive
		}
		if !isExpired(now, ask.ExpireTime) {
			return errs.ErrAuctionNotEnded
		}

		if err := tx.DeleteAsk(ctx, req.CollectionAddr, req.TokenID); err != nil {
			return err
		}

		if ask.MaxBidder == "" {
			// 流拍: 没有真实出价, 物品退回卖家, 没有任何款项流转
			if err := tx.AddActivity(ctx, &model.Activity{
				ActivityType:   model.ActivityCancelAsk,
				CollectionAddr: req.CollectionAddr,
				TokenID:        req.TokenID,
				Maker:          req.Caller,
				Price:          ask.Price,
				Remark:         "auction ended without bids",
				EventTime:      now.Unix(),
			}); err != nil {
				return err
			}
			res = types.ExecuteResult{
				Messages: []types.Message{
					newTransferItemMsg(req.CollectionAddr, req.TokenID, ask.Seller),
				},
				Attributes: []types.Attribute{
					{Key: "action", Value: "accept_bid"},
					{Key: "collection", Value: req.CollectionAddr},
					{Key: "token_id", Value: req.TokenID},
					{Key: "sale_finalized", Value: "false"},
				},
			}
			return nil
		}

		msgs, err := e.finalizeSale(ctx, tx, ask, ask.MaxBid, ask.MaxBidder, params.Denom, now)
		if err != nil {
			return err
		}
		res = types.ExecuteResult{
			Messages: msgs,
			Attributes: []types.Attribute{
				{Key: "action", Value: "accept_bid"},
				{Key: "collection", Value: req.CollectionAddr},
				{Key: "token_id", Value: req.TokenID},
				{Key: "bidder", Value: ask.MaxBidder},
				{Key: "price", Value: ask.MaxBid.String()},
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
