package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// CreateAsk 创建挂单
// 1. 校验价格/有效期/挂单费 2. 以空领先者初始化拍卖状态 3. 通知 ask 订阅者
func (e *Engine) CreateAsk(ctx context.Context, req *types.CreateAskReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		if req.SaleType != types.SaleTypeFixedPrice && req.SaleType != types.SaleTypeAuction {
			return errors.Errorf("unknown sale type: %d", req.SaleType)
		}
		if err := validatePrice(params, req.Price); err != nil {
			return err
		}
		if err := validateAskExpiry(params, now, req.ExpireTime); err != nil {
			return err
		}
		if err := validateListingFee(params, req.Funds); err != nil {
			return err
		}

		// 同一 (collection, token) 只允许一条挂单
		// 重新上架必须先 RemoveAsk, 由撤单路径退还已托管的领先出价
		if _, err := tx.GetAsk(ctx, req.CollectionAddr, req.TokenID); err == nil {
			return errs.ErrAskAlreadyExists
		} else if !errors.Is(err, errs.ErrAskNotFound) {
			return err
		}

		// 领先出价以空地址 + 全局最低价初始化, 首个真实出价必须严格超过最低价
		ask := &model.Ask{
			SaleType:       req.SaleType,
			CollectionAddr: req.CollectionAddr,
			TokenID:        req.TokenID,
			Seller:         req.Caller,
			FundsRecipient: req.FundsRecipient,
			Price:          req.Price,
			ExpireTime:     req.ExpireTime,
			IsActive:       true,
			MaxBidder:      "",
			MaxBid:         params.MinPrice,
		}
		if err := tx.SaveAsk(ctx, ask); err != nil {
			return err
		}
		if err := tx.AddActivity(ctx, &model.Activity{
			ActivityType:   model.ActivityMakeAsk,
			CollectionAddr: req.CollectionAddr,
			TokenID:        req.TokenID,
			Maker:          req.Caller,
			Price:          req.Price,
			EventTime:      now.Unix(),
		}); err != nil {
			return err
		}

		hookMsgs, err := buildHookMsgs(ctx, tx, types.HookFamilyAsk, types.AskEvent{
			Action: types.HookActionCreate,
			Ask:    toAskView(ask),
		})
		if err != nil {
			return err
		}

		res = types.ExecuteResult{
			Messages: hookMsgs,
			Attributes: []types.Attribute{
				{Key: "action", Value: "set_ask"},
				{Key: "collection", Value: req.CollectionAddr},
				{Key: "token_id", Value: req.TokenID},
				{Key: "seller", Value: req.Caller},
				{Key: "price", Value: req.Price.String()},
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

// RemoveAsk 撤销挂单, 拍卖已有领先者时先退还其托管资金
func (e *Engine) RemoveAsk(ctx context.Context, req *types.RemoveAskReq) (*types.ExecuteResult, error) {
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

		var msgs []types.Message
		if ask.MaxBidder != "" {
			msgs = append(msgs, newRefundMsg(ask.MaxBidder, ask.MaxBid, params.Denom))
		}

		if err := tx.DeleteAsk(ctx, req.CollectionAddr, req.TokenID); err != nil {
			return err
		}
		if err := tx.AddActivity(ctx, &model.Activity{
			ActivityType:   model.ActivityCancelAsk,
			CollectionAddr: req.CollectionAddr,
			TokenID:        req.TokenID,
			Maker:          req.Caller,
			Price:          ask.Price,
			EventTime:      now.Unix(),
		}); err != nil {
			return err
		}

		hookMsgs, err := buildHookMsgs(ctx, tx, types.HookFamilyAsk, types.AskEvent{
			Action: types.HookActionDelete,
			Ask:    toAskView(ask),
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, hookMsgs...)

		res = types.ExecuteResult{
			Messages: msgs,
			Attributes: []types.Attribute{
				{Key: "action", Value: "remove_ask"},
				{Key: "collection", Value: req.CollectionAddr},
				{Key: "token_id", Value: req.TokenID},
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

// UpdateAskPrice 修改挂单价格, 仅限卖家且挂单处于激活未到期状态
func (e *Engine) UpdateAskPrice(ctx context.Context, req *types.UpdateAskPriceReq) (*types.ExecuteResult, error) {
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
		if isExpired(now, ask.ExpireTime) {
			return errs.ErrAskExpired
		}
		if err := validatePrice(params, req.Price); err != nil {
			return err
		}

		ask.Price = req.Price
		if err := tx.SaveAsk(ctx, ask); err != nil {
			return err
		}
		if err := tx.AddActivity(ctx, &model.Activity{
			ActivityType:   model.ActivityUpdateAsk,
			CollectionAddr: req.CollectionAddr,
			TokenID:        req.TokenID,
			Maker:          req.Caller,
			Price:          req.Price,
			EventTime:      now.Unix(),
		}); err != nil {
			return err
		}

		hookMsgs, err := buildHookMsgs(ctx, tx, types.HookFamilyAsk, types.AskEvent{
			Action: types.HookActionUpdate,
			Ask:    toAskView(ask),
		})
		if err != nil {
			return err
		}

		res = types.ExecuteResult{
			Messages: hookMsgs,
			Attributes: []types.Attribute{
				{Key: "action", Value: "update_ask_price"},
				{Key: "collection", Value: req.CollectionAddr},
				{Key: "token_id", Value: req.TokenID},
				{Key: "price", Value: req.Price.String()},
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
