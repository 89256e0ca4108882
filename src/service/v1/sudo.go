package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// UpdateParams 运营方修改全局参数, 未提供的字段保持原值
func (e *Engine) UpdateParams(ctx context.Context, req *types.UpdateParamsReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		if !isOperator(params, req.Caller) {
			return errs.ErrUnauthorizedOperator
		}

		if req.AskExpiryMin != nil {
			params.AskExpiryMin = *req.AskExpiryMin
		}
		if req.AskExpiryMax != nil {
			params.AskExpiryMax = *req.AskExpiryMax
		}
		if req.BidExpiryMin != nil {
			params.BidExpiryMin = *req.BidExpiryMin
		}
		if req.BidExpiryMax != nil {
			params.BidExpiryMax = *req.BidExpiryMax
		}
		if req.MinPrice != nil {
			params.MinPrice = *req.MinPrice
		}
		if req.ListingFee != nil {
			params.ListingFee = *req.ListingFee
		}
		if req.Operators != nil {
			params.Operators = strings.Join(req.Operators, ",")
		}

		if params.AskExpiryMin >= params.AskExpiryMax || params.BidExpiryMin >= params.BidExpiryMax {
			return errors.New("expiry window min must be below max")
		}

		if err := tx.SaveParams(ctx, params); err != nil {
			return err
		}
		if err := tx.AddActivity(ctx, &model.Activity{
			ActivityType: model.ActivityUpdateParams,
			Maker:        req.Caller,
			EventTime:    now.Unix(),
		}); err != nil {
			return err
		}

		res = types.ExecuteResult{
			Attributes: []types.Attribute{
				{Key: "action", Value: "update_params"},
				{Key: "operator", Value: req.Caller},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func validHookFamily(family string) bool {
	switch family {
	case types.HookFamilyAsk, types.HookFamilyBid, types.HookFamilyCollectionBid, types.HookFamilySale:
		return true
	}
	return false
}

// AddHook 注册某个事件族的订阅地址, 仅限运营方
func (e *Engine) AddHook(ctx context.Context, req *types.HookReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		if !isOperator(params, req.Caller) {
			return errs.ErrUnauthorizedOperator
		}
		if !validHookFamily(req.Family) {
			return errors.Errorf("unknown hook family: %s", req.Family)
		}
		if err := tx.AddHook(ctx, req.Family, req.HookAddr); err != nil {
			return err
		}
		res = types.ExecuteResult{
			Attributes: []types.Attribute{
				{Key: "action", Value: "add_hook"},
				{Key: "family", Value: req.Family},
				{Key: "hook", Value: req.HookAddr},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RemoveHook 移除订阅地址, 仅限运营方
func (e *Engine) RemoveHook(ctx context.Context, req *types.HookReq) (*types.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res types.ExecuteResult
	err := e.store.Transact(ctx, func(tx dao.Storer) error {
		params, err := tx.GetParams(ctx)
		if err != nil {
			return err
		}
		if !isOperator(params, req.Caller) {
			return errs.ErrUnauthorizedOperator
		}
		if !validHookFamily(req.Family) {
			return errors.Errorf("unknown hook family: %s", req.Family)
		}
		if err := tx.RemoveHook(ctx, req.Family, req.HookAddr); err != nil {
			return err
		}
		res = types.ExecuteResult{
			Attributes: []types.Attribute{
				{Key: "action", Value: "remove_hook"},
				{Key: "family", Value: req.Family},
				{Key: "hook", Value: req.HookAddr},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
