package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// validateFunds 校验托管资金: 币种必须匹配, 金额必须为正且不低于全局最低价
func validateFunds(params *model.SudoParams, funds types.Coin) error {
	if funds.Denom != params.Denom {
		return errs.ErrInvalidPrice
	}
	if funds.Amount.LessThanOrEqual(decimal.Zero) {
		return errs.ErrInvalidPrice
	}
	if funds.Amount.LessThan(params.MinPrice) {
		return errs.ErrPriceTooSmall
	}
	return nil
}

// validatePrice 校验标价, 约束与托管资金一致
func validatePrice(params *model.SudoParams, price decimal.Decimal) error {
	return validateFunds(params, types.Coin{Denom: params.Denom, Amount: price})
}

// validateAskExpiry 挂单有效期必须落在 (now+min, now+max] 区间
func validateAskExpiry(params *model.SudoParams, now time.Time, expireTime int64) error {
	return validateExpiry(now, expireTime, params.AskExpiryMin, params.AskExpiryMax)
}

// validateBidExpiry 集合级限价单有效期窗口
func validateBidExpiry(params *model.SudoParams, now time.Time, expireTime int64) error {
	return validateExpiry(now, expireTime, params.BidExpiryMin, params.BidExpiryMax)
}

func validateExpiry(now time.Time, expireTime, min, max int64) error {
	if expireTime <= now.Unix()+min {
		return errs.ErrInvalidExpiration
	}
	if expireTime > now.Unix()+max {
		return errs.ErrInvalidExpiration
	}
	return nil
}

// validateListingFee 挂单费必须与全局参数严格相等
// 费用为零时允许不附带资金(或附带零额资金)
func validateListingFee(params *model.SudoParams, funds *types.Coin) error {
	if params.ListingFee.LessThanOrEqual(decimal.Zero) {
		if funds != nil && funds.Amount.GreaterThan(decimal.Zero) {
			return errs.ErrInvalidListingFee
		}
		return nil
	}
	if funds == nil || funds.Denom != params.Denom || !funds.Amount.Equal(params.ListingFee) {
		return errs.ErrInvalidListingFee
	}
	return nil
}

// isExpired 到期判定为闭区间起点: now 恰好等于 expire_time 时已过期
func isExpired(now time.Time, expireTime int64) bool {
	return now.Unix() >= expireTime
}
