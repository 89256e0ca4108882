package service

import (
	"strings"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// 持久化模型到对外视图的转换

func toAskView(m *model.Ask) types.Ask {
	return types.Ask{
		SaleType:       m.SaleType,
		CollectionAddr: m.CollectionAddr,
		TokenID:        m.TokenID,
		Seller:         m.Seller,
		FundsRecipient: m.FundsRecipient,
		Price:          m.Price,
		ExpireTime:     m.ExpireTime,
		IsActive:       m.IsActive,
		MaxBidder:      m.MaxBidder,
		MaxBid:         m.MaxBid,
	}
}

func toBidView(m *model.Bid) types.Bid {
	return types.Bid{
		CollectionAddr: m.CollectionAddr,
		TokenID:        m.TokenID,
		Bidder:         m.Bidder,
		Price:          m.Price,
		EventTime:      m.EventTime,
	}
}

func toCollectionBidView(m *model.CollectionBid) types.CollectionBid {
	return types.CollectionBid{
		CollectionAddr: m.CollectionAddr,
		Bidder:         m.Bidder,
		Price:          m.Price,
		ExpireTime:     m.ExpireTime,
	}
}

func toParamsView(m *model.SudoParams) types.SudoParams {
	var operators []string
	if m.Operators != "" {
		operators = strings.Split(m.Operators, ",")
	}
	return types.SudoParams{
		Denom:        m.Denom,
		AskExpiryMin: m.AskExpiryMin,
		AskExpiryMax: m.AskExpiryMax,
		BidExpiryMin: m.BidExpiryMin,
		BidExpiryMax: m.BidExpiryMax,
		MinPrice:     m.MinPrice,
		ListingFee:   m.ListingFee,
		Operators:    operators,
	}
}

// isOperator 判断 caller 是否在参数表的运营方名单里
func isOperator(params *model.SudoParams, caller string) bool {
	if params.Operators == "" {
		return false
	}
	for _, op := range strings.Split(params.Operators, ",") {
		if strings.EqualFold(op, caller) {
			return true
		}
	}
	return false
}
