package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// finalizeSale 结算一笔成交, 消息顺序固定:
// 1. 版税打款(如有) 2. 卖家/指定收款人货款 3. 物品转移 4. 成交通知
// 一口价成交与拍卖结算走同一条路径, 版税规则一致
func (e *Engine) finalizeSale(ctx context.Context, tx dao.Storer, ask *model.Ask, price decimal.Decimal, buyer, denom string, now time.Time) ([]types.Message, error) {
	var msgs []types.Message

	// 1. 版税: 集合未配置版税记录时按零处理, 其余查询错误让整个动作失败
	royalty := decimal.Zero
	collection, err := tx.GetCollection(ctx, ask.CollectionAddr)
	if err != nil {
		return nil, err
	}
	if collection != nil && collection.RoyaltyRate.GreaterThan(decimal.Zero) {
		royalty = price.Mul(collection.RoyaltyRate).Floor()
		if royalty.GreaterThan(price) {
			return nil, errs.ErrFeesExceedPrice
		}
		if royalty.GreaterThan(decimal.Zero) {
			msgs = append(msgs, newRoyaltyMsg(collection.RoyaltyReceiver, royalty, denom))
		}
	}

	// 2. 货款: 指定了收款人则打给收款人, 否则打给卖家
	recipient := ask.Seller
	if ask.FundsRecipient != "" {
		recipient = ask.FundsRecipient
	}
	msgs = append(msgs, newPayoutMsg(recipient, price.Sub(royalty), denom))

	// 3. 物品转移给买家
	msgs = append(msgs, newTransferItemMsg(ask.CollectionAddr, ask.TokenID, buyer))

	// 4. 成交通知
	hookMsgs, err := buildHookMsgs(ctx, tx, types.HookFamilySale, types.SaleEvent{
		CollectionAddr: ask.CollectionAddr,
		TokenID:        ask.TokenID,
		Price:          price,
		Seller:         ask.Seller,
		Buyer:          buyer,
	})
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, hookMsgs...)

	if err := tx.AddActivity(ctx, &model.Activity{
		ActivityType:   model.ActivitySale,
		CollectionAddr: ask.CollectionAddr,
		TokenID:        ask.TokenID,
		Maker:          ask.Seller,
		Taker:          buyer,
		Price:          price,
		EventTime:      now.Unix(),
	}); err != nil {
		return nil, err
	}

	return msgs, nil
}
