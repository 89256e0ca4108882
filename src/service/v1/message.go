package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// 副作用消息构造
// 支付和转移消息只描述意图, 由宿主按返回顺序执行; hook_notify 由中继异步投递

func newRefundMsg(to string, amount decimal.Decimal, denom string) types.Message {
	return types.Message{
		ID:     uuid.NewString(),
		Kind:   types.MsgKindRefund,
		To:     to,
		Amount: amount,
		Denom:  denom,
	}
}

func newRoyaltyMsg(to string, amount decimal.Decimal, denom string) types.Message {
	return types.Message{
		ID:     uuid.NewString(),
		Kind:   types.MsgKindRoyaltyPayout,
		To:     to,
		Amount: amount,
		Denom:  denom,
	}
}

func newPayoutMsg(to string, amount decimal.Decimal, denom string) types.Message {
	return types.Message{
		ID:     uuid.NewString(),
		Kind:   types.MsgKindPayout,
		To:     to,
		Amount: amount,
		Denom:  denom,
	}
}

func newTransferItemMsg(collectionAddr, tokenID, recipient string) types.Message {
	return types.Message{
		ID:             uuid.NewString(),
		Kind:           types.MsgKindTransferItem,
		CollectionAddr: collectionAddr,
		TokenID:        tokenID,
		Recipient:      recipient,
	}
}

// buildHookMsgs 给某个事件族的所有订阅者各生成一条通知消息
// 订阅表在动作事务内读取, 保证通知集合与落库状态一致
func buildHookMsgs(ctx context.Context, tx dao.Storer, family string, payload interface{}) ([]types.Message, error) {
	hooks, err := tx.ListHooks(ctx, family)
	if err != nil {
		return nil, err
	}
	if len(hooks) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed on marshal hook payload")
	}

	msgs := make([]types.Message, 0, len(hooks))
	for _, addr := range hooks {
		msgs = append(msgs, types.Message{
			ID:         uuid.NewString(),
			Kind:       types.MsgKindHookNotify,
			HookFamily: family,
			HookAddr:   addr,
			Payload:    raw,
		})
	}
	return msgs, nil
}
