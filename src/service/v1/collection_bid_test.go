package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

func placeCollectionBid(e *Engine, bidder string, amount int64) (*types.ExecuteResult, error) {
	return e.PlaceCollectionBid(context.Background(), &types.PlaceCollectionBidReq{
		Caller:         bidder,
		CollectionAddr: testCollection,
		ExpireTime:     validExpire(),
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(amount)},
	})
}

// TestCollectionBidReplaceRefundsEscrow 重复下单时旧单托管先退款, 新旧替换同事务
func TestCollectionBidReplaceRefundsEscrow(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	res, err := placeCollectionBid(e, testBidder, 200)
	require.NoError(t, err)
	require.Empty(t, kindsOf(res.Messages))

	res, err = placeCollectionBid(e, testBidder, 250)
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindRefund}, kindsOf(res.Messages))
	require.Equal(t, testBidder, res.Messages[0].To)
	require.True(t, res.Messages[0].Amount.Equal(decimal.NewFromInt(200)))

	bid, err := store.GetCollectionBid(ctx, testCollection, testBidder)
	require.NoError(t, err)
	require.True(t, bid.Price.Equal(decimal.NewFromInt(250)))
}

// TestRemoveCollectionBidRefunds 撤单退还全部托管
func TestRemoveCollectionBidRefunds(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	_, err := placeCollectionBid(e, testBidder, 200)
	require.NoError(t, err)

	res, err := e.RemoveCollectionBid(ctx, &types.RemoveCollectionBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindRefund}, kindsOf(res.Messages))
	require.True(t, res.Messages[0].Amount.Equal(decimal.NewFromInt(200)))

	_, err = store.GetCollectionBid(ctx, testCollection, testBidder)
	require.ErrorIs(t, err, errs.ErrBidNotFound)

	// 没有可撤的单
	_, err = e.RemoveCollectionBid(ctx, &types.RemoveCollectionBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
	})
	require.ErrorIs(t, err, errs.ErrBidNotFound)
}

// TestAcceptCollectionBid 卖家吃单: 限价单消失, 货款给卖家, 物品给买家
func TestAcceptCollectionBid(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	_, err := placeCollectionBid(e, testBidder, 200)
	require.NoError(t, err)

	res, err := e.AcceptCollectionBid(ctx, &types.AcceptCollectionBidReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "9",
		Bidder:         testBidder,
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindPayout, types.MsgKindTransferItem}, kindsOf(res.Messages))
	require.Equal(t, testSeller, res.Messages[0].To)
	require.True(t, res.Messages[0].Amount.Equal(decimal.NewFromInt(200)))
	require.Equal(t, testBidder, res.Messages[1].Recipient)

	_, err = store.GetCollectionBid(ctx, testCollection, testBidder)
	require.ErrorIs(t, err, errs.ErrBidNotFound)
}

// TestAcceptCollectionBidExpired 过期限价单不可吃
func TestAcceptCollectionBidExpired(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := placeCollectionBid(e, testBidder, 200)
	require.NoError(t, err)

	e.now = func() time.Time { return time.Unix(validExpire(), 0) }
	_, err = e.AcceptCollectionBid(ctx, &types.AcceptCollectionBidReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "9",
		Bidder:         testBidder,
	})
	require.ErrorIs(t, err, errs.ErrBidExpired)
}

// TestAcceptCollectionBidConsumesAsk 该 token 有挂单时挂单被消耗, 其领先出价退款
func TestAcceptCollectionBidConsumesAsk(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	createAuctionAsk(t, e, 300)

	_, err := placeBid(e, testBidder2, 350)
	require.NoError(t, err)
	_, err = placeCollectionBid(e, testBidder, 200)
	require.NoError(t, err)

	// 非挂单卖家不可吃
	_, err = e.AcceptCollectionBid(ctx, &types.AcceptCollectionBidReq{
		Caller:         testBidder2,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Bidder:         testBidder,
	})
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	res, err := e.AcceptCollectionBid(ctx, &types.AcceptCollectionBidReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Bidder:         testBidder,
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindRefund, types.MsgKindPayout, types.MsgKindTransferItem}, kindsOf(res.Messages))
	require.Equal(t, testBidder2, res.Messages[0].To)
	require.True(t, res.Messages[0].Amount.Equal(decimal.NewFromInt(350)))

	_, err = store.GetAsk(ctx, testCollection, "1")
	require.ErrorIs(t, err, errs.ErrAskNotFound)
}

// TestCollectionBidValidation 有效期与资金窗口校验
func TestCollectionBidValidation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.PlaceCollectionBid(ctx, &types.PlaceCollectionBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
		ExpireTime:     testNow.Unix() + testBidExpiryMin,
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(200)},
	})
	require.ErrorIs(t, err, errs.ErrInvalidExpiration)

	_, err = e.PlaceCollectionBid(ctx, &types.PlaceCollectionBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
		ExpireTime:     validExpire(),
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(50)},
	})
	require.ErrorIs(t, err, errs.ErrPriceTooSmall)
}
