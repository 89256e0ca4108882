package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// 测试共用的固定时钟与地址
var testNow = time.Unix(1700000000, 0)

const (
	testDenom      = "0x0000000000000000000000000000000000000000"
	testCollection = "0xc011000000000000000000000000000000000001"
	testSeller     = "0x5e11000000000000000000000000000000000001"
	testBidder     = "0xb1dd000000000000000000000000000000000001"
	testBidder2    = "0xb1dd000000000000000000000000000000000002"
	testOperator   = "0x0be2000000000000000000000000000000000001"
	testRoyaltyRcv = "0x20ff000000000000000000000000000000000001"
)

const (
	testAskExpiryMin = int64(100)
	testAskExpiryMax = int64(100000)
	testBidExpiryMin = int64(100)
	testBidExpiryMax = int64(100000)
)

func testParams() *model.SudoParams {
	return &model.SudoParams{
		Denom:        testDenom,
		AskExpiryMin: testAskExpiryMin,
		AskExpiryMax: testAskExpiryMax,
		BidExpiryMin: testBidExpiryMin,
		BidExpiryMax: testBidExpiryMax,
		MinPrice:     decimal.NewFromInt(100),
		ListingFee:   decimal.Zero,
		Operators:    testOperator,
	}
}

func newTestEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	require.NoError(t, store.SaveParams(context.Background(), testParams()))
	engine := NewEngine(store, WithClock(func() time.Time { return testNow }))
	return engine, store
}

func validExpire() int64 {
	return testNow.Unix() + testAskExpiryMin + 500
}

func createAuctionAsk(t *testing.T, e *Engine, price int64) {
	t.Helper()
	_, err := e.CreateAsk(context.Background(), &types.CreateAskReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
		SaleType:       types.SaleTypeAuction,
		Price:          decimal.NewFromInt(price),
		ExpireTime:     validExpire(),
	})
	require.NoError(t, err)
}

func createFixedAsk(t *testing.T, e *Engine, price int64) {
	t.Helper()
	_, err := e.CreateAsk(context.Background(), &types.CreateAskReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
		SaleType:       types.SaleTypeFixedPrice,
		Price:          decimal.NewFromInt(price),
		ExpireTime:     validExpire(),
	})
	require.NoError(t, err)
}

// kindsOf 提取消息类型序列, 断言消息顺序用
func kindsOf(msgs []types.Message) []string {
	kinds := make([]string, 0, len(msgs))
	for _, m := range msgs {
		kinds = append(kinds, m.Kind)
	}
	return kinds
}

// TestAuctionLifecycle 完整拍卖流程:
// 300 挂单, 350 出价, 400 超越(350 退款), 到期后卖家结算 400
func TestAuctionLifecycle(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	createAuctionAsk(t, e, 300)

	// 首次出价 350, 没有旧领先者, 不产生退款
	res, err := e.PlaceBid(ctx, &types.PlaceBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(350)},
	})
	require.NoError(t, err)
	require.Empty(t, kindsOf(res.Messages))

	// 400 超越, 旧领先者 350 全额退款
	res, err = e.PlaceBid(ctx, &types.PlaceBidReq{
		Caller:         testBidder2,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(400)},
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindRefund}, kindsOf(res.Messages))
	require.Equal(t, testBidder, res.Messages[0].To)
	require.True(t, res.Messages[0].Amount.Equal(decimal.NewFromInt(350)))

	ask, err := store.GetAsk(ctx, testCollection, "1")
	require.NoError(t, err)
	require.Equal(t, testBidder2, ask.MaxBidder)
	require.True(t, ask.MaxBid.Equal(decimal.NewFromInt(400)))

	// 未到期结算被拒
	_, err = e.AcceptBid(ctx, &types.AcceptBidReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
	})
	require.Error(t, err)

	// 到期后结算: 货款给卖家, 物品给领先者, 挂单消失
	e.now = func() time.Time { return time.Unix(validExpire(), 0) }
	res, err = e.AcceptBid(ctx, &types.AcceptBidReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindPayout, types.MsgKindTransferItem}, kindsOf(res.Messages))
	require.Equal(t, testSeller, res.Messages[0].To)
	require.True(t, res.Messages[0].Amount.Equal(decimal.NewFromInt(400)))
	require.Equal(t, testBidder2, res.Messages[1].Recipient)

	_, err = store.GetAsk(ctx, testCollection, "1")
	require.Error(t, err)

	// 结算恰好一次: 重复结算失败
	_, err = e.AcceptBid(ctx, &types.AcceptBidReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
	})
	require.Error(t, err)
}

// TestFixedPriceExactFunds 一口价只接受精确等额资金
func TestFixedPriceExactFunds(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	createFixedAsk(t, e, 300)

	for _, amount := range []int64{299, 301} {
		_, err := e.PlaceBid(ctx, &types.PlaceBidReq{
			Caller:         testBidder,
			CollectionAddr: testCollection,
			TokenID:        "1",
			Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(amount)},
		})
		require.Error(t, err, "amount %d must be rejected", amount)
	}

	res, err := e.PlaceBid(ctx, &types.PlaceBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(300)},
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindPayout, types.MsgKindTransferItem}, kindsOf(res.Messages))
	require.Equal(t, testBidder, res.Messages[1].Recipient)

	_, err = store.GetAsk(ctx, testCollection, "1")
	require.Error(t, err)
}

// TestRemoveAskRefundsLeader 撤单时退还当前领先出价
func TestRemoveAskRefundsLeader(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	createAuctionAsk(t, e, 300)

	_, err := e.PlaceBid(ctx, &types.PlaceBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(350)},
	})
	require.NoError(t, err)

	res, err := e.RemoveAsk(ctx, &types.RemoveAskReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindRefund}, kindsOf(res.Messages))
	require.Equal(t, testBidder, res.Messages[0].To)
	require.True(t, res.Messages[0].Amount.Equal(decimal.NewFromInt(350)))

	_, err = store.GetAsk(ctx, testCollection, "1")
	require.Error(t, err)
}

// TestRoyaltySplit 版税按比例向下取整, 货款+版税恰好等于成交价
func TestRoyaltySplit(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	store.collections[testCollection] = model.Collection{
		Address:         testCollection,
		RoyaltyRate:     decimal.NewFromFloat(0.1),
		RoyaltyReceiver: testRoyaltyRcv,
	}
	createFixedAsk(t, e, 333)

	res, err := e.PlaceBid(ctx, &types.PlaceBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(333)},
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindRoyaltyPayout, types.MsgKindPayout, types.MsgKindTransferItem}, kindsOf(res.Messages))

	royalty := res.Messages[0]
	payout := res.Messages[1]
	require.Equal(t, testRoyaltyRcv, royalty.To)
	require.True(t, royalty.Amount.Equal(decimal.NewFromInt(33)), "floor(333*0.1) = 33, got %s", royalty.Amount)
	require.Equal(t, testSeller, payout.To)
	require.True(t, royalty.Amount.Add(payout.Amount).Equal(decimal.NewFromInt(333)))
}

// TestAuctionNoBidsReturnsItem 流拍后结算: 物品退回卖家, 无款项流转
func TestAuctionNoBidsReturnsItem(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	createAuctionAsk(t, e, 300)

	e.now = func() time.Time { return time.Unix(validExpire(), 0) }
	res, err := e.AcceptBid(ctx, &types.AcceptBidReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
	})
	require.NoError(t, err)
	require.Equal(t, []string{types.MsgKindTransferItem}, kindsOf(res.Messages))
	require.Equal(t, testSeller, res.Messages[0].Recipient)

	_, err = store.GetAsk(ctx, testCollection, "1")
	require.Error(t, err)
}

// TestFundsRecipientPayout 指定收款人时货款打给收款人而非卖家
func TestFundsRecipientPayout(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	recipient := "0x2ec1000000000000000000000000000000000001"

	_, err := e.CreateAsk(ctx, &types.CreateAskReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
		SaleType:       types.SaleTypeFixedPrice,
		Price:          decimal.NewFromInt(300),
		FundsRecipient: recipient,
		ExpireTime:     validExpire(),
	})
	require.NoError(t, err)

	res, err := e.PlaceBid(ctx, &types.PlaceBidReq{
		Caller:         testBidder,
		CollectionAddr: testCollection,
		TokenID:        "1",
		Funds:          types.Coin{Denom: testDenom, Amount: decimal.NewFromInt(300)},
	})
	require.NoError(t, err)
	require.Equal(t, recipient, res.Messages[0].To)
}
