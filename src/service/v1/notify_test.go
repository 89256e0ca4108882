package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

func hookNotifyOf(t *testing.T, msgs []types.Message) types.Message {
	t.Helper()
	for _, msg := range msgs {
		if msg.Kind == types.MsgKindHookNotify {
			return msg
		}
	}
	t.Fatal("no hook_notify message in result")
	return types.Message{}
}

func hookFailures(store *memStore) []model.Activity {
	var out []model.Activity
	for _, act := range store.activities {
		if act.ActivityType == model.ActivityHookFailed {
			out = append(out, act)
		}
	}
	return out
}

// TestRelayDeliverFailure 订阅者返回 5xx 时投递按失败处理:
// 留一条 hook-failed 流水, 引擎侧状态不受任何影响
func TestRelayDeliverFailure(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	require.NoError(t, store.AddHook(ctx, types.HookFamilyAsk, srv.URL))

	res, err := e.CreateAsk(ctx, &types.CreateAskReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
		SaleType:       types.SaleTypeAuction,
		Price:          decimal.NewFromInt(300),
		ExpireTime:     validExpire(),
	})
	require.NoError(t, err)
	msg := hookNotifyOf(t, res.Messages)

	relay := NewRelay(store)
	relay.deliver(ctx, msg)

	failures := hookFailures(store)
	require.Len(t, failures, 1)
	require.Equal(t, srv.URL, failures[0].Maker)
	require.Contains(t, failures[0].Remark, "ask-hook-failed")
	require.Contains(t, failures[0].Remark, "status 500")

	// 投递失败不回滚: 挂单原样保留
	ask, err := store.GetAsk(ctx, testCollection, "1")
	require.NoError(t, err)
	require.Equal(t, testSeller, ask.Seller)
	require.True(t, ask.IsActive)
}

// TestRelayDeliverSuccess 2xx 视为投递成功, 不留任何失败流水
func TestRelayDeliverSuccess(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	require.NoError(t, store.AddHook(ctx, types.HookFamilyAsk, srv.URL))

	res, err := e.CreateAsk(ctx, &types.CreateAskReq{
		Caller:         testSeller,
		CollectionAddr: testCollection,
		TokenID:        "1",
		SaleType:       types.SaleTypeAuction,
		Price:          decimal.NewFromInt(300),
		ExpireTime:     validExpire(),
	})
	require.NoError(t, err)
	msg := hookNotifyOf(t, res.Messages)

	relay := NewRelay(store)
	relay.deliver(ctx, msg)

	require.Empty(t, hookFailures(store))
}
