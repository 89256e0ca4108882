package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/threading"
	"github.com/zeromicro/go-zero/rest/httpc"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

const defaultHookTimeout = 5 * time.Second

// hookNotification 投递给订阅者的请求体
type hookNotification struct {
	Family string          `json:"family"`
	Event  json.RawMessage `json:"event"`
}

// Relay 通知中继
// 只负责 hook_notify 消息的单向异步投递; 投递失败记录一条流水并打告警日志,
// 绝不回滚或改写引擎状态
type Relay struct {
	store   dao.Storer
	timeout time.Duration
}

func NewRelay(store dao.Storer) *Relay {
	return &Relay{
		store:   store,
		timeout: defaultHookTimeout,
	}
}

// Dispatch 把消息列表里的 hook_notify 逐条交给后台协程投递
// 调用方保证此时动作事务已提交
func (r *Relay) Dispatch(ctx context.Context, msgs []types.Message) {
	for _, msg := range msgs {
		if msg.Kind != types.MsgKindHookNotify {
			continue
		}
		m := msg
		threading.GoSafe(func() {
			r.deliver(context.Background(), m)
		})
	}
}

func (r *Relay) deliver(ctx context.Context, msg types.Message) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := httpc.Do(ctx, http.MethodPost, msg.HookAddr, hookNotification{
		Family: msg.HookFamily,
		Event:  msg.Payload,
	})
	if err == nil {
		defer resp.Body.Close()
		if resp.StatusCode < http.StatusBadRequest {
			return
		}
		err = errors.Errorf("hook returned status %d", resp.StatusCode)
	}
	r.reportFailure(msg, err)
}

// reportFailure 失败只留痕: 一条 Activity 流水 + 一条告警日志
// 投递超时后原 ctx 已失效, 落流水用新 ctx
func (r *Relay) reportFailure(msg types.Message, cause error) {
	ctx := context.Background()
	xzap.WithContext(ctx).Warn("hook delivery failed",
		zap.String("family", msg.HookFamily),
		zap.String("hook", msg.HookAddr),
		zap.String("msg_id", msg.ID),
		zap.Error(cause))

	if err := r.store.AddActivity(ctx, &model.Activity{
		ActivityType: model.ActivityHookFailed,
		Maker:        msg.HookAddr,
		Remark:       fmt.Sprintf("%s-hook-failed: %v", msg.HookFamily, cause),
		EventTime:    time.Now().Unix(),
	}); err != nil {
		xzap.WithContext(ctx).Error("failed on record hook failure", zap.Error(err))
	}
}
