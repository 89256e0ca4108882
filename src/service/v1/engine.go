package service

import (
	"context"
	"sync"
	"time"

	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// Engine 托管撮合引擎
// 所有入站动作串行执行(单互斥锁), 动作内的全部读写落在同一个数据库事务里;
// 事务提交后才把 hook 通知交给中继异步投递, 支付/转移消息原样返回给宿主执行
type Engine struct {
	mu    sync.Mutex
	store dao.Storer
	relay *Relay
	now   func() time.Time
}

type EngineOption func(*Engine)

// WithClock 注入时钟, 单测用
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRelay 注入通知中继, 不注入时 hook 消息只返回不投递
func WithRelay(relay *Relay) EngineOption {
	return func(e *Engine) {
		e.relay = relay
	}
}

func NewEngine(store dao.Storer, opts ...EngineOption) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// dispatchHooks 把结果中的 hook_notify 消息交给中继
// 必须在事务提交之后调用; 没有中继时静默跳过
func (e *Engine) dispatchHooks(ctx context.Context, res *types.ExecuteResult) {
	if e.relay == nil || res == nil {
		return
	}
	e.relay.Dispatch(ctx, res.Messages)
}
