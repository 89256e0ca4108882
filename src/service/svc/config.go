package svc

import (
	"github.com/ProjectsTask/EasySwapBase/stores/xkv"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	service "github.com/ProjectsTask/EasySwapMarket/src/service/v1"
)

// CtxConfig 服务上下文配置构建器
// 使用 Option 模式构建 ServerCtx
type CtxConfig struct {
	db      *gorm.DB
	dao     *dao.Dao
	KvStore *xkv.Store
	engine  *service.Engine
}

type CtxOption func(conf *CtxConfig)

// NewServerCtx 创建新的服务上下文
func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:      c.db,
		KvStore: c.KvStore,
		Dao:     c.dao,
		Engine:  c.engine,
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.KvStore = kv
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithDao(dao *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}

func WithEngine(engine *service.Engine) CtxOption {
	return func(conf *CtxConfig) {
		conf.engine = engine
	}
}
