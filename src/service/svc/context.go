package svc

import (
	"context"
	"strings"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/ProjectsTask/EasySwapBase/stores/gdb"
	"github.com/ProjectsTask/EasySwapBase/stores/xkv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapMarket/src/config"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
	service "github.com/ProjectsTask/EasySwapMarket/src/service/v1"
)

type ServerCtx struct {
	C       *config.Config
	DB      *gorm.DB
	Dao     *dao.Dao
	KvStore *xkv.Store
	Engine  *service.Engine
}

// NewServiceContext 初始化服务上下文
// 负责日志/Redis/MySQL/引擎等基础组件的装配, 并在首次启动时落库参数种子
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	// 1. 初始化日志系统
	_, err := xzap.SetUp(*c.Log)
	if err != nil {
		return nil, err
	}

	// 2. 构造 Redis 配置
	var kvConf kv.KvConf
	for _, con := range c.Kv.Redis {
		kvConf = append(kvConf, cache.NodeConf{
			RedisConf: redis.RedisConf{
				Host: con.Host,
				Type: con.Type,
				Pass: con.Pass,
			},
			Weight: 1,
		})
	}

	// 3. 初始化 Redis 客户端
	store := xkv.NewStore(kvConf)
	// 4. 初始化数据库连接
	db, err := gdb.NewDB(c.DB)
	if err != nil {
		return nil, err
	}

	// 5. 初始化数据访问层并落库参数种子
	d := dao.New(db, store)
	if err := seedParams(context.Background(), d, c.Params); err != nil {
		return nil, err
	}

	// 6. 初始化通知中继与引擎
	relay := service.NewRelay(d)
	engine := service.NewEngine(d, service.WithRelay(relay))

	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(d),
		WithEngine(engine),
	)
	serverCtx.C = c

	return serverCtx, nil
}

// seedParams 参数单例行不存在时用配置种子初始化
// 已存在时配置种子被忽略, 参数只能走运营方特权接口修改
func seedParams(ctx context.Context, d *dao.Dao, cfg config.ParamsCfg) error {
	_, err := d.GetParams(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, dao.ErrParamsNotInit) {
		return err
	}

	minPrice, err := decimal.NewFromString(cfg.MinPrice)
	if err != nil {
		return errors.Wrap(err, "failed on parse min_price")
	}
	listingFee, err := decimal.NewFromString(cfg.ListingFee)
	if err != nil {
		return errors.Wrap(err, "failed on parse listing_fee")
	}
	if cfg.Denom == "" {
		return errors.New("params denom is required")
	}
	if cfg.AskExpiryMin >= cfg.AskExpiryMax || cfg.BidExpiryMin >= cfg.BidExpiryMax {
		return errors.New("expiry window min must be below max")
	}

	return d.SaveParams(ctx, &model.SudoParams{
		Denom:        cfg.Denom,
		AskExpiryMin: cfg.AskExpiryMin,
		AskExpiryMax: cfg.AskExpiryMax,
		BidExpiryMin: cfg.BidExpiryMin,
		BidExpiryMax: cfg.BidExpiryMax,
		MinPrice:     minPrice,
		ListingFee:   listingFee,
		Operators:    strings.Join(cfg.Operators, ","),
	})
}
