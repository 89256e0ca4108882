package dao

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

const (
	sudoParamsID       = 1
	sudoParamsCacheKey = "cache:em:sudo_params"
	sudoParamsCacheTTL = 30 // 秒
)

// ErrParamsNotInit 参数单例行尚未落库
var ErrParamsNotInit = errors.New("sudo params not initialized")

// GetParams 读取全局参数单例行
// 参数行在服务初始化时落库, 查不到说明部署有误
func (d *Dao) GetParams(ctx context.Context) (*model.SudoParams, error) {
	var params model.SudoParams
	if err := d.DB.WithContext(ctx).
		Where("id = ?", sudoParamsID).
		First(&params).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParamsNotInit
		}
		return nil, errors.Wrap(err, "failed on get sudo params")
	}
	return &params, nil
}

// SaveParams 写入参数单例行并使缓存失效
func (d *Dao) SaveParams(ctx context.Context, params *model.SudoParams) error {
	params.ID = sudoParamsID
	if err := d.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"denom", "ask_expiry_min", "ask_expiry_max", "bid_expiry_min",
			"bid_expiry_max", "min_price", "listing_fee", "operators", "update_time",
		}),
	}).Create(params).Error; err != nil {
		return errors.Wrap(err, "failed on save sudo params")
	}
	if d.KvStore != nil {
		_, _ = d.KvStore.Del(sudoParamsCacheKey)
	}
	return nil
}

// GetParamsCached 查询侧读参数, 带 Redis 缓存
// 写路径(引擎事务)必须用 GetParams 直读数据库
func (d *Dao) GetParamsCached(ctx context.Context) (*model.SudoParams, error) {
	if d.KvStore != nil {
		raw, err := d.KvStore.Get(sudoParamsCacheKey)
		if err == nil && raw != "" {
			var params model.SudoParams
			if err := json.Unmarshal([]byte(raw), &params); err == nil {
				return &params, nil
			}
		}
	}

	params, err := d.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	if d.KvStore != nil {
		if raw, err := json.Marshal(params); err == nil {
			_ = d.KvStore.Setex(sudoParamsCacheKey, string(raw), sudoParamsCacheTTL)
		}
	}
	return params, nil
}
