package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

// ListHooks 列出某个事件族的全部订阅地址, 地址升序
func (d *Dao) ListHooks(ctx context.Context, family string) ([]string, error) {
	var addrs []string
	if err := d.DB.WithContext(ctx).Model(&model.Hook{}).
		Where("family = ?", family).
		Order("hook_address asc").
		Pluck("hook_address", &addrs).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list hooks")
	}
	return addrs, nil
}

// AddHook 注册订阅, 重复注册幂等
func (d *Dao) AddHook(ctx context.Context, family, hookAddr string) error {
	hook := model.Hook{Family: family, HookAddr: hookAddr}
	if err := d.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "family"}, {Name: "hook_address"}},
		DoNothing: true,
	}).Create(&hook).Error; err != nil {
		return errors.Wrap(err, "failed on add hook")
	}
	return nil
}

func (d *Dao) RemoveHook(ctx context.Context, family, hookAddr string) error {
	if err := d.DB.WithContext(ctx).
		Where("family = ? and hook_address = ?", family, hookAddr).
		Delete(&model.Hook{}).Error; err != nil {
		return errors.Wrap(err, "failed on remove hook")
	}
	return nil
}
