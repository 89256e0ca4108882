package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

// AddActivity 追加一条事件流水
func (d *Dao) AddActivity(ctx context.Context, activity *model.Activity) error {
	if err := d.DB.WithContext(ctx).Create(activity).Error; err != nil {
		return errors.Wrap(err, "failed on add activity")
	}
	return nil
}
