package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

// GetCollection 读取集合的版税配置
// 未配置版税的集合没有记录, 返回 (nil, nil), 结算时按零版税处理
func (d *Dao) GetCollection(ctx context.Context, collectionAddr string) (*model.Collection, error) {
	var collection model.Collection
	if err := d.DB.WithContext(ctx).
		Where("address = ?", collectionAddr).
		First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed on get collection")
	}
	return &collection, nil
}
