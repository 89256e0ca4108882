package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

// 分页上限约定: 调用方不传 limit 时默认 10, 最大 100
const (
	DefaultQueryLimit = 10
	MaxQueryLimit     = 100
)

// NormalizeLimit 把调用方传入的 limit 收敛到 [1, MaxQueryLimit]
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

// GetAsk 按 (collection, token_id) 读取挂单, 不存在返回 ErrAskNotFound
func (d *Dao) GetAsk(ctx context.Context, collectionAddr, tokenID string) (*model.Ask, error) {
	var ask model.Ask
	if err := d.DB.WithContext(ctx).
		Where("collection_address = ? and token_id = ?", collectionAddr, tokenID).
		First(&ask).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAskNotFound
		}
		return nil, errors.Wrap(err, "failed on get ask")
	}
	return &ask, nil
}

// SaveAsk 按唯一键 (collection, token_id) 插入或更新挂单
// 主表与二级索引(按集合/按卖家)在同一条 upsert 里保持一致
func (d *Dao) SaveAsk(ctx context.Context, ask *model.Ask) error {
	if err := d.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection_address"}, {Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sale_type", "seller", "funds_recipient", "price",
			"expire_time", "is_active", "max_bidder", "max_bid", "update_time",
		}),
	}).Create(ask).Error; err != nil {
		return errors.Wrap(err, "failed on save ask")
	}
	return nil
}

func (d *Dao) DeleteAsk(ctx context.Context, collectionAddr, tokenID string) error {
	if err := d.DB.WithContext(ctx).
		Where("collection_address = ? and token_id = ?", collectionAddr, tokenID).
		Delete(&model.Ask{}).Error; err != nil {
		return errors.Wrap(err, "failed on delete ask")
	}
	return nil
}

// ListAsksByCollection 按 token_id 升序游标分页查询某集合下的挂单
func (d *Dao) ListAsksByCollection(ctx context.Context, collectionAddr, startAfterToken string, limit int) ([]model.Ask, error) {
	var asks []model.Ask
	tx := d.DB.WithContext(ctx).
		Where("collection_address = ?", collectionAddr)
	if startAfterToken != "" {
		tx = tx.Where("token_id > ?", startAfterToken)
	}
	if err := tx.Order("token_id asc").
		Limit(NormalizeLimit(limit)).
		Find(&asks).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list asks by collection")
	}
	return asks, nil
}

// ListAsksBySeller 按 (collection, token_id) 组合键升序分页查询某卖家的挂单
// startAfterKey 形如 "collection/token_id"
func (d *Dao) ListAsksBySeller(ctx context.Context, seller, startAfterKey string, limit int) ([]model.Ask, error) {
	var asks []model.Ask
	tx := d.DB.WithContext(ctx).Where("seller = ?", seller)
	if startAfterKey != "" {
		tx = tx.Where("concat(collection_address, '/', token_id) > ?", startAfterKey)
	}
	if err := tx.Order("collection_address asc, token_id asc").
		Limit(NormalizeLimit(limit)).
		Find(&asks).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list asks by seller")
	}
	return asks, nil
}

func (d *Dao) CountAsks(ctx context.Context, collectionAddr string) (int64, error) {
	var count int64
	if err := d.DB.WithContext(ctx).Model(&model.Ask{}).
		Where("collection_address = ?", collectionAddr).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed on count asks")
	}
	return count, nil
}

// ListedCollections 去重列出当前有挂单的集合地址
func (d *Dao) ListedCollections(ctx context.Context, startAfter string, limit int) ([]string, error) {
	var addrs []string
	tx := d.DB.WithContext(ctx).Model(&model.Ask{}).
		Distinct("collection_address")
	if startAfter != "" {
		tx = tx.Where("collection_address > ?", startAfter)
	}
	if err := tx.Order("collection_address asc").
		Limit(NormalizeLimit(limit)).
		Pluck("collection_address", &addrs).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list collections")
	}
	return addrs, nil
}
