package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

func (d *Dao) GetCollectionBid(ctx context.Context, collectionAddr, bidder string) (*model.CollectionBid, error) {
	var bid model.CollectionBid
	if err := d.DB.WithContext(ctx).
		Where("collection_address = ? and bidder = ?", collectionAddr, bidder).
		First(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBidNotFound
		}
		return nil, errors.Wrap(err, "failed on get collection bid")
	}
	return &bid, nil
}

// SaveCollectionBid 同一 (collection, bidder) 重复出价时覆盖旧单
// 旧单的托管退款由引擎在调用本方法前生成
func (d *Dao) SaveCollectionBid(ctx context.Context, bid *model.CollectionBid) error {
	if err := d.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_address"}, {Name: "bidder"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "expire_time"}),
	}).Create(bid).Error; err != nil {
		return errors.Wrap(err, "failed on save collection bid")
	}
	return nil
}

func (d *Dao) DeleteCollectionBid(ctx context.Context, collectionAddr, bidder string) error {
	if err := d.DB.WithContext(ctx).
		Where("collection_address = ? and bidder = ?", collectionAddr, bidder).
		Delete(&model.CollectionBid{}).Error; err != nil {
		return errors.Wrap(err, "failed on delete collection bid")
	}
	return nil
}
