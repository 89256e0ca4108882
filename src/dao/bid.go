package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

// SaveBid 写入一条出价存档
// 同一 (collection, token_id, bidder) 再次领先时覆盖旧档(价格只会更高)
func (d *Dao) SaveBid(ctx context.Context, bid *model.Bid) error {
	if err := d.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_address"}, {Name: "token_id"}, {Name: "bidder"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "event_time"}),
	}).Create(bid).Error; err != nil {
		return errors.Wrap(err, "failed on save bid")
	}
	return nil
}

func (d *Dao) GetBid(ctx context.Context, collectionAddr, tokenID, bidder string) (*model.Bid, error) {
	var bid model.Bid
	if err := d.DB.WithContext(ctx).
		Where("collection_address = ? and token_id = ? and bidder = ?", collectionAddr, tokenID, bidder).
		First(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBidNotFound
		}
		return nil, errors.Wrap(err, "failed on get bid")
	}
	return &bid, nil
}

func (d *Dao) ListBidsByItem(ctx context.Context, collectionAddr, tokenID, startAfterBidder string, limit int) ([]model.Bid, error) {
	var bids []model.Bid
	tx := d.DB.WithContext(ctx).
		Where("collection_address = ? and token_id = ?", collectionAddr, tokenID)
	if startAfterBidder != "" {
		tx = tx.Where("bidder > ?", startAfterBidder)
	}
	if err := tx.Order("bidder asc").
		Limit(NormalizeLimit(limit)).
		Find(&bids).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list bids by item")
	}
	return bids, nil
}

func (d *Dao) ListBidsByBidder(ctx context.Context, bidder, startAfterKey string, limit int) ([]model.Bid, error) {
	var bids []model.Bid
	tx := d.DB.WithContext(ctx).Where("bidder = ?", bidder)
	if startAfterKey != "" {
		tx = tx.Where("concat(collection_address, '/', token_id) > ?", startAfterKey)
	}
	if err := tx.Order("collection_address asc, token_id asc").
		Limit(NormalizeLimit(limit)).
		Find(&bids).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list bids by bidder")
	}
	return bids, nil
}
