package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ProjectsTask/EasySwapMarket/src/common/errs"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/dao/model"
)

// memStore 内存版 Storer, 引擎单测用
// Transact 语义与数据库一致: fn 返回错误时整个快照回滚
type memStore struct {
	mu          sync.Mutex
	asks        map[string]model.Ask
	bids        map[string]model.Bid
	cbids       map[string]model.CollectionBid
	params      *model.SudoParams
	hooks       map[string][]string
	collections map[string]model.Collection
	activities  []model.Activity
}

func newMemStore() *memStore {
	return &memStore{
		asks:        make(map[string]model.Ask),
		bids:        make(map[string]model.Bid),
		cbids:       make(map[string]model.CollectionBid),
		hooks:       make(map[string][]string),
		collections: make(map[string]model.Collection),
	}
}

func askKey(collectionAddr, tokenID string) string {
	return collectionAddr + "/" + tokenID
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.asks {
		cp.asks[k] = v
	}
	for k, v := range s.bids {
		cp.bids[k] = v
	}
	for k, v := range s.cbids {
		cp.cbids[k] = v
	}
	for k, v := range s.collections {
		cp.collections[k] = v
	}
	for k, v := range s.hooks {
		cp.hooks[k] = append([]string(nil), v...)
	}
	if s.params != nil {
		p := *s.params
		cp.params = &p
	}
	cp.activities = append([]model.Activity(nil), s.activities...)
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.asks = from.asks
	s.bids = from.bids
	s.cbids = from.cbids
	s.collections = from.collections
	s.hooks = from.hooks
	s.params = from.params
	s.activities = from.activities
}

func (s *memStore) Transact(ctx context.Context, fn func(tx dao.Storer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(saved)
		return err
	}
	return nil
}

func (s *memStore) GetAsk(ctx context.Context, collectionAddr, tokenID string) (*model.Ask, error) {
	ask, ok := s.asks[askKey(collectionAddr, tokenID)]
	if !ok {
		return nil, errs.ErrAskNotFound
	}
	return &ask, nil
}

func (s *memStore) SaveAsk(ctx context.Context, ask *model.Ask) error {
	s.asks[askKey(ask.CollectionAddr, ask.TokenID)] = *ask
	return nil
}

func (s *memStore) DeleteAsk(ctx context.Context, collectionAddr, tokenID string) error {
	delete(s.asks, askKey(collectionAddr, tokenID))
	return nil
}

func (s *memStore) ListAsksByCollection(ctx context.Context, collectionAddr, startAfterToken string, limit int) ([]model.Ask, error) {
	var tokens []string
	for _, ask := range s.asks {
		if ask.CollectionAddr == collectionAddr && ask.TokenID > startAfterToken {
			tokens = append(tokens, ask.TokenID)
		}
	}
	sort.Strings(tokens)
	limit = dao.NormalizeLimit(limit)
	if len(tokens) > limit {
		tokens = tokens[:limit]
	}
	var out []model.Ask
	for _, token := range tokens {
		out = append(out, s.asks[askKey(collectionAddr, token)])
	}
	return out, nil
}

func (s *memStore) ListAsksBySeller(ctx context.Context, seller, startAfterKey string, limit int) ([]model.Ask, error) {
	var keys []string
	for k, ask := range s.asks {
		if ask.Seller == seller && k > startAfterKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	limit = dao.NormalizeLimit(limit)
	if len(keys) > limit {
		keys = keys[:limit]
	}
	var out []model.Ask
	for _, k := range keys {
		out = append(out, s.asks[k])
	}
	return out, nil
}

func (s *memStore) CountAsks(ctx context.Context, collectionAddr string) (int64, error) {
	var count int64
	for _, ask := range s.asks {
		if ask.CollectionAddr == collectionAddr {
			count++
		}
	}
	return count, nil
}

func (s *memStore) ListedCollections(ctx context.Context, startAfter string, limit int) ([]string, error) {
	seen := make(map[string]bool)
	for _, ask := range s.asks {
		if ask.CollectionAddr > startAfter {
			seen[ask.CollectionAddr] = true
		}
	}
	var addrs []string
	for addr := range seen {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	limit = dao.NormalizeLimit(limit)
	if len(addrs) > limit {
		addrs = addrs[:limit]
	}
	return addrs, nil
}

func (s *memStore) SaveBid(ctx context.Context, bid *model.Bid) error {
	s.bids[askKey(bid.CollectionAddr, bid.TokenID)+"/"+bid.Bidder] = *bid
	return nil
}

func (s *memStore) GetBid(ctx context.Context, collectionAddr, tokenID, bidder string) (*model.Bid, error) {
	bid, ok := s.bids[askKey(collectionAddr, tokenID)+"/"+bidder]
	if !ok {
		return nil, errs.ErrBidNotFound
	}
	return &bid, nil
}

func (s *memStore) ListBidsByItem(ctx context.Context, collectionAddr, tokenID, startAfterBidder string, limit int) ([]model.Bid, error) {
	var bidders []string
	for _, bid := range s.bids {
		if bid.CollectionAddr == collectionAddr && bid.TokenID == tokenID && bid.Bidder > startAfterBidder {
			bidders = append(bidders, bid.Bidder)
		}
	}
	sort.Strings(bidders)
	limit = dao.NormalizeLimit(limit)
	if len(bidders) > limit {
		bidders = bidders[:limit]
	}
	var out []model.Bid
	for _, bidder := range bidders {
		out = append(out, s.bids[askKey(collectionAddr, tokenID)+"/"+bidder])
	}
	return out, nil
}

func (s *memStore) ListBidsByBidder(ctx context.Context, bidder, startAfterKey string, limit int) ([]model.Bid, error) {
	var keys []string
	for k, bid := range s.bids {
		if bid.Bidder == bidder && strings.TrimSuffix(k, "/"+bidder) > startAfterKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	limit = dao.NormalizeLimit(limit)
	if len(keys) > limit {
		keys = keys[:limit]
	}
	var out []model.Bid
	for _, k := range keys {
		out = append(out, s.bids[k])
	}
	return out, nil
}

func (s *memStore) GetCollectionBid(ctx context.Context, collectionAddr, bidder string) (*model.CollectionBid, error) {
	bid, ok := s.cbids[collectionAddr+"/"+bidder]
	if !ok {
		return nil, errs.ErrBidNotFound
	}
	return &bid, nil
}

func (s *memStore) SaveCollectionBid(ctx context.Context, bid *model.CollectionBid) error {
	s.cbids[bid.CollectionAddr+"/"+bid.Bidder] = *bid
	return nil
}

func (s *memStore) DeleteCollectionBid(ctx context.Context, collectionAddr, bidder string) error {
	delete(s.cbids, collectionAddr+"/"+bidder)
	return nil
}

func (s *memStore) GetParams(ctx context.Context) (*model.SudoParams, error) {
	if s.params == nil {
		return nil, dao.ErrParamsNotInit
	}
	p := *s.params
	return &p, nil
}

func (s *memStore) SaveParams(ctx context.Context, params *model.SudoParams) error {
	p := *params
	s.params = &p
	return nil
}

func (s *memStore) ListHooks(ctx context.Context, family string) ([]string, error) {
	out := append([]string(nil), s.hooks[family]...)
	sort.Strings(out)
	return out, nil
}

func (s *memStore) AddHook(ctx context.Context, family, hookAddr string) error {
	for _, addr := range s.hooks[family] {
		if addr == hookAddr {
			return nil
		}
	}
	s.hooks[family] = append(s.hooks[family], hookAddr)
	return nil
}

func (s *memStore) RemoveHook(ctx context.Context, family, hookAddr string) error {
	var kept []string
	for _, addr := range s.hooks[family] {
		if addr != hookAddr {
			kept = append(kept, addr)
		}
	}
	s.hooks[family] = kept
	return nil
}

func (s *memStore) GetCollection(ctx context.Context, collectionAddr string) (*model.Collection, error) {
	collection, ok := s.collections[collectionAddr]
	if !ok {
		return nil, nil
	}
	return &collection, nil
}

func (s *memStore) AddActivity(ctx context.Context, activity *model.Activity) error {
	s.activities = append(s.activities, *activity)
	return nil
}
