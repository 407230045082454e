package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"onbid-goods-api/internal/cache"
	"onbid-goods-api/internal/domain"
	"onbid-goods-api/internal/repository"
	"onbid-goods-api/pkg/apierror"
)

// GoodsService manages the persisted goods snapshot. It is the single write
// path into the goods store: the background syncer and the manual batch
// endpoint both go through SaveGoodsList.
type GoodsService struct {
	goodsRepo repository.GoodsRepository
	listCache *cache.GoodsListCache
}

// NewGoodsService creates a goods service. The cache may be nil.
func NewGoodsService(goodsRepo repository.GoodsRepository, listCache *cache.GoodsListCache) *GoodsService {
	return &GoodsService{
		goodsRepo: goodsRepo,
		listCache: listCache,
	}
}

// ListGoods returns all persisted goods, newest first, serving from the
// Redis cache when possible.
func (s *GoodsService) ListGoods(ctx context.Context) ([]domain.GoodsRecord, error) {
	if records, ok := s.listCache.Get(ctx); ok {
		return records, nil
	}

	records, err := s.goodsRepo.FindAll(ctx)
	if err != nil {
		return nil, apierror.DatabaseError("failed to load goods list: " + err.Error())
	}

	s.listCache.Set(ctx, records)
	return records, nil
}

// GetGoodsByHistoryNo returns one persisted record. An id that was never
// upserted is a GOODS_NOT_FOUND failure, not an empty success.
func (s *GoodsService) GetGoodsByHistoryNo(ctx context.Context, historyNo int64) (*domain.GoodsRecord, error) {
	record, err := s.goodsRepo.FindByHistoryNo(ctx, historyNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.GoodsNotFound(fmt.Sprintf("no goods found for historyNo %d", historyNo))
		}
		return nil, apierror.DatabaseError("failed to load goods: " + err.Error())
	}
	return record, nil
}

// SaveGoodsList upserts a batch of goods and returns how many were written.
// Records without a historyNo are skipped here, as are records whose upsert
// fails; a partial batch still counts as success for the caller.
func (s *GoodsService) SaveGoodsList(ctx context.Context, goods []domain.Goods) (int, error) {
	if len(goods) == 0 {
		log.Println("[GoodsService] empty goods batch, nothing to save")
		return 0, nil
	}

	saved := 0
	for _, item := range goods {
		if item.HistoryNo == nil {
			log.Printf("[GoodsService] skipping goods without historyNo: %q", item.GoodsName)
			continue
		}

		if err := s.goodsRepo.Upsert(ctx, item); err != nil {
			log.Printf("[GoodsService] upsert failed for historyNo %d: %v", *item.HistoryNo, err)
			continue
		}
		saved++
	}

	s.listCache.Invalidate(ctx)
	log.Printf("[GoodsService] goods batch saved: %d of %d", saved, len(goods))
	return saved, nil
}

// DeleteAllGoods wipes the snapshot, purchases included, and returns the
// number of removed goods.
func (s *GoodsService) DeleteAllGoods(ctx context.Context) (int64, error) {
	deleted, err := s.goodsRepo.DeleteAll(ctx)
	if err != nil {
		return 0, apierror.DatabaseError("failed to delete goods: " + err.Error())
	}

	s.listCache.Invalidate(ctx)
	log.Printf("[GoodsService] deleted %d goods", deleted)
	return deleted, nil
}

// CountGoods returns the number of persisted goods.
func (s *GoodsService) CountGoods(ctx context.Context) (int64, error) {
	count, err := s.goodsRepo.Count(ctx)
	if err != nil {
		return 0, apierror.DatabaseError("failed to count goods: " + err.Error())
	}
	return count, nil
}
