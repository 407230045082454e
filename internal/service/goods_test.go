package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onbid-goods-api/internal/domain"
	"onbid-goods-api/internal/repository"
)

// memGoodsRepo is an in-memory GoodsRepository keyed by historyNo, with the
// same insert-or-overwrite semantics as the MySQL upserts.
type memGoodsRepo struct {
	records    map[int64]domain.GoodsRecord
	upsertErrs map[int64]error
	findErr    error
}

func newMemGoodsRepo() *memGoodsRepo {
	return &memGoodsRepo{records: map[int64]domain.GoodsRecord{}}
}

func (r *memGoodsRepo) Upsert(_ context.Context, goods domain.Goods) error {
	historyNo := *goods.HistoryNo
	if err := r.upsertErrs[historyNo]; err != nil {
		return err
	}
	r.records[historyNo] = domain.GoodsRecord{
		ID:             historyNo,
		HistoryNo:      historyNo,
		GoodsName:      goods.GoodsName,
		StatusName:     goods.StatusName,
		MinBidPrice:    goods.MinBidPrice,
		AppraisalPrice: goods.AppraisalPrice,
	}
	return nil
}

func (r *memGoodsRepo) FindAll(_ context.Context) ([]domain.GoodsRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := []domain.GoodsRecord{}
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *memGoodsRepo) FindByHistoryNo(_ context.Context, historyNo int64) (*domain.GoodsRecord, error) {
	rec, ok := r.records[historyNo]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *memGoodsRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.records))
	r.records = map[int64]domain.GoodsRecord{}
	return n, nil
}

func (r *memGoodsRepo) Count(context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

func goodsWith(historyNo int64, name string) domain.Goods {
	return domain.Goods{HistoryNo: &historyNo, GoodsName: name}
}

func TestSaveGoodsList_skipsRecordsWithoutHistoryNo(t *testing.T) {
	repo := newMemGoodsRepo()
	svc := NewGoodsService(repo, nil)

	saved, err := svc.SaveGoodsList(context.Background(), []domain.Goods{
		goodsWith(1, "토지 임야"),
		{GoodsName: "no round id"},
		goodsWith(2, "승용차"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Len(t, repo.records, 2)
}

func TestSaveGoodsList_partialFailureStillSucceeds(t *testing.T) {
	repo := newMemGoodsRepo()
	repo.upsertErrs = map[int64]error{2: errors.New("deadlock")}
	svc := NewGoodsService(repo, nil)

	saved, err := svc.SaveGoodsList(context.Background(), []domain.Goods{
		goodsWith(1, "a"),
		goodsWith(2, "b"),
		goodsWith(3, "c"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
}

func TestSaveGoodsList_overwritesByHistoryNo(t *testing.T) {
	repo := newMemGoodsRepo()
	svc := NewGoodsService(repo, nil)

	_, err := svc.SaveGoodsList(context.Background(), []domain.Goods{goodsWith(1, "before")})
	require.NoError(t, err)
	_, err = svc.SaveGoodsList(context.Background(), []domain.Goods{goodsWith(1, "after")})
	require.NoError(t, err)

	rec, err := svc.GetGoodsByHistoryNo(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "after", rec.GoodsName)
}

func TestSaveGoodsList_emptyBatch(t *testing.T) {
	svc := NewGoodsService(newMemGoodsRepo(), nil)

	saved, err := svc.SaveGoodsList(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, saved)
}

func TestGetGoodsByHistoryNo_notFound(t *testing.T) {
	svc := NewGoodsService(newMemGoodsRepo(), nil)

	_, err := svc.GetGoodsByHistoryNo(context.Background(), 999)
	assertCode(t, err, "GOODS_NOT_FOUND")
}

func TestListGoods_storeFailure(t *testing.T) {
	repo := newMemGoodsRepo()
	repo.findErr = errors.New("connection lost")
	svc := NewGoodsService(repo, nil)

	_, err := svc.ListGoods(context.Background())
	assertCode(t, err, "DATABASE_ERROR")
}

func TestDeleteAllGoods(t *testing.T) {
	repo := newMemGoodsRepo()
	svc := NewGoodsService(repo, nil)

	_, err := svc.SaveGoodsList(context.Background(), []domain.Goods{
		goodsWith(1, "a"),
		goodsWith(2, "b"),
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteAllGoods(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := svc.CountGoods(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
