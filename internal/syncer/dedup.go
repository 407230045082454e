package syncer

import "onbid-goods-api/internal/domain"

// SelectFreshest reduces a fetched batch to at most limit records, one per
// item: records are grouped by goodsNo (falling back to the historyNo string
// when goodsNo is blank) and within a group only the entry with the greatest
// historyNo survives, a missing historyNo counting as 0. Group order is
// first-seen, so the result is deterministic regardless of how the source
// shuffles rounds of the same item.
func SelectFreshest(items []domain.Goods, limit int) []domain.Goods {
	if len(items) == 0 {
		return []domain.Goods{}
	}

	result := make([]domain.Goods, 0, len(items))
	indexByKey := make(map[string]int, len(items))

	for _, item := range items {
		key := item.GroupKey()
		if at, seen := indexByKey[key]; seen {
			if item.HistoryNoOrZero() > result[at].HistoryNoOrZero() {
				result[at] = item
			}
			continue
		}
		indexByKey[key] = len(result)
		result = append(result, item)
	}

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
