package service

import (
	"context"
	"errors"
	"log"

	"onbid-goods-api/internal/domain"
	"onbid-goods-api/internal/repository"
	"onbid-goods-api/pkg/apierror"
)

// PurchaseService enforces the at-most-one-purchase-per-round rule and
// records purchase events.
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseService creates a purchase service.
func NewPurchaseService(purchaseRepo repository.PurchaseRepository) *PurchaseService {
	return &PurchaseService{purchaseRepo: purchaseRepo}
}

// CreatePurchase records a COMPLETED purchase for one goods round. The count
// query is only a fast path; the store's unique index on historyNo is what
// decides races between concurrent requests.
func (s *PurchaseService) CreatePurchase(ctx context.Context, historyNo, purchasePrice *int64) (*domain.Purchase, error) {
	if historyNo == nil || purchasePrice == nil {
		return nil, apierror.BadRequest("historyNo and purchasePrice are required")
	}

	count, err := s.purchaseRepo.CountByHistoryNo(ctx, *historyNo)
	if err != nil {
		return nil, apierror.DatabaseError("failed to check existing purchases: " + err.Error())
	}
	if count > 0 {
		return nil, apierror.DuplicatedPurchase("goods already purchased")
	}

	purchase := &domain.Purchase{
		HistoryNo:      *historyNo,
		PurchasePrice:  *purchasePrice,
		PurchaseStatus: domain.PurchaseStatusCompleted,
	}

	if err := s.purchaseRepo.Insert(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apierror.DuplicatedPurchase("goods already purchased")
		}
		return nil, apierror.DatabaseError("failed to record purchase: " + err.Error())
	}

	log.Printf("[PurchaseService] purchase recorded - id: %d, historyNo: %d, price: %d",
		purchase.ID, purchase.HistoryNo, purchase.PurchasePrice)
	return purchase, nil
}

// ListByHistoryNo returns the purchase history of one goods round.
func (s *PurchaseService) ListByHistoryNo(ctx context.Context, historyNo int64) ([]domain.Purchase, error) {
	purchases, err := s.purchaseRepo.FindByHistoryNo(ctx, historyNo)
	if err != nil {
		return nil, apierror.DatabaseError("failed to load purchases: " + err.Error())
	}
	return purchases, nil
}

// ListAll returns every recorded purchase.
func (s *PurchaseService) ListAll(ctx context.Context) ([]domain.Purchase, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return nil, apierror.DatabaseError("failed to load purchases: " + err.Error())
	}
	return purchases, nil
}

// ResetAll wipes the ledger and returns the removed row count.
func (s *PurchaseService) ResetAll(ctx context.Context) (int64, error) {
	log.Println("[PurchaseService] resetting all purchases")
	deleted, err := s.purchaseRepo.DeleteAll(ctx)
	if err != nil {
		return 0, apierror.DatabaseError("failed to reset purchases: " + err.Error())
	}
	return deleted, nil
}
