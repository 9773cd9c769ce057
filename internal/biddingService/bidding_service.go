package bidding

import (
	"fmt"
	"math"
	"peer-bidding/internal/biddingerrors"
	"peer-bidding/internal/models"
	"peer-bidding/internal/repository"
	"strings"

	"github.com/shopspring/decimal"
)

// BiddingService validates and applies bid state transitions on one BidStore
// Each mutation is a read then a write on the store, so one goroutine must own the service.
type BiddingService struct {
	repo repository.BidStore
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.BidStore) *BiddingService {
	return &BiddingService{
		repo: repo,
	}
}

// CreateBid opens a new auction for itemID owned by owner
func (s *BiddingService) CreateBid(owner, itemID, price string) (string, error) {
	amount, err := ParsePrice(price)
	if err != nil {
		return "", err
	}
	if owner == "" || itemID == "" {
		return "", fmt.Errorf("service: %w - missing owner or itemID", biddingerrors.ErrInvalidInput)
	}

	record := models.BidRecord{
		ItemID:        itemID,
		OriginalOwner: owner,
		Price:         amount,
		Status:        models.StatusOpen,
	}
	if err := s.repo.Insert(record); err != nil {
		return "", fmt.Errorf("service: failed to create bid for item %s: %w", itemID, err)
	}

	return fmt.Sprintf("User %s is selling item: %s with price %s!", owner, itemID, amount.String()), nil
}

// PlacePrice records buyer as the highest bidder when price beats the current one
func (s *BiddingService) PlacePrice(buyer, itemID, price string) (string, error) {
	amount, err := ParsePrice(price)
	if err != nil {
		return "", err
	}

	record, err := s.openRecord(itemID)
	if err != nil {
		return "", err
	}
	if buyer == "" {
		return "", fmt.Errorf("service: %w - missing buyer", biddingerrors.ErrInvalidInput)
	}
	if record.OriginalOwner == buyer {
		return "", fmt.Errorf("service: %w - item %s", biddingerrors.ErrSelfBidNotAllowed, itemID)
	}
	if amount.LessThanOrEqual(record.Price) {
		return "", fmt.Errorf("service: %w - current price for item %s is %s", biddingerrors.ErrPriceTooLow, itemID, record.Price.String())
	}

	record.Price = amount
	record.PotentialOwner = buyer
	if err := s.repo.Update(record); err != nil {
		return "", fmt.Errorf("service: failed to place price for item %s by user %s: %w", itemID, buyer, err)
	}

	return fmt.Sprintf("User %s has placed price %s on item: %s!", buyer, amount.String(), itemID), nil
}

// CloseBid ends the auction for itemID; only the original owner may close it
func (s *BiddingService) CloseBid(closer, itemID string) (string, error) {
	record, err := s.openRecord(itemID)
	if err != nil {
		return "", err
	}
	if record.OriginalOwner != closer {
		return "", fmt.Errorf("service: %w - item %s", biddingerrors.ErrNotOwner, itemID)
	}

	record.Status = models.StatusClosed
	if err := s.repo.Update(record); err != nil {
		return "", fmt.Errorf("service: failed to close bid for item %s: %w", itemID, err)
	}

	winner := "Nobody"
	if record.HasWinner() {
		winner = "User " + record.PotentialOwner
	}
	return fmt.Sprintf("The original owner %s of item: %s has closed the bid, %s has won the item!", record.OriginalOwner, itemID, winner), nil
}

// GetBid returns the record for a specific item
func (s *BiddingService) GetBid(itemID string) (models.BidRecord, error) {
	if itemID == "" {
		return models.BidRecord{}, fmt.Errorf("service: %w - empty item ID", biddingerrors.ErrInvalidInput)
	}

	record, err := s.repo.Get(itemID)
	if err != nil {
		return models.BidRecord{}, fmt.Errorf("service: failed to get bid for item %s: %w", itemID, err)
	}
	return record, nil
}

// ListBids returns every record held by this store
func (s *BiddingService) ListBids() []models.BidRecord {
	return s.repo.List()
}

// openRecord looks up itemID and rejects closed auctions
func (s *BiddingService) openRecord(itemID string) (models.BidRecord, error) {
	record, err := s.repo.Get(itemID)
	if err != nil {
		return models.BidRecord{}, fmt.Errorf("service: %w", err)
	}
	if record.IsClosed() {
		return models.BidRecord{}, fmt.Errorf("service: %w - item %s", biddingerrors.ErrBidClosed, itemID)
	}
	return record, nil
}

// Decimal exponents of the largest and smallest positive float64 values
const (
	maxPriceMagnitude = 308
	minPriceMagnitude = -324
)

// ParsePrice coerces raw input into a strictly positive decimal that is finite as a float64.
// The magnitude is bounded before any comparison so huge exponents are never expanded.
func ParsePrice(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("service: %w - %q is not a number", biddingerrors.ErrInvalidPrice, raw)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("service: %w - price must be greater than 0", biddingerrors.ErrInvalidPrice)
	}

	// value lies in [10^magnitude, 10^(magnitude+1))
	digits := len(amount.Coefficient().String())
	magnitude := int64(digits) + int64(amount.Exponent()) - 1
	if magnitude > maxPriceMagnitude || magnitude < minPriceMagnitude {
		return decimal.Decimal{}, fmt.Errorf("service: %w - %q is out of range", biddingerrors.ErrInvalidPrice, raw)
	}
	if f := amount.InexactFloat64(); math.IsInf(f, 0) || f == 0 {
		return decimal.Decimal{}, fmt.Errorf("service: %w - %q is out of range", biddingerrors.ErrInvalidPrice, raw)
	}
	return amount, nil
}
