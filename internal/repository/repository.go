package repository

import (
	"fmt"
	"peer-bidding/internal/biddingerrors"
	model "peer-bidding/internal/models"
	"sort"
	"sync"
)

// BidStore defines the bid record storage owned by one seller process
type BidStore interface {
	Insert(record model.BidRecord) error
	Get(itemID string) (model.BidRecord, error)
	Update(record model.BidRecord) error
	List() []model.BidRecord
}

// MemoryRepo is a concurrency-safe in-memory implementation of BidStore
type MemoryRepo struct {
	mu   sync.RWMutex
	bids map[string]model.BidRecord // key: itemID -> value: record
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		bids: make(map[string]model.BidRecord),
	}
}

// Insert stores a new record; item IDs are unique within the store
func (r *MemoryRepo) Insert(record model.BidRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ItemID == "" {
		return fmt.Errorf("insert bid: %w - empty item ID", biddingerrors.ErrInvalidInput)
	}
	if _, ok := r.bids[record.ItemID]; ok {
		return fmt.Errorf("insert bid for item %s: %w", record.ItemID, biddingerrors.ErrItemAlreadyExists)
	}
	r.bids[record.ItemID] = record
	return nil
}

// Get returns a copy of the record for an item
func (r *MemoryRepo) Get(itemID string) (model.BidRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.bids[itemID]
	if !ok {
		return model.BidRecord{}, fmt.Errorf("get bid for item %s: %w", itemID, biddingerrors.ErrItemNotFound)
	}
	return record, nil
}

// Update replaces an existing record
func (r *MemoryRepo) Update(record model.BidRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bids[record.ItemID]; !ok {
		return fmt.Errorf("update bid for item %s: %w", record.ItemID, biddingerrors.ErrItemNotFound)
	}
	r.bids[record.ItemID] = record
	return nil
}

// List returns all records ordered by item ID
func (r *MemoryRepo) List() []model.BidRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]model.BidRecord, 0, len(r.bids))
	for _, record := range r.bids {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ItemID < records[j].ItemID })
	return records
}
