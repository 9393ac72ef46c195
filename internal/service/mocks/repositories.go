package mocks

import (
	"context"
	"sync"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/models"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/repository"
)

// MockLinkRepository implements repository.LinkRepository for testing
type MockLinkRepository struct {
	mu       sync.RWMutex
	records  map[string]*models.LinkRecord
	getCalls []string
	getErr   error
}

func NewMockLinkRepository() *MockLinkRepository {
	return &MockLinkRepository{
		records: make(map[string]*models.LinkRecord),
	}
}

func (m *MockLinkRepository) Get(ctx context.Context, key string) (*models.LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getCalls = append(m.getCalls, key)

	if m.getErr != nil {
		return nil, m.getErr
	}

	record, exists := m.records[key]
	if !exists {
		return nil, repository.ErrLinkNotFound
	}
	return record, nil
}

// Put seeds a record under the given primary key
func (m *MockLinkRepository) Put(key string, record *models.LinkRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.PK = key
	m.records[key] = record
}

// FailWith makes every Get return err
func (m *MockLinkRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// GetCalls returns the keys requested so far, in order
func (m *MockLinkRepository) GetCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]string, len(m.getCalls))
	copy(calls, m.getCalls)
	return calls
}

func (m *MockLinkRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]*models.LinkRecord)
	m.getCalls = nil
	m.getErr = nil
}

// offerKey composite identity of an offer row
type offerKey struct {
	table        string
	partitionKey string
	offerID      string
}

// MockCounterRepository implements repository.CounterRepository for testing
type MockCounterRepository struct {
	mu               sync.RWMutex
	linkClicks       map[string]int64
	offerClicks      map[offerKey]int64
	existingOffers   map[offerKey]bool
	linkIncrementErr error
}

func NewMockCounterRepository() *MockCounterRepository {
	return &MockCounterRepository{
		linkClicks:     make(map[string]int64),
		offerClicks:    make(map[offerKey]int64),
		existingOffers: make(map[offerKey]bool),
	}
}

func (m *MockCounterRepository) IncrementLinkClicks(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.linkIncrementErr != nil {
		return m.linkIncrementErr
	}

	m.linkClicks[key]++
	return nil
}

func (m *MockCounterRepository) IncrementOfferClicks(ctx context.Context, table, partitionKey, offerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := offerKey{table: table, partitionKey: partitionKey, offerID: offerID}
	if !m.existingOffers[key] {
		return repository.ErrOfferNotFound
	}

	m.offerClicks[key]++
	return nil
}

// SeedOffer registers an existing offer row eligible for increments
func (m *MockCounterRepository) SeedOffer(table, partitionKey, offerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existingOffers[offerKey{table: table, partitionKey: partitionKey, offerID: offerID}] = true
}

// FailLinkIncrementsWith makes IncrementLinkClicks return err
func (m *MockCounterRepository) FailLinkIncrementsWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linkIncrementErr = err
}

// LinkClicks returns the accumulated counter for key
func (m *MockCounterRepository) LinkClicks(key string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.linkClicks[key]
}

// TotalLinkClicks returns the sum across all link counters
func (m *MockCounterRepository) TotalLinkClicks() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, clicks := range m.linkClicks {
		total += clicks
	}
	return total
}

// OfferClicks returns the accumulated counter for the composite offer key
func (m *MockCounterRepository) OfferClicks(table, partitionKey, offerID string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offerClicks[offerKey{table: table, partitionKey: partitionKey, offerID: offerID}]
}

// TotalOfferClicks returns the sum across all offer counters
func (m *MockCounterRepository) TotalOfferClicks() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, clicks := range m.offerClicks {
		total += clicks
	}
	return total
}

func (m *MockCounterRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linkClicks = make(map[string]int64)
	m.offerClicks = make(map[offerKey]int64)
	m.existingOffers = make(map[offerKey]bool)
	m.linkIncrementErr = nil
}
