// Package ledger defines the external asset-ledger contract the mint
// engine delivers rewards through, plus an in-memory implementation.
package ledger

import (
	"errors"
	"sync"
)

// ErrNoStore indicates a deposit targeted an account without a store
// for the asset kind.
var ErrNoStore = errors.New("account has no store for asset kind")

// Asset is a freshly minted quantity of one asset kind, not yet
// deposited anywhere.
type Asset struct {
	Kind   string
	Amount uint64
}

// AssetLedger holds and transfers balances on behalf of the engine.
// Calls made during a mint must appear atomic with the rest of the
// operation: a failed deposit aborts the whole mint.
type AssetLedger interface {
	Mint(kind string, amount uint64) (Asset, error)
	Deposit(accountID string, asset Asset) error
	StoreExists(accountID, kind string) bool
	CreateStore(accountID, kind string) error
}

// MemoryLedger is an in-process AssetLedger tracking balances per
// account and kind.
type MemoryLedger struct {
	mu       sync.RWMutex
	minted   map[string]uint64            // kind -> total issued
	balances map[string]map[string]uint64 // accountID -> kind -> balance
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		minted:   make(map[string]uint64),
		balances: make(map[string]map[string]uint64),
	}
}

func (l *MemoryLedger) Mint(kind string, amount uint64) (Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.minted[kind] += amount
	return Asset{Kind: kind, Amount: amount}, nil
}

func (l *MemoryLedger) Deposit(accountID string, asset Asset) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	stores, ok := l.balances[accountID]
	if !ok {
		return ErrNoStore
	}
	if _, ok := stores[asset.Kind]; !ok {
		return ErrNoStore
	}
	stores[asset.Kind] += asset.Amount
	return nil
}

func (l *MemoryLedger) StoreExists(accountID, kind string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stores, ok := l.balances[accountID]
	if !ok {
		return false
	}
	_, ok = stores[kind]
	return ok
}

func (l *MemoryLedger) CreateStore(accountID, kind string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[accountID] == nil {
		l.balances[accountID] = make(map[string]uint64)
	}
	if _, ok := l.balances[accountID][kind]; !ok {
		l.balances[accountID][kind] = 0
	}
	return nil
}

// Balance returns the deposited balance for an account and kind.
func (l *MemoryLedger) Balance(accountID, kind string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[accountID][kind]
}

// TotalMinted returns the total quantity ever issued for a kind.
func (l *MemoryLedger) TotalMinted(kind string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.minted[kind]
}
