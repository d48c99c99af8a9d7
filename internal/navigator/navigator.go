package navigator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/triz-financeiro/backend/internal/models"
	"github.com/triz-financeiro/backend/internal/types"
)

// Entry is a cached transaction. The ID is negative while the create is
// still pending, server-assigned IDs are always positive.
type Entry struct {
	ID            int64               `json:"id"`
	CorrelationID uuid.UUID           `json:"correlationId"`
	Pending       bool                `json:"pending"`
	Transaction   models.WithCategory `json:"transaction"`
}

// Navigator caches the transactions of the months a client has visited.
type Navigator struct {
	mu sync.Mutex

	client *Client
	store  *Store

	current  types.Month
	months   map[types.Month][]Entry
	inflight map[types.Month]chan struct{}

	// Counter for temporary IDs, decremented on every optimistic insert
	nextTempID int64
}

// New returns a Navigator pointing at the current month. A nil store
// disables persistence.
func New(client *Client, store *Store) *Navigator {
	n := &Navigator{
		client:   client,
		store:    store,
		current:  types.MonthOf(time.Now().UTC()),
		months:   make(map[types.Month][]Entry),
		inflight: make(map[types.Month]chan struct{}),
	}

	if store != nil {
		state, err := store.Load()
		if err != nil {
			log.Warn().Err(err).Msg("navigator: could not load cached months")
		} else {
			n.months = state.Months
			if !state.Current.IsZero() {
				n.current = state.Current
			}
		}
	}

	return n
}

// Current returns the month the navigator points at.
func (n *Navigator) Current() types.Month {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.current
}

// Go moves the navigator to the month and returns its transactions.
func (n *Navigator) Go(ctx context.Context, month types.Month) ([]Entry, error) {
	n.mu.Lock()
	n.current = month
	n.persist()
	n.mu.Unlock()

	return n.Transactions(ctx, month)
}

// Next moves the navigator one month forward.
func (n *Navigator) Next(ctx context.Context) ([]Entry, error) {
	return n.Go(ctx, n.Current().AddDate(0, 1))
}

// Previous moves the navigator one month back.
func (n *Navigator) Previous(ctx context.Context) ([]Entry, error) {
	return n.Go(ctx, n.Current().AddDate(0, -1))
}

// Loading reports whether a fetch for the month is in flight.
func (n *Navigator) Loading(month types.Month) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.inflight[month]
	return ok
}

// Cached reports whether the month is in the cache.
func (n *Navigator) Cached(month types.Month) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.months[month]
	return ok
}

// Transactions returns the transactions for the month, fetching them on a
// cache miss. Concurrent calls for the same month share one fetch.
func (n *Navigator) Transactions(ctx context.Context, month types.Month) ([]Entry, error) {
	for {
		n.mu.Lock()
		if entries, ok := n.months[month]; ok {
			n.mu.Unlock()
			return entries, nil
		}

		if done, ok := n.inflight[month]; ok {
			n.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		done := make(chan struct{})
		n.inflight[month] = done
		n.mu.Unlock()

		transactions, err := n.client.Transactions(ctx, month)

		n.mu.Lock()
		delete(n.inflight, month)
		close(done)
		if err != nil {
			n.mu.Unlock()
			return nil, err
		}

		entries := make([]Entry, 0, len(transactions))
		for _, t := range transactions {
			entries = append(entries, Entry{
				ID:          int64(t.ID),
				Transaction: t,
			})
		}
		n.months[month] = entries
		n.persist()
		n.mu.Unlock()

		return entries, nil
	}
}

// Add inserts the transaction optimistically into the month's cache,
// submits it and replaces the temporary entry with the confirmed record.
// On failure the temporary entry is removed again and the error returned.
func (n *Navigator) Add(ctx context.Context, month types.Month, data TransactionData) (Entry, error) {
	year, monthNumber := month.Year(), month.Month()
	data.ContextYear = &year
	data.ContextMonth = &monthNumber

	n.mu.Lock()
	n.nextTempID--
	temp := Entry{
		ID:            n.nextTempID,
		CorrelationID: uuid.New(),
		Pending:       true,
		Transaction: models.WithCategory{
			Transaction: models.Transaction{
				Type:        data.Type,
				Description: data.Description,
				Amount:      data.Amount,
				CategoryID:  data.CategoryID,
			},
		},
	}
	n.months[month] = append(n.months[month], temp)
	n.mu.Unlock()

	confirmed, err := n.client.CreateTransaction(ctx, data)

	n.mu.Lock()
	defer n.mu.Unlock()

	if err != nil {
		n.removeEntry(temp.ID)
		return Entry{}, err
	}

	entry := Entry{
		ID:            int64(confirmed.ID),
		CorrelationID: temp.CorrelationID,
		Transaction:   confirmed,
	}
	n.replaceEntry(temp.ID, entry)
	n.persist()

	return entry, nil
}

// Update replaces the transaction on the backend and in every cached
// month it appears in. A date-affecting edit can leave the transaction
// cached under a month it no longer belongs to, so all months are swept.
func (n *Navigator) Update(ctx context.Context, id uint64, data TransactionData) (Entry, error) {
	confirmed, err := n.client.UpdateTransaction(ctx, id, data)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:          int64(confirmed.ID),
		Transaction: confirmed,
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.replaceEntry(int64(id), entry)
	n.persist()

	return entry, nil
}

// Delete removes the transaction on the backend and from every cached month.
func (n *Navigator) Delete(ctx context.Context, id uint64) error {
	err := n.client.DeleteTransaction(ctx, id)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.removeEntry(int64(id))
	n.persist()

	return nil
}

// MonthSummary aggregates the cached transactions of one month.
type MonthSummary struct {
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

// Summary computes the income, expense and balance totals for the month
// from the cache, fetching the month first when it is not cached yet.
func (n *Navigator) Summary(ctx context.Context, month types.Month) (MonthSummary, error) {
	entries, err := n.Transactions(ctx, month)
	if err != nil {
		return MonthSummary{}, err
	}

	summary := MonthSummary{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, entry := range entries {
		switch entry.Transaction.Type {
		case models.Income:
			summary.Income = summary.Income.Add(entry.Transaction.Amount)
		case models.Expense:
			summary.Expenses = summary.Expenses.Add(entry.Transaction.Amount)
		}
		summary.TransactionCount++
	}
	summary.Balance = summary.Income.Sub(summary.Expenses)

	return summary, nil
}

// Invalidate drops the month from the cache so the next access fetches
// fresh data.
func (n *Navigator) Invalidate(month types.Month) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.months, month)
	n.persist()
}

// InvalidateAll drops the whole cache.
func (n *Navigator) InvalidateAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.months = make(map[types.Month][]Entry)
	n.persist()
}

// replaceEntry replaces the entry with the ID in every cached month.
// Callers must hold the mutex.
func (n *Navigator) replaceEntry(id int64, entry Entry) {
	for month, entries := range n.months {
		for i := range entries {
			if entries[i].ID == id {
				entries[i] = entry
				n.months[month] = entries
			}
		}
	}
}

// removeEntry removes the entry with the ID from every cached month.
// Callers must hold the mutex.
func (n *Navigator) removeEntry(id int64) {
	for month, entries := range n.months {
		kept := entries[:0]
		for _, entry := range entries {
			if entry.ID != id {
				kept = append(kept, entry)
			}
		}
		n.months[month] = kept
	}
}

// persist writes the cache through the store, skipping pending entries.
// Callers must hold the mutex.
func (n *Navigator) persist() {
	if n.store == nil {
		return
	}

	confirmed := make(map[types.Month][]Entry, len(n.months))
	for month, entries := range n.months {
		kept := make([]Entry, 0, len(entries))
		for _, entry := range entries {
			if !entry.Pending {
				kept = append(kept, entry)
			}
		}
		confirmed[month] = kept
	}

	if err := n.store.Save(State{Current: n.current, Months: confirmed}); err != nil {
		log.Warn().Err(err).Msg("navigator: could not persist cached months")
	}
}
