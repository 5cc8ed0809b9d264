package finance

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/store"
)

// Transaction types. Amounts are always positive; the sign is implied by the
// type and never stored negative.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is one ledger entry.
type Transaction struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Type        string    `bson:"type" json:"type"`
	Category    string    `bson:"category" json:"category"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	InvoiceURL  string    `bson:"invoiceUrl,omitempty" json:"invoiceUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Repository persists ledger entries.
type Repository struct {
	docs store.Documents
	log  *logrus.Logger
}

// NewRepository creates a repo.
func NewRepository(docs store.Documents, log *logrus.Logger) *Repository {
	return &Repository{docs: docs, log: log}
}

// List returns transactions newest first. Read failures log and return an
// empty slice.
func (r *Repository) List(ctx context.Context) []Transaction {
	var out []Transaction
	if err := r.docs.FindAll(ctx, store.Transactions, "createdAt", &out); err != nil {
		r.log.WithError(err).Error("list transactions failed")
		return []Transaction{}
	}
	return out
}

// GetByID returns a transaction, or nil when missing or unreachable.
func (r *Repository) GetByID(ctx context.Context, id string) *Transaction {
	var tx Transaction
	if err := r.docs.FindByID(ctx, store.Transactions, id, &tx); err != nil {
		if !store.IsNotFound(err) {
			r.log.WithError(err).WithField("id", id).Error("get transaction failed")
		}
		return nil
	}
	return &tx
}

// Create inserts a new ledger entry after validating type and amount.
func (r *Repository) Create(ctx context.Context, tx Transaction) (string, error) {
	if tx.Type != TypeIncome && tx.Type != TypeExpense {
		return "", errors.New("transaction type must be income or expense")
	}
	if tx.Amount <= 0 {
		return "", errors.New("transaction amount must be positive")
	}
	if tx.Category == "" {
		return "", errors.New("transaction category required")
	}
	now := time.Now().UTC()
	if tx.Date.IsZero() {
		tx.Date = now
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
	return r.docs.Insert(ctx, store.Transactions, tx)
}

// Update applies a partial field update, stamping updatedAt.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	if amt, ok := fields["amount"].(float64); ok && amt <= 0 {
		return errors.New("transaction amount must be positive")
	}
	fields["updatedAt"] = time.Now().UTC()
	return r.docs.Update(ctx, store.Transactions, id, fields)
}

// Delete removes a ledger entry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, store.Transactions, id)
}
