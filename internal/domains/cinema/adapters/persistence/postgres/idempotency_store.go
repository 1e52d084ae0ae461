package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists booking idempotency keys in PostgreSQL.
type IdempotencyStore struct {
	db *gorm.DB
}

// NewIdempotencyStore wires a GORM-backed idempotency store.
func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &ports.StorageError{Op: "get", Entity: idempotencyTable, Kind: ports.ErrStorage, Err: err}
	}
	return record.toPort(), nil
}

// Save inserts the record. On a duplicate key the stored record decides between replay and conflict.
// Keys reference their ticket and are removed with it.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	row := idempotencyRecord{Key: record.Key, RequestHash: record.RequestHash, TicketID: record.TicketID}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, &ports.StorageError{Op: "add", Entity: idempotencyTable, Kind: ports.ErrMissingReference, Err: err}
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ports.StorageError{Op: "add", Entity: idempotencyTable, Kind: ports.ErrStorage, Err: err}
		}
		existing, getErr := s.Get(ctx, record.Key)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, &ports.StorageError{Op: "add", Entity: idempotencyTable, Kind: ports.ErrStorage, Err: err}
		}
		if existing.RequestHash != record.RequestHash || existing.TicketID != record.TicketID {
			return existing, ports.ErrIdempotencyConflict
		}
		return existing, nil
	}
	return row.toPort(), nil
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return &ports.StorageError{Op: "connect", Entity: idempotencyTable, Kind: ports.ErrStorage, Err: errors.New("idempotency store not configured")}
	}
	return nil
}

const idempotencyTable = "ticket_idempotency_keys"

type idempotencyRecord struct {
	Key         string        `gorm:"primaryKey;column:key;size:255"`
	RequestHash string        `gorm:"column:request_hash;size:128;not null"`
	TicketID    int64         `gorm:"column:ticket_id;not null;index"`
	CreatedAt   time.Time     `gorm:"column:created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at"`
	Ticket      *ticketRecord `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (idempotencyRecord) TableName() string { return idempotencyTable }

func (r *idempotencyRecord) toPort() *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		TicketID:    r.TicketID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
