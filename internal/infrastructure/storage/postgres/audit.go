package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/zstd"

	appcontext "packquote/internal/core/context"
	"packquote/internal/core/id"
)

// AuditLog records lifecycle events with zstd-compressed JSON payloads.
// Writes join the ambient transaction when one is active, so an audit
// entry never survives a rolled-back business write.
type AuditLog struct {
	pool    *pgxpool.Pool
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewAuditLog creates the audit trail writer.
func NewAuditLog(pool *pgxpool.Pool) (*AuditLog, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("audit: zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("audit: zstd decoder: %w", err)
	}
	return &AuditLog{pool: pool, encoder: encoder, decoder: decoder}, nil
}

// Record stores one audit entry. payload may be nil.
func (a *AuditLog) Record(ctx context.Context, action, entityType, entityID string, payload any) error {
	var compressed []byte
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("audit: marshal payload: %w", err)
		}
		compressed = a.encoder.EncodeAll(raw, nil)
	}

	q := QuerierFrom(ctx, a.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO sys_audit_log (id, action, entity_type, entity_id, user_id, payload_zstd, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id.New(), action, entityType, entityID,
		appcontext.UserID(ctx), compressed, time.Now())
	if err != nil {
		return MapError(err, "audit_log")
	}
	return nil
}

// DecodePayload decompresses a stored payload back into JSON bytes.
func (a *AuditLog) DecodePayload(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, nil
	}
	return a.decoder.DecodeAll(compressed, nil)
}
