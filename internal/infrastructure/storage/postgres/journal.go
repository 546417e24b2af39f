package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/klauspost/compress/zstd"

	"movistock/internal/core/id"
)

// CompressionAlgo specifies the compression algorithm used for a
// journal snapshot.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

const journalTable = "movement_journal"

// defaultCompressThreshold is the snapshot size above which zstd
// compression kicks in (10KB).
const defaultCompressThreshold = 10 * 1024

// JournalEntry records one submitted movement with the full form
// snapshot at submission time.
type JournalEntry struct {
	ID                 id.ID           `db:"id"`
	MovementID         id.ID           `db:"movement_id"`
	MovementType       string          `db:"movement_type"`
	Snapshot           json.RawMessage `db:"snapshot"`
	SnapshotCompressed []byte          `db:"snapshot_compressed"`
	CompressionAlgo    CompressionAlgo `db:"compression_algo"`
	CreatedAt          time.Time       `db:"created_at"`
}

// Journal appends submission records alongside the movement rows.
// Large snapshots are stored zstd-compressed.
type Journal struct {
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewJournal creates a journal with default compression settings.
func NewJournal() (*Journal, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Journal{
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: defaultCompressThreshold,
	}, nil
}

// Append writes a journal entry within the caller's transaction.
func (j *Journal) Append(ctx context.Context, tx pgx.Tx, movementID id.ID, movementType string, snapshot any) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	entry := JournalEntry{
		ID:              id.New(),
		MovementID:      movementID,
		MovementType:    movementType,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if len(raw) > j.compressThreshold {
		entry.SnapshotCompressed = j.encoder.EncodeAll(raw, nil)
		entry.CompressionAlgo = CompressionZstd
	} else {
		entry.Snapshot = raw
	}

	sql, args, err := qb.Insert(journalTable).
		Columns("id", "movement_id", "movement_type", "snapshot", "snapshot_compressed", "compression_algo", "created_at").
		Values(entry.ID, entry.MovementID, entry.MovementType, entry.Snapshot, entry.SnapshotCompressed, entry.CompressionAlgo, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build journal insert: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// DecodeSnapshot returns the entry's snapshot JSON, decompressing when
// necessary.
func (j *Journal) DecodeSnapshot(entry JournalEntry) (json.RawMessage, error) {
	switch entry.CompressionAlgo {
	case CompressionZstd:
		raw, err := j.decoder.DecodeAll(entry.SnapshotCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress snapshot: %w", err)
		}
		return raw, nil
	default:
		return entry.Snapshot, nil
	}
}

// qb builds queries with PostgreSQL placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
