// Package index provides the per-video retrieval index backed by SQLite.
package index

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/aydinemre/tubesum/internal/core/transcript"
)

// Embedder produces vector embeddings for a batch of texts, one vector per
// input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store holds embedded transcript chunks, one collection per video.
type Store struct {
	db       *sql.DB
	embedder Embedder
}

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	collection TEXT    NOT NULL,
	position   INTEGER NOT NULL,
	text       TEXT    NOT NULL,
	start_sec  REAL    NOT NULL,
	dur_sec    REAL    NOT NULL,
	embedding  BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks (collection);
`

// Open opens (or creates) the index database at path.
func Open(path string, embedder Embedder) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}

	return &Store{db: db, embedder: embedder}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Rebuild replaces the named collection with the given chunks. Deleting a
// collection that does not exist is not an error, so Rebuild is idempotent.
// The store holds at most one video's chunks per collection name at a time.
func (s *Store) Rebuild(ctx context.Context, collection string, chunks []transcript.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = s.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(vectors) != len(chunks) {
			return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	for i, c := range chunks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO chunks (collection, position, text, start_sec, dur_sec, embedding) VALUES (?, ?, ?, ?, ?, ?)`,
			collection, i, c.Text, c.Start, c.Duration, encodeVector(vectors[i]))
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Query returns the k chunks nearest to the question's embedding, most
// relevant first.
func (s *Store) Query(ctx context.Context, collection, question string, k int) ([]transcript.Chunk, error) {
	if k <= 0 {
		return nil, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one question", len(vectors))
	}
	query := vectors[0]

	rows, err := s.db.QueryContext(ctx,
		`SELECT text, start_sec, dur_sec, embedding FROM chunks WHERE collection = ? ORDER BY position`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	defer rows.Close()

	type scored struct {
		chunk transcript.Chunk
		score float32
	}

	var candidates []scored
	for rows.Next() {
		var c transcript.Chunk
		var blob []byte
		if err := rows.Scan(&c.Text, &c.Start, &c.Duration, &blob); err != nil {
			return nil, err
		}
		score, err := cosineSimilarity(query, decodeVector(blob))
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, scored{chunk: c, score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]transcript.Chunk, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].chunk
	}
	return out, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
func cosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// Embeddings are stored as little-endian float32 blobs.

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v
}
