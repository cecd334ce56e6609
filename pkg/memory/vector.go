package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/mnemoslabs/mnemos/pkg/helpers"
)

// embeddingBatchSize bounds how many documents go into one embedding call.
const embeddingBatchSize = 10

type vectorRow struct {
	Document  string `db:"document"`
	Embedding string `db:"embedding"`
}

// indexItems embeds the items and stores their vectors alongside the
// document text, one transaction per batch.
func (s *Store) indexItems(ctx context.Context, items []Item) error {
	for _, batch := range helpers.Batch(items, embeddingBatchSize) {
		contents := make([]string, len(batch))
		for i := range batch {
			contents[i] = batch[i].Content
		}

		embeddings, err := s.embedder.Embeddings(ctx, contents, s.embeddingsModel)
		if err != nil {
			return err
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("len(batch) = %d but len(embeddings) = %d", len(batch), len(embeddings))
		}

		if err := s.storeVectors(ctx, batch, embeddings); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) storeVectors(ctx context.Context, items []Item, embeddings [][]float64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO memory_vectors (id, item_id, document, embedding) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i := range items {
		vecJSON, err := json.Marshal(embeddings[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), items[i].ID, items[i].Content, string(vecJSON)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// semanticSearch embeds the query and ranks the indexed documents by cosine
// similarity, in process. The index stays small enough (one row per
// preference/pattern item) that a full scan is fine.
func (s *Store) semanticSearch(ctx context.Context, query string, k int) ([]string, error) {
	vec, err := s.embedder.Embedding(ctx, query, s.embeddingsModel)
	if err != nil {
		return nil, err
	}

	var rows []vectorRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT document, embedding FROM memory_vectors ORDER BY item_id DESC`); err != nil {
		return nil, err
	}

	type scored struct {
		document string
		score    float64
	}
	ranked := make([]scored, 0, len(rows))
	for _, row := range rows {
		var embedding []float64
		if err := json.Unmarshal([]byte(row.Embedding), &embedding); err != nil {
			continue
		}
		ranked = append(ranked, scored{
			document: row.Document,
			score:    cosineSimilarity(vec, embedding),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	items := make([]string, 0, k)
	for _, r := range helpers.SafeFirstN(ranked, k) {
		items = append(items, r.document)
	}
	return items, nil
}

func cosineSimilarity(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
