package memory

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/mnemoslabs/mnemos/pkg/ai"
	"github.com/mnemoslabs/mnemos/pkg/helpers"
)

// Degraded-mode tags carried on RetrievalResult.
const (
	DegradedSubstring = "substring_recency"
	DegradedStorage   = "storage_unavailable"
)

// substringScanLimit caps how many recent items the fallback ranking scans.
const substringScanLimit = 200

// Store owns all durable memory items and their identity sequence.
// Writes are append-only and transactional per call; an optional embedder
// powers the semantic retrieval path, with a substring-then-recency
// fallback keeping retrieval functional without one.
type Store struct {
	db              *sqlx.DB
	embedder        ai.Embedder
	embeddingsModel string
	logger          *log.Logger
}

type StoreConfig struct {
	DB              *sqlx.DB
	Embedder        ai.Embedder
	EmbeddingsModel string
	Logger          *log.Logger
}

func NewStore(cfg StoreConfig) *Store {
	return &Store{
		db:              cfg.DB,
		embedder:        cfg.Embedder,
		embeddingsModel: cfg.EmbeddingsModel,
		logger:          cfg.Logger,
	}
}

// WritePreferencesPatterns appends one item per element in a single
// transaction and indexes the batch for semantic retrieval when an embedder
// is configured. Indexing is best-effort: the rows are already committed,
// so an embedding failure only costs ranking quality, never data.
func (s *Store) WritePreferencesPatterns(ctx context.Context, preferences, patterns []string) error {
	items := make([]Item, 0, len(preferences)+len(patterns))
	for _, p := range preferences {
		items = append(items, Item{Kind: KindPreference, Content: p})
	}
	for _, p := range patterns {
		items = append(items, Item{Kind: KindPattern, Content: p})
	}
	if len(items) == 0 {
		return nil
	}

	written, err := s.writeItems(ctx, items)
	if err != nil {
		return err
	}

	if s.embedder != nil {
		if err := s.indexItems(ctx, written); err != nil {
			s.logger.Warn("Failed to index items for semantic retrieval", "error", err)
		}
	}
	return nil
}

// WriteFacts appends one fact item per element in a single transaction.
// No-op on empty input.
func (s *Store) WriteFacts(ctx context.Context, facts []string) error {
	items := make([]Item, 0, len(facts))
	for _, f := range facts {
		items = append(items, Item{Kind: KindFact, Content: f})
	}
	if len(items) == 0 {
		return nil
	}

	_, err := s.writeItems(ctx, items)
	return err
}

func (s *Store) writeItems(ctx context.Context, items []Item) ([]Item, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO memory_items (kind, content) VALUES (?, ?)`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = stmt.Close() }()

	for i := range items {
		res, err := stmt.ExecContext(ctx, items[i].Kind, items[i].Content)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		items[i].ID = id
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return items, nil
}

// RetrieveRelevant returns at most k contents ranked by relevance to query.
// A blank query short-circuits to an empty result without touching the
// store. Backend trouble never surfaces as an error; the result is tagged
// with the fallback that produced it instead.
func (s *Store) RetrieveRelevant(ctx context.Context, query string, k int) RetrievalResult {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return RetrievalResult{Items: []string{}}
	}

	if s.embedder != nil {
		items, err := s.semanticSearch(ctx, query, k)
		if err != nil {
			s.logger.Warn("Semantic retrieval failed, falling back to substring ranking", "error", err)
		} else if len(items) > 0 {
			return RetrievalResult{Items: items}
		}
	}

	return s.substringSearch(ctx, query, k)
}

// RetrieveRecentFacts returns the limit most-recently-inserted facts,
// insertion order descending.
func (s *Store) RetrieveRecentFacts(ctx context.Context, limit int) RetrievalResult {
	if limit <= 0 {
		return RetrievalResult{Items: []string{}}
	}

	var contents []string
	err := s.db.SelectContext(ctx, &contents,
		`SELECT content FROM memory_items WHERE kind = ? ORDER BY id DESC LIMIT ?`,
		KindFact, limit)
	if err != nil {
		s.logger.Warn("Failed to retrieve recent facts", "error", err)
		return RetrievalResult{Items: []string{}, Degraded: DegradedStorage}
	}
	if contents == nil {
		contents = []string{}
	}
	return RetrievalResult{Items: contents}
}

// substringSearch ranks recent preference and pattern items: those
// containing the query (case-insensitive) first, then the rest by recency,
// bounded by k.
func (s *Store) substringSearch(ctx context.Context, query string, k int) RetrievalResult {
	var contents []string
	err := s.db.SelectContext(ctx, &contents,
		`SELECT content FROM memory_items WHERE kind IN (?, ?) ORDER BY id DESC LIMIT ?`,
		KindPreference, KindPattern, substringScanLimit)
	if err != nil {
		s.logger.Warn("Failed to scan items for substring ranking", "error", err)
		return RetrievalResult{Items: []string{}, Degraded: DegradedStorage}
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := lo.Filter(contents, func(c string, _ int) bool {
		return strings.Contains(strings.ToLower(c), needle)
	})
	rest := lo.Filter(contents, func(c string, _ int) bool {
		return !strings.Contains(strings.ToLower(c), needle)
	})

	items := helpers.SafeFirstN(append(matches, rest...), k)
	return RetrievalResult{Items: items, Degraded: DegradedSubstring}
}
