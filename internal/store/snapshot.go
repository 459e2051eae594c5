package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/crawlsearch/internal/domain"
	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/registry"
)

// Flush persists the full current state of the registry, word dictionary,
// index, and link graph in one transaction, so a reader never observes a
// partially-written snapshot. Each table is upserted (INSERT ... ON CONFLICT;
// words, whose rows never change, use DO NOTHING, the rest DO UPDATE) so
// Flush can be called repeatedly as a document is re-crawled.
func Flush(
	ctx context.Context,
	db *sqlx.DB,
	urls *registry.URLRegistry,
	words *registry.WordDictionary,
	index *indexer.Index,
	graph *registry.LinkGraph,
) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("flush: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	if flushErr := flushDocuments(ctx, tx, urls); flushErr != nil {
		return flushErr
	}
	if flushErr := flushWords(ctx, tx, words); flushErr != nil {
		return flushErr
	}
	if flushErr := flushIndex(ctx, tx, index); flushErr != nil {
		return flushErr
	}
	if flushErr := flushGraph(ctx, tx, urls, graph); flushErr != nil {
		return flushErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("flush: commit: %w", commitErr)
	}
	return nil
}

func flushDocuments(ctx context.Context, tx *sqlx.Tx, urls *registry.URLRegistry) error {
	const upsert = `
		INSERT INTO documents (url_id, url, title, last_modified, size, fetched)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url_id) DO UPDATE SET
			title = EXCLUDED.title,
			last_modified = EXCLUDED.last_modified,
			size = EXCLUDED.size,
			fetched = EXCLUDED.fetched`

	for _, doc := range urls.All() {
		if _, err := tx.ExecContext(ctx, upsert, doc.URLID, doc.URL, doc.Title, doc.LastModified, doc.Size, doc.Fetched); err != nil {
			return fmt.Errorf("flush document %s: %w", doc.URLID, err)
		}
	}
	return nil
}

func flushWords(ctx context.Context, tx *sqlx.Tx, words *registry.WordDictionary) error {
	const upsert = `
		INSERT INTO words (word_id, word)
		VALUES ($1, $2)
		ON CONFLICT (word_id) DO NOTHING`

	for _, urlID := range words.AllIDs() {
		w, ok := words.ByID(urlID)
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, upsert, w.WordID, w.Word); err != nil {
			return fmt.Errorf("flush word %s: %w", w.WordID, err)
		}
	}
	return nil
}

func flushIndex(ctx context.Context, tx *sqlx.Tx, index *indexer.Index) error {
	const upsertPostings = `
		INSERT INTO %s (word_id, postings)
		VALUES ($1, $2)
		ON CONFLICT (word_id) DO UPDATE SET postings = EXCLUDED.postings`

	for _, wordID := range index.IndexedWordIDs() {
		bodyValue := indexer.EncodePostings(index.BodyPostings(wordID))
		if bodyValue != "" {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(upsertPostings, "body_index"), wordID, bodyValue); err != nil {
				return fmt.Errorf("flush body postings for %s: %w", wordID, err)
			}
		}

		titleValue := indexer.EncodePostings(index.TitlePostings(wordID))
		if titleValue != "" {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(upsertPostings, "title_index"), wordID, titleValue); err != nil {
				return fmt.Errorf("flush title postings for %s: %w", wordID, err)
			}
		}
	}

	const upsertForward = `
		INSERT INTO forward_index (url_id, words)
		VALUES ($1, $2)
		ON CONFLICT (url_id) DO UPDATE SET words = EXCLUDED.words`

	for _, urlID := range index.IndexedURLIDs() {
		value := indexer.EncodeForward(index.ForwardWords(urlID))
		if _, err := tx.ExecContext(ctx, upsertForward, urlID, value); err != nil {
			return fmt.Errorf("flush forward index for %s: %w", urlID, err)
		}
	}

	return nil
}

func flushGraph(ctx context.Context, tx *sqlx.Tx, urls *registry.URLRegistry, graph *registry.LinkGraph) error {
	const upsertChildren = `
		INSERT INTO children (url_id, children)
		VALUES ($1, $2)
		ON CONFLICT (url_id) DO UPDATE SET children = EXCLUDED.children`
	const upsertParents = `
		INSERT INTO parents (url_id, parents)
		VALUES ($1, $2)
		ON CONFLICT (url_id) DO UPDATE SET parents = EXCLUDED.parents`

	for _, doc := range urls.All() {
		children := indexer.EncodeIDList(graph.Children(doc.URLID))
		if _, err := tx.ExecContext(ctx, upsertChildren, doc.URLID, children); err != nil {
			return fmt.Errorf("flush children for %s: %w", doc.URLID, err)
		}

		parents := indexer.EncodeIDList(graph.Parents(doc.URLID))
		if _, err := tx.ExecContext(ctx, upsertParents, doc.URLID, parents); err != nil {
			return fmt.Errorf("flush parents for %s: %w", doc.URLID, err)
		}
	}
	return nil
}

// Load reconstructs the registry, word dictionary, and index from their
// persisted snapshot, for a retriever that queries without re-crawling.
func Load(ctx context.Context, db *sqlx.DB) (*registry.URLRegistry, *registry.WordDictionary, *indexer.Index, error) {
	urls := registry.NewURLRegistry()
	words := registry.NewWordDictionary()
	index := indexer.New()

	var docs []domain.Document
	if err := db.SelectContext(ctx, &docs, `SELECT url_id, url, title, last_modified, size, fetched FROM documents`); err != nil {
		return nil, nil, nil, fmt.Errorf("load documents: %w", err)
	}
	for i := range docs {
		urls.Restore(&docs[i])
	}

	var ws []domain.Word
	if err := db.SelectContext(ctx, &ws, `SELECT word_id, word FROM words`); err != nil {
		return nil, nil, nil, fmt.Errorf("load words: %w", err)
	}
	for i := range ws {
		words.Restore(&ws[i])
	}

	if err := loadIndex(ctx, db, index); err != nil {
		return nil, nil, nil, err
	}

	return urls, words, index, nil
}

// LoadGraph reconstructs the link graph from its persisted children table
// (parents are its symmetric inverse, so only one side need be read back).
func LoadGraph(ctx context.Context, db *sqlx.DB) (*registry.LinkGraph, error) {
	graph := registry.NewLinkGraph()

	type childrenRow struct {
		URLID    string `db:"url_id"`
		Children string `db:"children"`
	}

	var rows []childrenRow
	if err := db.SelectContext(ctx, &rows, `SELECT url_id, children FROM children`); err != nil {
		return nil, fmt.Errorf("load children: %w", err)
	}

	for _, r := range rows {
		for _, childID := range indexer.DecodeIDList(r.Children) {
			graph.AddEdge(r.URLID, childID)
		}
	}

	return graph, nil
}

func loadIndex(ctx context.Context, db *sqlx.DB, index *indexer.Index) error {
	type row struct {
		ID       string `db:"word_id"`
		Postings string `db:"postings"`
	}
	type forwardRow struct {
		URLID string `db:"url_id"`
		Words string `db:"words"`
	}

	var bodyRows []row
	if err := db.SelectContext(ctx, &bodyRows, `SELECT word_id, postings FROM body_index`); err != nil {
		return fmt.Errorf("load body index: %w", err)
	}
	var titleRows []row
	if err := db.SelectContext(ctx, &titleRows, `SELECT word_id, postings FROM title_index`); err != nil {
		return fmt.Errorf("load title index: %w", err)
	}
	var forwardRows []forwardRow
	if err := db.SelectContext(ctx, &forwardRows, `SELECT url_id, words FROM forward_index`); err != nil {
		return fmt.Errorf("load forward index: %w", err)
	}

	bodyByWord := make(map[string]map[string]*domain.Posting, len(bodyRows))
	for _, r := range bodyRows {
		postings, err := indexer.DecodePostings(r.Postings)
		if err != nil {
			return fmt.Errorf("decode body postings for %s: %w", r.ID, err)
		}
		bodyByWord[r.ID] = postings
	}
	titleByWord := make(map[string]map[string]*domain.Posting, len(titleRows))
	for _, r := range titleRows {
		postings, err := indexer.DecodePostings(r.Postings)
		if err != nil {
			return fmt.Errorf("decode title postings for %s: %w", r.ID, err)
		}
		titleByWord[r.ID] = postings
	}

	for _, fr := range forwardRows {
		wordIDs := indexer.DecodeForward(fr.Words)
		bodyPositions := make(map[string][]int, len(wordIDs))
		titlePositions := make(map[string][]int, len(wordIDs))
		for _, wordID := range wordIDs {
			if p, ok := bodyByWord[wordID][fr.URLID]; ok {
				bodyPositions[wordID] = p.Positions
			}
			if p, ok := titleByWord[wordID][fr.URLID]; ok {
				titlePositions[wordID] = p.Positions
			}
		}
		index.IndexDocument(fr.URLID, bodyPositions, titlePositions)
	}

	return nil
}
