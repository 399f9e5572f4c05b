package repository

import (
	"context"
	"database/sql"
	"fmt"

	"draftgen/backend/internal/model"
)

type sqliteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) GenerationStore {
	return &sqliteStore{db: db}
}

// SaveGeneration writes a terminal generation and its citations in one
// transaction. Re-saving an existing id replaces the row and its citations,
// which is what a regenerated or re-polled outcome needs.
func (s *sqliteStore) SaveGeneration(ctx context.Context, gen *model.Generation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertGenQuery := `
		INSERT OR REPLACE INTO generations
			(id, knowledge_base_id, mode, instructions, content, status, confidence, sources_used, error, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insertGenQuery,
		gen.ID,
		gen.KnowledgeBaseID,
		gen.Mode,
		gen.Instructions,
		gen.Content,
		gen.Status,
		gen.Confidence,
		gen.SourcesUsed,
		gen.Error,
		gen.CreatedAt,
		gen.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert generation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM citations WHERE generation_id = ?", gen.ID); err != nil {
		return fmt.Errorf("could not clear citations: %w", err)
	}

	insertCitQuery := `
		INSERT INTO citations
			(generation_id, number, position, document_id, document_name, page_number, section_header, excerpt, char_start, char_end, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, cit := range gen.Citations {
		_, err = tx.ExecContext(ctx, insertCitQuery,
			gen.ID,
			cit.Number,
			i,
			cit.DocumentID,
			cit.DocumentName,
			cit.PageNumber,
			cit.SectionHeader,
			cit.Excerpt,
			cit.CharStart,
			cit.CharEnd,
			cit.Confidence,
		)
		if err != nil {
			return fmt.Errorf("could not insert citation %d: %w", cit.Number, err)
		}
	}

	return tx.Commit()
}

func (s *sqliteStore) GetGeneration(ctx context.Context, generationID string) (*model.Generation, error) {
	query := `
		SELECT id, knowledge_base_id, mode, instructions, content, status, confidence, sources_used, error, created_at, completed_at
		FROM generations WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, generationID)

	var gen model.Generation
	var confidence sql.NullFloat64
	var sourcesUsed sql.NullInt64
	var genErr sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&gen.ID,
		&gen.KnowledgeBaseID,
		&gen.Mode,
		&gen.Instructions,
		&gen.Content,
		&gen.Status,
		&confidence,
		&sourcesUsed,
		&genErr,
		&gen.CreatedAt,
		&completedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if confidence.Valid {
		gen.Confidence = &confidence.Float64
	}
	if sourcesUsed.Valid {
		used := int(sourcesUsed.Int64)
		gen.SourcesUsed = &used
	}
	if genErr.Valid {
		gen.Error = &genErr.String
	}
	if completedAt.Valid {
		gen.CompletedAt = &completedAt.Time
	}

	citations, err := s.getCitations(ctx, generationID)
	if err != nil {
		return nil, fmt.Errorf("could not load citations: %w", err)
	}
	gen.Citations = citations

	return &gen, nil
}

func (s *sqliteStore) getCitations(ctx context.Context, generationID string) ([]model.Citation, error) {
	query := `
		SELECT number, document_id, document_name, page_number, section_header, excerpt, char_start, char_end, confidence
		FROM citations WHERE generation_id = ? ORDER BY position ASC
	`
	rows, err := s.db.QueryContext(ctx, query, generationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var citations []model.Citation
	for rows.Next() {
		var cit model.Citation
		if err := rows.Scan(
			&cit.Number,
			&cit.DocumentID,
			&cit.DocumentName,
			&cit.PageNumber,
			&cit.SectionHeader,
			&cit.Excerpt,
			&cit.CharStart,
			&cit.CharEnd,
			&cit.Confidence,
		); err != nil {
			return nil, err
		}
		citations = append(citations, cit)
	}
	return citations, rows.Err()
}

func (s *sqliteStore) ListGenerations(ctx context.Context, knowledgeBaseID string) ([]*model.Generation, error) {
	query := `
		SELECT id, knowledge_base_id, mode, instructions, content, status, confidence, sources_used, error, created_at, completed_at
		FROM generations WHERE knowledge_base_id = ? ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, knowledgeBaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var generations []*model.Generation
	for rows.Next() {
		var gen model.Generation
		var confidence sql.NullFloat64
		var sourcesUsed sql.NullInt64
		var genErr sql.NullString
		var completedAt sql.NullTime

		if err := rows.Scan(
			&gen.ID,
			&gen.KnowledgeBaseID,
			&gen.Mode,
			&gen.Instructions,
			&gen.Content,
			&gen.Status,
			&confidence,
			&sourcesUsed,
			&genErr,
			&gen.CreatedAt,
			&completedAt,
		); err != nil {
			return nil, err
		}

		if confidence.Valid {
			gen.Confidence = &confidence.Float64
		}
		if sourcesUsed.Valid {
			used := int(sourcesUsed.Int64)
			gen.SourcesUsed = &used
		}
		if genErr.Valid {
			gen.Error = &genErr.String
		}
		if completedAt.Valid {
			gen.CompletedAt = &completedAt.Time
		}
		generations = append(generations, &gen)
	}
	return generations, rows.Err()
}

// DeleteGeneration removes a generation and its citations. The citations are
// deleted explicitly because the sqlite3 driver does not enforce foreign keys
// by default.
func (s *sqliteStore) DeleteGeneration(ctx context.Context, generationID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM citations WHERE generation_id = ?", generationID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM generations WHERE id = ?", generationID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
