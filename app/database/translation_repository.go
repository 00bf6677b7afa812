package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ TranslationRepository = (*translationRepository)(nil)

type translationRepository struct {
	db *DB
}

func NewTranslationRepository(db *DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) GetTranslation(sourceText, lang string) (string, bool, error) {
	var translated string
	err := r.db.QueryRow(
		"SELECT translated FROM translations WHERE source_text = ? AND lang = ?",
		sourceText, lang).Scan(&translated)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read translation: %w", err)
	}
	return translated, true, nil
}

func (r *translationRepository) SaveTranslation(sourceText, lang, translated string, createdAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO translations (source_text, lang, translated, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (source_text, lang) DO UPDATE SET
			translated = excluded.translated,
			created_at = excluded.created_at`,
		sourceText, lang, translated, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save translation: %w", err)
	}
	return nil
}
