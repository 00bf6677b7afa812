package database

import (
	"database/sql"
	"fmt"
)

var _ PageRepository = (*pageRepository)(nil)

type pageRepository struct {
	db *DB
}

func NewPageRepository(db *DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) GetPage(url string) (*Page, error) {
	var page Page
	err := r.db.QueryRow(
		"SELECT url, status, body, fetched_at FROM pages WHERE url = ?", url).
		Scan(&page.URL, &page.Status, &page.Body, &page.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached page: %w", err)
	}
	return &page, nil
}

func (r *pageRepository) SavePage(page Page) error {
	_, err := r.db.Exec(`
		INSERT INTO pages (url, status, body, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			status = excluded.status,
			body = excluded.body,
			fetched_at = excluded.fetched_at`,
		page.URL, page.Status, page.Body, page.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to save cached page: %w", err)
	}
	return nil
}

func (r *pageRepository) PurgePages() error {
	if _, err := r.db.Exec("DELETE FROM pages"); err != nil {
		return fmt.Errorf("failed to purge cached pages: %w", err)
	}
	return nil
}
