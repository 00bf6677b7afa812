package database

import "time"

// PageRepository is the fetch cache storage. Read or write failures are
// non-fatal for callers: they degrade to a direct network fetch.
type PageRepository interface {
	GetPage(url string) (*Page, error)
	SavePage(page Page) error
	// PurgePages clears cached pages, making the cache session-scoped.
	PurgePages() error
}

// TranslationRepository stores best-effort translations so repeated runs do
// not re-translate identical fragments.
type TranslationRepository interface {
	GetTranslation(sourceText, lang string) (string, bool, error)
	SaveTranslation(sourceText, lang, translated string, createdAt time.Time) error
}
