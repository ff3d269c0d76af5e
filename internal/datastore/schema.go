package datastore

// Schema creates the books table. Authors are stored as a JSON array, price
// in minor currency units, dates as YYYY-MM-DD and timestamps as fixed-width
// UTC text so they sort lexically.
const Schema = `CREATE TABLE IF NOT EXISTS books (
	id TEXT PRIMARY KEY,
	owner TEXT NOT NULL,
	title TEXT NOT NULL,
	authors TEXT NOT NULL DEFAULT '[]',
	cover_image_url TEXT,
	description TEXT,
	page_count INTEGER,
	published_date TEXT,
	main_category TEXT,
	status TEXT NOT NULL DEFAULT 'FOR_PURCHASE',
	purchase_date TEXT,
	price INTEGER,
	start_reading_date TEXT,
	finish_reading_date TEXT,
	reading_progress INTEGER NOT NULL DEFAULT 0,
	personal_notes TEXT,
	google_books_id TEXT,
	average_rating REAL,
	personal_rating REAL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_books_owner_created ON books (owner, created_at DESC);`

const bookColumns = `id, owner, title, authors, cover_image_url, description, page_count,
	published_date, main_category, status, purchase_date, price, start_reading_date,
	finish_reading_date, reading_progress, personal_notes, google_books_id,
	average_rating, personal_rating, created_at, updated_at`

const upsertBook = `INSERT INTO books (` + bookColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	authors = excluded.authors,
	cover_image_url = excluded.cover_image_url,
	description = excluded.description,
	page_count = excluded.page_count,
	published_date = excluded.published_date,
	main_category = excluded.main_category,
	status = excluded.status,
	purchase_date = excluded.purchase_date,
	price = excluded.price,
	start_reading_date = excluded.start_reading_date,
	finish_reading_date = excluded.finish_reading_date,
	reading_progress = excluded.reading_progress,
	personal_notes = excluded.personal_notes,
	google_books_id = excluded.google_books_id,
	average_rating = excluded.average_rating,
	personal_rating = excluded.personal_rating,
	updated_at = excluded.updated_at
WHERE books.owner = excluded.owner`
