package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// SQLStore implements Store on top of database/sql. It supports the
// pure-Go SQLite driver for local use and MySQL for larger deployments.
type SQLStore struct {
	conn   *sql.DB
	driver string

	stmtInsert    *sql.Stmt
	stmtGet       *sql.Stmt
	stmtGetByCode *sql.Stmt
	stmtUpdate    *sql.Stmt
	stmtDelete    *sql.Stmt
	stmtList      *sql.Stmt
	stmtCount     *sql.Stmt
	stmtAvgRating *sql.Stmt
	mu            sync.RWMutex
}

const movieColumns = "id, code, title, release_date, director, cast_members, genre, budget, duration_min, rating, created_at, updated_at"

// NewSQL opens the movie store. For the sqlite driver, dsn is a file
// path (":memory:" for tests); for mysql it is a standard DSN.
func NewSQL(driver, dsn string) (*SQLStore, error) {
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = filepath.Join(".", "movies.db")
		}
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	case DriverMySQL:
		if dsn == "" {
			return nil, fmt.Errorf("mysql driver requires a DSN")
		}
		// parseTime lets the driver scan TIMESTAMP columns into time.Time.
		if !strings.Contains(dsn, "parseTime") {
			if strings.Contains(dsn, "?") {
				dsn += "&parseTime=true"
			} else {
				dsn += "?parseTime=true"
			}
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite && dsn == ":memory:" {
		// Every pooled connection would otherwise see its own empty
		// in-memory database.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	store := &SQLStore{conn: conn, driver: driver}

	if err := store.createTables(); err != nil {
		conn.Close()
		return nil, err
	}

	if err := store.prepareStatements(); err != nil {
		conn.Close()
		return nil, err
	}

	return store, nil
}

// Close releases the prepared statements and the connection.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{
		s.stmtInsert, s.stmtGet, s.stmtGetByCode, s.stmtUpdate,
		s.stmtDelete, s.stmtList, s.stmtCount, s.stmtAvgRating,
	} {
		if stmt != nil {
			stmt.Close()
		}
	}

	return s.conn.Close()
}

func (s *SQLStore) createTables() error {
	var moviesTable string
	if s.driver == DriverMySQL {
		moviesTable = `
		CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			code VARCHAR(64) NOT NULL UNIQUE,
			title VARCHAR(255) NOT NULL,
			release_date VARCHAR(10) NOT NULL DEFAULT '',
			director VARCHAR(255) NOT NULL DEFAULT '',
			cast_members TEXT,
			genre VARCHAR(64) NOT NULL DEFAULT '',
			budget DOUBLE NOT NULL DEFAULT 0,
			duration_min INT NOT NULL DEFAULT 0,
			rating DOUBLE NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_movies_title (title),
			INDEX idx_movies_director (director)
		)`
	} else {
		moviesTable = `
		CREATE TABLE IF NOT EXISTS movies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			release_date TEXT NOT NULL DEFAULT '',
			director TEXT NOT NULL DEFAULT '',
			cast_members TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT '',
			budget REAL NOT NULL DEFAULT 0,
			duration_min INTEGER NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`
	}

	if _, err := s.conn.Exec(moviesTable); err != nil {
		return fmt.Errorf("failed to create movies table: %w", err)
	}

	if s.driver == DriverSQLite {
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title)`,
			`CREATE INDEX IF NOT EXISTS idx_movies_director ON movies(director)`,
		}
		for _, idx := range indexes {
			if _, err := s.conn.Exec(idx); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
	}

	return nil
}

func (s *SQLStore) prepareStatements() error {
	var err error

	s.stmtInsert, err = s.conn.Prepare(`
		INSERT INTO movies (code, title, release_date, director, cast_members,
		                    genre, budget, duration_min, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	s.stmtGet, err = s.conn.Prepare("SELECT " + movieColumns + " FROM movies WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.stmtGetByCode, err = s.conn.Prepare("SELECT " + movieColumns + " FROM movies WHERE code = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare get-by-code statement: %w", err)
	}

	s.stmtUpdate, err = s.conn.Prepare(`
		UPDATE movies
		SET code = ?, title = ?, release_date = ?, director = ?, cast_members = ?,
		    genre = ?, budget = ?, duration_min = ?, rating = ?, updated_at = ?
		WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}

	s.stmtDelete, err = s.conn.Prepare("DELETE FROM movies WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}

	s.stmtList, err = s.conn.Prepare("SELECT " + movieColumns + " FROM movies ORDER BY id DESC LIMIT ? OFFSET ?")
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.stmtCount, err = s.conn.Prepare("SELECT COUNT(*) FROM movies")
	if err != nil {
		return fmt.Errorf("failed to prepare count statement: %w", err)
	}

	s.stmtAvgRating, err = s.conn.Prepare("SELECT AVG(rating) FROM movies WHERE rating > 0")
	if err != nil {
		return fmt.Errorf("failed to prepare average rating statement: %w", err)
	}

	return nil
}

// Insert stores a new movie. A duplicate catalog code is reported as a
// typed DUPLICATE_CODE error.
func (s *SQLStore) Insert(ctx context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.stmtInsert.ExecContext(ctx,
		m.Code, m.Title, m.ReleaseDate, m.Director, m.Cast,
		m.Genre, m.Budget, m.DurationMin, m.Rating, now, now)
	if err != nil {
		if isDuplicateErr(err) {
			return apperrors.NewDuplicateCodeError(m.Code)
		}
		return apperrors.NewStorageError("failed to insert movie", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.NewStorageError("failed to read inserted id", err)
	}

	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

// Get retrieves a movie by row ID.
func (s *SQLStore) Get(ctx context.Context, id int64) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMovie(s.stmtGet.QueryRowContext(ctx, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no movie with id %d", id))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to get movie", err)
	}
	return m, nil
}

// GetByCode retrieves a movie by its catalog code.
func (s *SQLStore) GetByCode(ctx context.Context, code string) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMovie(s.stmtGetByCode.QueryRowContext(ctx, code))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no movie with code %q", code))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to get movie", err)
	}
	return m, nil
}

// Update rewrites an existing movie. Updating a missing row is
// reported as NOT_FOUND; a code collision as DUPLICATE_CODE.
func (s *SQLStore) Update(ctx context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.stmtUpdate.ExecContext(ctx,
		m.Code, m.Title, m.ReleaseDate, m.Director, m.Cast,
		m.Genre, m.Budget, m.DurationMin, m.Rating, now, m.ID)
	if err != nil {
		if isDuplicateErr(err) {
			return apperrors.NewDuplicateCodeError(m.Code)
		}
		return apperrors.NewStorageError("failed to update movie", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("no movie with id %d", m.ID))
	}

	m.UpdatedAt = now
	return nil
}

// Delete removes a movie by row ID. Deleting a missing row is
// reported as NOT_FOUND.
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return apperrors.NewStorageError("failed to delete movie", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("no movie with id %d", id))
	}

	return nil
}

// List returns movies newest-first.
func (s *SQLStore) List(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.stmtList.QueryContext(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list movies", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

// Search returns movies matching any of the non-empty filter fields
// with a partial, case-insensitive match. An empty filter behaves
// like List without paging limits.
func (s *SQLStore) Search(ctx context.Context, filter models.SearchFilter) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conditions := make([]string, 0, 6)
	params := make([]interface{}, 0, 6)

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, column+" LIKE ?")
		params = append(params, "%"+value+"%")
	}

	addLike("code", filter.Code)
	addLike("title", filter.Title)
	addLike("director", filter.Director)
	addLike("cast_members", filter.Cast)
	addLike("genre", filter.Genre)
	if filter.Year != "" {
		conditions = append(conditions, "release_date LIKE ?")
		params = append(params, filter.Year+"-%")
	}

	query := "SELECT " + movieColumns + " FROM movies"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " OR ")
	}
	query += " ORDER BY id DESC"

	rows, err := s.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to search movies", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

// Statistics returns the total record count and the average rating of
// rated records, rounded to two decimals.
func (s *SQLStore) Statistics(ctx context.Context) (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.Stats
	if err := s.stmtCount.QueryRowContext(ctx).Scan(&stats.TotalMovies); err != nil {
		return nil, apperrors.NewStorageError("failed to count movies", err)
	}

	var avg sql.NullFloat64
	if err := s.stmtAvgRating.QueryRowContext(ctx).Scan(&avg); err != nil {
		return nil, apperrors.NewStorageError("failed to compute average rating", err)
	}
	if avg.Valid {
		stats.AverageRating = math.Round(avg.Float64*100) / 100
	}

	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var m models.Movie
	err := row.Scan(&m.ID, &m.Code, &m.Title, &m.ReleaseDate, &m.Director,
		&m.Cast, &m.Genre, &m.Budget, &m.DurationMin, &m.Rating,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMovies(rows *sql.Rows) ([]models.Movie, error) {
	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan movie", err)
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating movies", err)
	}
	return movies, nil
}

// isDuplicateErr detects unique constraint violations for both
// supported drivers (SQLite "UNIQUE constraint failed", MySQL error
// 1062 "Duplicate entry").
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
