package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/services"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	login       TEXT    NOT NULL UNIQUE,
	username    TEXT    NOT NULL DEFAULT '',
	description TEXT    NOT NULL DEFAULT '',
	image       TEXT    NOT NULL,
	created_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sketches (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT    NOT NULL,
	place      TEXT    NOT NULL DEFAULT '',
	image      TEXT    NOT NULL DEFAULT '',
	author_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sketches_author ON sketches(author_id);

CREATE TABLE IF NOT EXISTS follows (
	follower_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	followee_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at  INTEGER NOT NULL,
	PRIMARY KEY (follower_id, followee_id)
);

CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows(followee_id);
`

const sketchColumns = `s.id, s.name, s.place, s.image, s.author_id, s.created_at,
	u.id, u.login, u.username, u.description, u.image, u.created_at`

const userColumns = `u.id, u.login, u.username, u.description, u.image, u.created_at`

// SQLiteStore persists users, sketches and follow edges in SQLite.
// Reads return freshly allocated slices, so callers may treat them as
// immutable snapshots while other requests write concurrently.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Verify interface implementation at compile time
var _ services.Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the database at path.
// An empty path opens a private in-memory database, used by tests and demos.
func Open(path string) (*SQLiteStore, error) {
	var dsn string
	if path == "" {
		dsn = ":memory:"
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if path != "" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	var created int64
	if err := row.Scan(&u.ID, &u.Login, &u.Username, &u.Description, &u.Image, &created); err != nil {
		return model.User{}, err
	}
	u.CreatedAt = time.Unix(created, 0).UTC()
	return u, nil
}

func scanSketch(row rowScanner) (model.Sketch, error) {
	var sk model.Sketch
	var created, authorCreated int64
	err := row.Scan(&sk.ID, &sk.Name, &sk.Place, &sk.Image, &sk.AuthorID, &created,
		&sk.Author.ID, &sk.Author.Login, &sk.Author.Username, &sk.Author.Description, &sk.Author.Image, &authorCreated)
	if err != nil {
		return model.Sketch{}, err
	}
	sk.CreatedAt = time.Unix(created, 0).UTC()
	sk.Author.CreatedAt = time.Unix(authorCreated, 0).UTC()
	return sk, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func querySketches(ctx context.Context, q querier, where string, args ...any) ([]model.Sketch, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+sketchColumns+` FROM sketches s JOIN users u ON u.id = s.author_id `+where+` ORDER BY s.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sketches: %w", err)
	}
	defer rows.Close()

	sketches := make([]model.Sketch, 0)
	for rows.Next() {
		sk, err := scanSketch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sketch: %w", err)
		}
		sketches = append(sketches, sk)
	}
	return sketches, rows.Err()
}

func queryUsers(ctx context.Context, q querier, query string, args ...any) ([]model.User, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func getUser(ctx context.Context, q querier, id int64) (model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, internalErrors.NewUserNotFoundError(id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return u, nil
}

// ListSketches returns every sketch with its author, ordered by creation.
func (s *SQLiteStore) ListSketches(ctx context.Context) ([]model.Sketch, error) {
	return querySketches(ctx, s.db, "")
}

// GetSketch returns a single sketch with its author.
func (s *SQLiteStore) GetSketch(ctx context.Context, id int64) (model.Sketch, error) {
	sketches, err := querySketches(ctx, s.db, "WHERE s.id = ?", id)
	if err != nil {
		return model.Sketch{}, err
	}
	if len(sketches) == 0 {
		return model.Sketch{}, internalErrors.NewSketchNotFoundError(id)
	}
	return sketches[0], nil
}

// RandomSketchID picks the ID of a random existing sketch.
func (s *SQLiteStore) RandomSketchID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM sketches ORDER BY RANDOM() LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("no sketches stored: %w", internalErrors.ErrSketchNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to pick random sketch: %w", err)
	}
	return id, nil
}

// GetUser returns the user with the given ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (model.User, error) {
	return getUser(ctx, s.db, id)
}

// GetUserByLogin returns the user with the given login.
func (s *SQLiteStore) GetUserByLogin(ctx context.Context, login string) (model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.login = ?`, login))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user with login '%s': %w", login, internalErrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load user %q: %w", login, err)
	}
	return u, nil
}

// GetProfile loads a user and its three ordered collections in one read transaction.
func (s *SQLiteStore) GetProfile(ctx context.Context, id int64) (*model.Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	user, err := getUser(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	sketches, err := querySketches(ctx, tx, "WHERE s.author_id = ?", id)
	if err != nil {
		return nil, err
	}

	followers, err := queryUsers(ctx, tx,
		`SELECT `+userColumns+` FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = ? ORDER BY f.created_at, f.rowid`, id)
	if err != nil {
		return nil, err
	}

	follows, err := queryUsers(ctx, tx,
		`SELECT `+userColumns+` FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = ? ORDER BY f.created_at, f.rowid`, id)
	if err != nil {
		return nil, err
	}

	return &model.Profile{
		User:      user,
		Sketches:  sketches,
		Followers: followers,
		Follows:   follows,
	}, nil
}

// CreateUser inserts a new user. Username defaults to the login and image to the default avatar.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if strings.TrimSpace(user.Login) == "" {
		return model.User{}, internalErrors.NewValidationError("login", "login is required")
	}
	if user.Username == "" {
		user.Username = user.Login
	}
	if user.Image == "" {
		user.Image = model.DefaultUserImage
	}
	user.CreatedAt = s.now().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (login, username, description, image, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.Login, user.Username, user.Description, user.Image, user.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, internalErrors.NewValidationError("login", "login is already taken")
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to read user id: %w", err)
	}
	return user, nil
}

// UpdateUser stores the display fields of an existing user.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user model.User) error {
	return updateUser(ctx, s.db, user)
}

func updateUser(ctx context.Context, q execQuerier, user model.User) error {
	res, err := q.ExecContext(ctx,
		`UPDATE users SET username = ?, description = ?, image = ? WHERE id = ?`,
		user.Username, user.Description, user.Image, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return internalErrors.NewUserNotFoundError(user.ID)
	}
	return nil
}

// CreateSketch inserts a sketch and returns it with its author loaded.
func (s *SQLiteStore) CreateSketch(ctx context.Context, sketch model.Sketch) (model.Sketch, error) {
	author, err := getUser(ctx, s.db, sketch.AuthorID)
	if err != nil {
		return model.Sketch{}, err
	}

	sketch.CreatedAt = s.now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sketches (name, place, image, author_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		sketch.Name, sketch.Place, sketch.Image, sketch.AuthorID, sketch.CreatedAt.Unix())
	if err != nil {
		return model.Sketch{}, fmt.Errorf("failed to create sketch: %w", err)
	}

	sketch.ID, err = res.LastInsertId()
	if err != nil {
		return model.Sketch{}, fmt.Errorf("failed to read sketch id: %w", err)
	}
	sketch.Author = author
	return sketch, nil
}

// Follow records that follower follows followee. Following twice is a no-op.
func (s *SQLiteStore) Follow(ctx context.Context, followerID, followeeID int64) error {
	return s.follow(ctx, s.db, followerID, followeeID)
}

func (s *SQLiteStore) follow(ctx context.Context, q execQuerier, followerID, followeeID int64) error {
	if followerID == followeeID {
		return internalErrors.NewValidationError("followers", "users cannot follow themselves")
	}
	for _, id := range []int64{followerID, followeeID} {
		if _, err := getUser(ctx, q, id); err != nil {
			return err
		}
	}

	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`,
		followerID, followeeID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to follow user %d: %w", followeeID, err)
	}
	return nil
}

// Unfollow removes a follow edge. Removing a missing edge is a no-op.
func (s *SQLiteStore) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return unfollow(ctx, s.db, followerID, followeeID)
}

func unfollow(ctx context.Context, q execQuerier, followerID, followeeID int64) error {
	_, err := q.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user %d: %w", followeeID, err)
	}
	return nil
}

// ApplyProfileChanges writes a user edit and a follow change in one transaction.
func (s *SQLiteStore) ApplyProfileChanges(ctx context.Context, changes model.ProfileChanges) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin profile update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if changes.User != nil {
		if err := updateUser(ctx, tx, *changes.User); err != nil {
			return err
		}
	}

	if f := changes.Follow; f != nil {
		if f.Follow {
			err = s.follow(ctx, tx, f.FollowerID, f.FolloweeID)
		} else {
			err = unfollow(ctx, tx, f.FollowerID, f.FolloweeID)
		}
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
