// Package authdb is the optional identity adjunct: a thin Postgres-backed
// store for linking a connected client's chosen username to a persistent
// account, when the deployment has auth enabled at all (spec.md's Non-goals
// exclude building account management itself; this just carries the
// original source's users/sessions tables forward in the teacher's stack).
//
// Grounded on udisondev-la2go/internal/db/db.go's pgxpool wrapper idiom, and
// on original_source/server/src/db.rs's users/sessions schema (Discord OAuth
// identity with session expiry), translated from sqlx/SQLite to pgx/Postgres
// per this repo's DOMAIN STACK.
package authdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("authdb: not found")

// User mirrors original_source's users table: a linked Discord identity.
type User struct {
	DiscordID  string
	Username   string
	AvatarHash string
}

// Session mirrors original_source's sessions table: a bearer token with an
// expiry, scoped to one Discord identity.
type Session struct {
	SessionID string
	DiscordID string
	Expires   time.Time
}

// DB wraps a pgx connection pool for the adjunct identity store.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and verifies the schema's two tables exist
// (migrations are expected to have already run; this adjunct does not
// manage its own migrations).
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("authdb: connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("authdb: ping: %w", err)
	}
	return &DB{pool: pool}, nil
}

func (d *DB) Close() {
	d.pool.Close()
}

// Pool exposes the underlying pool for test setup (schema creation) only;
// application code goes through DB's own methods.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

func (d *DB) GetUser(ctx context.Context, discordID string) (*User, error) {
	var u User
	err := d.pool.QueryRow(ctx,
		`SELECT discord_id, username, avatar_hash FROM users WHERE discord_id = $1`,
		discordID,
	).Scan(&u.DiscordID, &u.Username, &u.AvatarHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("authdb: get user %q: %w", discordID, err)
	}
	return &u, nil
}

func (d *DB) GetUserFromSession(ctx context.Context, sessionID string) (*User, error) {
	var u User
	err := d.pool.QueryRow(ctx,
		`SELECT users.discord_id, users.username, users.avatar_hash
		 FROM users
		 JOIN sessions ON sessions.discord_id = users.discord_id
		 WHERE sessions.session_id = $1 AND sessions.expires > now()`,
		sessionID,
	).Scan(&u.DiscordID, &u.Username, &u.AvatarHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("authdb: get user from session: %w", err)
	}
	return &u, nil
}

// UpsertUser inserts a Discord-linked user or refreshes its display fields if
// it already exists.
func (d *DB) UpsertUser(ctx context.Context, u User) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO users (discord_id, username, avatar_hash) VALUES ($1, $2, $3)
		 ON CONFLICT (discord_id) DO UPDATE SET username = $2, avatar_hash = $3`,
		u.DiscordID, u.Username, u.AvatarHash,
	)
	if err != nil {
		return fmt.Errorf("authdb: upsert user %q: %w", u.DiscordID, err)
	}
	return nil
}

// CreateSession issues a new session for an already-linked Discord identity.
func (d *DB) CreateSession(ctx context.Context, sess Session) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO sessions (session_id, discord_id, expires) VALUES ($1, $2, $3)`,
		sess.SessionID, sess.DiscordID, sess.Expires,
	)
	if err != nil {
		return fmt.Errorf("authdb: create session: %w", err)
	}
	return nil
}

// DeleteSession revokes a session, e.g. on explicit logout.
func (d *DB) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("authdb: delete session %q: %w", sessionID, err)
	}
	return nil
}
