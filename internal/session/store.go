// Package session holds the authenticated identity and bearer credential for
// the lifetime of the application, and makes the pair durable across runs.
//
// The store has two states: anonymous and authenticated. Login/signup (or a
// successful restore at open time) move it to authenticated; only logout (or
// a credential rejection) moves it back. Credential and identity are always
// written and cleared together — never one without the other.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/model"
)

const (
	keyToken    = "token"
	keyIdentity = "identity"
)

type Store struct {
	dir    string
	client *api.Client

	token    string
	identity *model.Identity
}

// Open prepares the durable store under dir and restores a persisted
// credential/identity pair if one exists. Restore does no network round-trip:
// a stale token is only discovered on the first authenticated call.
func Open(dir string, client *api.Client) (*Store, error) {
	if client == nil {
		return nil, errors.New("nil api client")
	}
	s := &Store{dir: filepath.Clean(dir), client: client}
	if err := s.restore(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Authenticated() bool { return s.token != "" && s.identity != nil }

func (s *Store) Token() string { return s.token }

func (s *Store) Identity() (model.Identity, bool) {
	if s.identity == nil {
		return model.Identity{}, false
	}
	return *s.identity, true
}

// Login authenticates against the backend. On failure the in-memory and
// durable state are left untouched and the server's message comes back as
// the error.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, id, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(ctx, token, id)
}

// Signup registers and authenticates in one step. Same contract as Login.
func (s *Store) Signup(ctx context.Context, name, email, password string, role model.Role) error {
	token, id, err := s.client.Signup(ctx, name, email, password, role)
	if err != nil {
		return err
	}
	return s.adopt(ctx, token, id)
}

// Logout clears the in-memory pair unconditionally and removes the durable
// pair. No network call. The in-memory clear happens even if the durable
// delete fails, so a returned error never leaves the session half-open.
func (s *Store) Logout(ctx context.Context) error {
	s.token = ""
	s.identity = nil

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM session_meta WHERE k IN (?, ?)`, keyToken, keyIdentity)
	return err
}

func (s *Store) adopt(ctx context.Context, token string, id model.Identity) error {
	if err := s.persist(ctx, token, id); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.token = token
	idCopy := id
	s.identity = &idCopy
	return nil
}

func (s *Store) persist(ctx context.Context, token string, id model.Identity) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}

	// Both rows in one transaction: the pair is atomic by contract.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, kv := range []struct{ k, v string }{
		{keyToken, token},
		{keyIdentity, string(raw)},
	} {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO session_meta(k, v) VALUES(?, ?)`, kv.k, kv.v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) restore(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	token, okT, err := readMeta(ctx, db, keyToken)
	if err != nil {
		return err
	}
	rawID, okI, err := readMeta(ctx, db, keyIdentity)
	if err != nil {
		return err
	}
	if !okT || !okI || token == "" {
		// A lone half of the pair is treated as no session at all.
		return nil
	}

	var id model.Identity
	if err := json.Unmarshal([]byte(rawID), &id); err != nil {
		// Unreadable identity: drop the pair rather than run half-restored.
		_, _ = db.ExecContext(ctx, `DELETE FROM session_meta WHERE k IN (?, ?)`, keyToken, keyIdentity)
		return nil
	}

	s.token = token
	s.identity = &id
	return nil
}

func readMeta(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM session_meta WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(s.dir, "taskdeck.sqlite"))
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session_meta (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
