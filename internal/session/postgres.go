package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultTable = "session"

// PGStore keeps sessions in a Postgres table shaped like connect-pg-simple's:
// sid primary key, sess json, expire timestamp.
type PGStore struct {
	DB    *pgxpool.Pool
	Table string
}

// NewPGStore returns a store over table, creating the table if it is missing.
func NewPGStore(ctx context.Context, db *pgxpool.Pool, table string) (*PGStore, error) {
	if table == "" {
		table = DefaultTable
	}
	s := &PGStore{DB: db, Table: table}
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PGStore) ensureTable(ctx context.Context) error {
	t := pgx.Identifier{s.Table}.Sanitize()
	idx := pgx.Identifier{"IDX_" + s.Table + "_expire"}.Sanitize()
	_, err := s.DB.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			sid    VARCHAR      NOT NULL PRIMARY KEY,
			sess   JSON         NOT NULL,
			expire TIMESTAMP(6) NOT NULL
		)`, t))
	if err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	if _, err := s.DB.Exec(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (expire)`, idx, t)); err != nil {
		return fmt.Errorf("create session index: %w", err)
	}
	return nil
}

func (s *PGStore) table() string { return pgx.Identifier{s.Table}.Sanitize() }

func (s *PGStore) Create(ctx context.Context, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
		INSERT INTO `+s.table()+` (sid, sess, expire) VALUES ($1, $2, $3)
		ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire`,
		sess.ID, b, sess.Expires.UTC())
	return err
}

func (s *PGStore) Get(ctx context.Context, id string) (Session, bool, error) {
	var (
		raw    []byte
		expire time.Time
	)
	err := s.DB.QueryRow(ctx, `SELECT sess, expire FROM `+s.table()+` WHERE sid=$1 AND expire > $2`,
		id, time.Now().UTC()).Scan(&raw, &expire)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	var out Session
	if err := json.Unmarshal(raw, &out); err != nil {
		return Session{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	out.ID = id
	out.Expires = expire.UTC()
	return out, true, nil
}

func (s *PGStore) Touch(ctx context.Context, id string, expires time.Time) error {
	ct, err := s.DB.Exec(ctx, `
		UPDATE `+s.table()+` SET expire = $2 WHERE sid=$1 AND expire > $3`, id, expires.UTC(), time.Now().UTC())
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Destroy(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM `+s.table()+` WHERE sid=$1`, id)
	return err
}

func (s *PGStore) PruneExpired(ctx context.Context) (int, error) {
	ct, err := s.DB.Exec(ctx, `DELETE FROM `+s.table()+` WHERE expire <= $1`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return int(ct.RowsAffected()), nil
}
