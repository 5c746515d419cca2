package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsersRepo stores each user as a JSONB document keyed by a UUID.
type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_documents (
			id  UUID PRIMARY KEY,
			doc JSONB NOT NULL
		)`)

	return err
}

func (r *UsersRepo) Insert(ctx context.Context, doc user.Document) (user.User, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return user.User{}, err
	}

	id := uuid.NewString()

	_, err = r.pool.Exec(ctx,
		`INSERT INTO user_documents(id, doc) VALUES($1, $2::jsonb)`,
		id, string(body),
	)
	if err != nil {
		return user.User{}, err
	}

	return user.User{
		ID:       id,
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
	}, nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrInvalidID
	}

	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT id::text,
		        COALESCE(doc->>'name', ''),
		        COALESCE(doc->>'email', ''),
		        COALESCE(doc->>'password', '')
		   FROM user_documents
		  WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) FindAll(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text,
		        COALESCE(doc->>'name', ''),
		        COALESCE(doc->>'email', ''),
		        COALESCE(doc->>'password', '')
		   FROM user_documents`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// FindAndUpdate merges fields into the stored document with the jsonb ||
// operator and returns the document as it was before the merge.
func (r *UsersRepo) FindAndUpdate(ctx context.Context, id string, fields map[string]string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrInvalidID
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return user.User{}, err
	}

	u, err := scanUser(r.pool.QueryRow(ctx,
		`WITH prior AS (
			SELECT id, doc FROM user_documents WHERE id = $1 FOR UPDATE
		)
		UPDATE user_documents d
		   SET doc = d.doc || $2::jsonb
		  FROM prior
		 WHERE d.id = prior.id
		RETURNING prior.id::text,
		          COALESCE(prior.doc->>'name', ''),
		          COALESCE(prior.doc->>'email', ''),
		          COALESCE(prior.doc->>'password', '')`,
		id, string(patch),
	))
	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, user.ErrInvalidID
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM user_documents WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password)

	return u, err
}
