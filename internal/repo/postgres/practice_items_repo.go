package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strettonotes/strettonotes/internal/domain/practiceitem"
	"github.com/strettonotes/strettonotes/internal/observability"
)

// Every statement filters by user_id in the same query, so a row owned by
// another user scans as no-rows and surfaces as ErrNotFound.
type PracticeItemsRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewPracticeItemsRepo(pool *pgxpool.Pool, metrics *observability.Prom) *PracticeItemsRepo {
	return &PracticeItemsRepo{pool: pool, metrics: metrics}
}

func (r *PracticeItemsRepo) Create(ctx context.Context, ownerID string, req practiceitem.CreateRequest) (practiceitem.PracticeItem, error) {
	item := practiceitem.NewFromCreateRequest(ownerID, req)

	err := observe(r.metrics, "practice_items.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO practice_items (id, user_id, title, composer, genre, tags, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.UserID, item.Title, item.Composer, item.Genre, item.Tags, item.CreatedAt, item.UpdatedAt,
		)
		return execErr
	})

	if err != nil {
		return practiceitem.PracticeItem{}, err
	}

	return item, nil
}

func (r *PracticeItemsRepo) List(ctx context.Context, ownerID string, filter practiceitem.ListFilter) ([]practiceitem.PracticeItem, error) {
	var out []practiceitem.PracticeItem

	err := observe(r.metrics, "practice_items.list", func() error {
		rows, qErr := r.pool.Query(ctx,
			`SELECT id, user_id, title, composer, genre, tags, created_at, updated_at
			FROM practice_items
			WHERE user_id = $1
			ORDER BY created_at ASC, id ASC
			LIMIT $2 OFFSET $3`,
			ownerID, filter.Limit, filter.Skip,
		)

		if qErr != nil {
			return qErr
		}

		defer rows.Close()

		out = make([]practiceitem.PracticeItem, 0, filter.Limit)

		for rows.Next() {
			var item practiceitem.PracticeItem

			scanErr := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Composer, &item.Genre, &item.Tags, &item.CreatedAt, &item.UpdatedAt)

			if scanErr != nil {
				return scanErr
			}

			out = append(out, item)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PracticeItemsRepo) GetByID(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error) {
	var item practiceitem.PracticeItem

	err := observe(r.metrics, "practice_items.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, user_id, title, composer, genre, tags, created_at, updated_at
			FROM practice_items
			WHERE id = $1 AND user_id = $2`,
			id, ownerID,
		).Scan(&item.ID, &item.UserID, &item.Title, &item.Composer, &item.Genre, &item.Tags, &item.CreatedAt, &item.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return practiceitem.PracticeItem{}, practiceitem.ErrNotFound
		}

		return practiceitem.PracticeItem{}, err
	}

	return item, nil
}

func (r *PracticeItemsRepo) Update(ctx context.Context, ownerID, id string, req practiceitem.UpdateRequest) (practiceitem.PracticeItem, error) {
	var item practiceitem.PracticeItem

	err := observe(r.metrics, "practice_items.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE practice_items
			SET title = COALESCE($3, title),
					composer = COALESCE($4, composer),
					genre = COALESCE($5, genre),
					tags = COALESCE($6, tags),
					updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING id, user_id, title, composer, genre, tags, created_at, updated_at`,
			id, ownerID,
			req.Title, req.Composer, req.Genre, req.Tags,
		).Scan(&item.ID, &item.UserID, &item.Title, &item.Composer, &item.Genre, &item.Tags, &item.CreatedAt, &item.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return practiceitem.PracticeItem{}, practiceitem.ErrNotFound
		}

		return practiceitem.PracticeItem{}, err
	}

	return item, nil
}

func (r *PracticeItemsRepo) Delete(ctx context.Context, ownerID, id string) error {
	var tag pgconn.CommandTag

	err := observe(r.metrics, "practice_items.delete", func() error {
		var execErr error
		tag, execErr = r.pool.Exec(ctx,
			`DELETE FROM practice_items WHERE id = $1 AND user_id = $2`,
			id, ownerID,
		)
		return execErr
	})

	if err != nil {
		return err
	}

	// zero rows covers both "no such id" and "owned by someone else"
	if tag.RowsAffected() == 0 {
		return practiceitem.ErrNotFound
	}

	return nil
}
