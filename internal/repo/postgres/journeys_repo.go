package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strettonotes/strettonotes/internal/domain/journey"
	"github.com/strettonotes/strettonotes/internal/observability"
)

type JourneysRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewJourneysRepo(pool *pgxpool.Pool, metrics *observability.Prom) *JourneysRepo {
	return &JourneysRepo{pool: pool, metrics: metrics}
}

func (r *JourneysRepo) Create(ctx context.Context, ownerID string, req journey.CreateRequest) (journey.Journey, error) {
	j := journey.NewFromCreateRequest(ownerID, req)

	err := observe(r.metrics, "journeys.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO journeys (id, user_id, title, goal, practice_item_ids, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			j.ID, j.UserID, j.Title, j.Goal, j.PracticeItemIDs, j.CreatedAt, j.UpdatedAt,
		)
		return execErr
	})

	if err != nil {
		return journey.Journey{}, err
	}

	return j, nil
}

func (r *JourneysRepo) List(ctx context.Context, ownerID string, filter journey.ListFilter) ([]journey.Journey, error) {
	var out []journey.Journey

	err := observe(r.metrics, "journeys.list", func() error {
		rows, qErr := r.pool.Query(ctx,
			`SELECT id, user_id, title, goal, practice_item_ids, created_at, updated_at
			FROM journeys
			WHERE user_id = $1
			ORDER BY created_at ASC, id ASC
			LIMIT $2 OFFSET $3`,
			ownerID, filter.Limit, filter.Skip,
		)

		if qErr != nil {
			return qErr
		}

		defer rows.Close()

		out = make([]journey.Journey, 0, filter.Limit)

		for rows.Next() {
			var j journey.Journey

			scanErr := rows.Scan(&j.ID, &j.UserID, &j.Title, &j.Goal, &j.PracticeItemIDs, &j.CreatedAt, &j.UpdatedAt)

			if scanErr != nil {
				return scanErr
			}

			out = append(out, j)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *JourneysRepo) GetByID(ctx context.Context, ownerID, id string) (journey.Journey, error) {
	var j journey.Journey

	err := observe(r.metrics, "journeys.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, user_id, title, goal, practice_item_ids, created_at, updated_at
			FROM journeys
			WHERE id = $1 AND user_id = $2`,
			id, ownerID,
		).Scan(&j.ID, &j.UserID, &j.Title, &j.Goal, &j.PracticeItemIDs, &j.CreatedAt, &j.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return journey.Journey{}, journey.ErrNotFound
		}

		return journey.Journey{}, err
	}

	return j, nil
}

func (r *JourneysRepo) Update(ctx context.Context, ownerID, id string, req journey.UpdateRequest) (journey.Journey, error) {
	var j journey.Journey

	err := observe(r.metrics, "journeys.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE journeys
			SET title = COALESCE($3, title),
					goal = COALESCE($4, goal),
					practice_item_ids = COALESCE($5, practice_item_ids),
					updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING id, user_id, title, goal, practice_item_ids, created_at, updated_at`,
			id, ownerID,
			req.Title, req.Goal, req.PracticeItemIDs,
		).Scan(&j.ID, &j.UserID, &j.Title, &j.Goal, &j.PracticeItemIDs, &j.CreatedAt, &j.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return journey.Journey{}, journey.ErrNotFound
		}

		return journey.Journey{}, err
	}

	return j, nil
}

func (r *JourneysRepo) Delete(ctx context.Context, ownerID, id string) error {
	var tag pgconn.CommandTag

	err := observe(r.metrics, "journeys.delete", func() error {
		var execErr error
		tag, execErr = r.pool.Exec(ctx,
			`DELETE FROM journeys WHERE id = $1 AND user_id = $2`,
			id, ownerID,
		)
		return execErr
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return journey.ErrNotFound
	}

	return nil
}
