package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strettonotes/strettonotes/internal/domain/session"
	"github.com/strettonotes/strettonotes/internal/observability"
)

// insights, ai_suggestions and insight_counts live in jsonb columns; pgx v5
// marshals/unmarshals the Go values through its JSON codec.
type SessionsRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewSessionsRepo(pool *pgxpool.Pool, metrics *observability.Prom) *SessionsRepo {
	return &SessionsRepo{pool: pool, metrics: metrics}
}

const sessionColumns = `id, user_id, subject_id, start_time, end_time,
		insights, ai_suggestions, insight_counts,
		session_summary, session_journal, session_focus, full_transcript,
		is_active, created_at, updated_at`

func scanSession(row pgx.Row, s *session.Session) error {
	return row.Scan(
		&s.ID,
		&s.UserID,
		&s.SubjectID,
		&s.StartTime,
		&s.EndTime,
		&s.Insights,
		&s.AISuggestions,
		&s.InsightCounts,
		&s.SessionSummary,
		&s.SessionJournal,
		&s.SessionFocus,
		&s.FullTranscript,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *SessionsRepo) Create(ctx context.Context, ownerID string, req session.CreateRequest) (session.Session, error) {
	s := session.NewFromCreateRequest(ownerID, req)

	err := observe(r.metrics, "sessions.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO sessions (id, user_id, subject_id, start_time, end_time,
				insights, ai_suggestions, insight_counts,
				session_summary, session_journal, session_focus, full_transcript,
				is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			s.ID, s.UserID, s.SubjectID, s.StartTime, s.EndTime,
			s.Insights, s.AISuggestions, s.InsightCounts,
			s.SessionSummary, s.SessionJournal, s.SessionFocus, s.FullTranscript,
			s.IsActive, s.CreatedAt, s.UpdatedAt,
		)
		return execErr
	})

	if err != nil {
		return session.Session{}, err
	}

	return s, nil
}

func (r *SessionsRepo) List(ctx context.Context, ownerID string, filter session.ListFilter) ([]session.Session, error) {
	var out []session.Session

	err := observe(r.metrics, "sessions.list", func() error {
		rows, qErr := r.pool.Query(ctx,
			`SELECT `+sessionColumns+`
			FROM sessions
			WHERE user_id = $1
			ORDER BY start_time DESC, id ASC
			LIMIT $2 OFFSET $3`,
			ownerID, filter.Limit, filter.Skip,
		)

		if qErr != nil {
			return qErr
		}

		defer rows.Close()

		out = make([]session.Session, 0, filter.Limit)

		for rows.Next() {
			var s session.Session

			if scanErr := scanSession(rows, &s); scanErr != nil {
				return scanErr
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *SessionsRepo) GetByID(ctx context.Context, ownerID, id string) (session.Session, error) {
	var s session.Session

	err := observe(r.metrics, "sessions.get", func() error {
		return scanSession(r.pool.QueryRow(ctx,
			`SELECT `+sessionColumns+`
			FROM sessions
			WHERE id = $1 AND user_id = $2`,
			id, ownerID,
		), &s)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}

		return session.Session{}, err
	}

	return s, nil
}

func (r *SessionsRepo) Update(ctx context.Context, ownerID, id string, req session.UpdateRequest) (session.Session, error) {
	var s session.Session

	err := observe(r.metrics, "sessions.update", func() error {
		return scanSession(r.pool.QueryRow(ctx,
			`UPDATE sessions
			SET end_time = COALESCE($3, end_time),
					insights = COALESCE($4, insights),
					ai_suggestions = COALESCE($5, ai_suggestions),
					insight_counts = COALESCE($6, insight_counts),
					session_summary = COALESCE($7, session_summary),
					session_journal = COALESCE($8, session_journal),
					session_focus = COALESCE($9, session_focus),
					full_transcript = COALESCE($10, full_transcript),
					is_active = COALESCE($11, is_active),
					updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING `+sessionColumns,
			id, ownerID,
			req.EndTime, req.Insights, req.AISuggestions, req.InsightCounts,
			req.SessionSummary, req.SessionJournal, req.SessionFocus, req.FullTranscript,
			req.IsActive,
		), &s)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}

		return session.Session{}, err
	}

	return s, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, ownerID, id string) error {
	var tag pgconn.CommandTag

	err := observe(r.metrics, "sessions.delete", func() error {
		var execErr error
		tag, execErr = r.pool.Exec(ctx,
			`DELETE FROM sessions WHERE id = $1 AND user_id = $2`,
			id, ownerID,
		)
		return execErr
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}

	return nil
}
