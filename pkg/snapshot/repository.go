package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store inserts a snapshot row. A conflict on (userId, weekStart) is
	// success: the returned flag is false and the stored row is untouched.
	Store(ctx context.Context, snapshot Snapshot) (bool, error)
	// FindForUser returns the user's snapshots with week starts in
	// [fromWeek, toWeek], ordered by week ascending.
	FindForUser(ctx context.Context, userId int, fromWeek, toWeek time.Time) ([]Snapshot, error)
	DeleteAll(ctx context.Context) error
	HasMarker(ctx context.Context, key string) (bool, error)
	WriteMarker(ctx context.Context, key string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, s Snapshot) (bool, error) {
	query := `INSERT INTO weekly_snapshots (
				user_id, week_start, completed_on_time, current_pending, current_delayed,
				total_tasks, total_tasks_all, shifted_tasks, wnd, wnd_on_time,
				rqc_score, performance_score, frozen_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (user_id, week_start) DO NOTHING`

	result, err := r.db.Exec(ctx, query,
		s.UserId,
		s.WeekStart,
		s.CompletedOnTime,
		s.CurrentPending,
		s.CurrentDelayed,
		s.TotalTasks,
		s.TotalTasksAll,
		s.ShiftedTasks,
		s.WND,
		s.WNDOnTime,
		s.RqcScore,
		s.PerformanceScore,
		s.FrozenAt,
	)
	if err != nil {
		err := fmt.Errorf("could not store snapshot: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) FindForUser(ctx context.Context, userId int, fromWeek, toWeek time.Time) ([]Snapshot, error) {
	query := `SELECT id, user_id, week_start, completed_on_time, current_pending, current_delayed,
				total_tasks, total_tasks_all, shifted_tasks, wnd, wnd_on_time,
				rqc_score, performance_score, frozen_at
			   FROM weekly_snapshots
			   WHERE user_id = $1 AND week_start >= $2 AND week_start <= $3
			   ORDER BY week_start`

	rows, err := r.db.Query(ctx, query, userId, fromWeek, toWeek)
	if err != nil {
		err := fmt.Errorf("could not query snapshots: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]Snapshot, 0, 8)
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(
			&s.Id,
			&s.UserId,
			&s.WeekStart,
			&s.CompletedOnTime,
			&s.CurrentPending,
			&s.CurrentDelayed,
			&s.TotalTasks,
			&s.TotalTasksAll,
			&s.ShiftedTasks,
			&s.WND,
			&s.WNDOnTime,
			&s.RqcScore,
			&s.PerformanceScore,
			&s.FrozenAt,
		); err != nil {
			err := fmt.Errorf("error scanning snapshot row: %w", err)
			log.Error(err)
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over snapshot rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return snapshots, nil
}

func (r *RepositoryImpl) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM weekly_snapshots`); err != nil {
		err := fmt.Errorf("could not delete snapshots: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) HasMarker(ctx context.Context, key string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM snapshot_markers WHERE key = $1`, key).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not query snapshot marker: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

func (r *RepositoryImpl) WriteMarker(ctx context.Context, key string) error {
	query := `INSERT INTO snapshot_markers (key, created_at) VALUES ($1, NOW())
				ON CONFLICT (key) DO NOTHING`
	if _, err := r.db.Exec(ctx, query, key); err != nil {
		err := fmt.Errorf("could not write snapshot marker: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
