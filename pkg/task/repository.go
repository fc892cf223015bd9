package task

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Repo reads task occurrences from the three tracking subsystems. Rows are
// normalized on the way out; classification never sees raw source shapes.
//
// Occurrences are fetched per scope, not per window: the aggregators need
// out-of-window rows too (unscoped totals, completions that slipped across
// a window edge), so windowing happens in the classifier.
type Repo interface {
	FindOccurrences(ctx context.Context, scope Scope) ([]TaskOccurrence, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) FindOccurrences(ctx context.Context, scope Scope) ([]TaskOccurrence, error) {
	var occurrences []TaskOccurrence

	delegation, err := r.findDelegation(ctx, scope)
	if err != nil {
		return nil, err
	}
	occurrences = append(occurrences, delegation...)

	fms, err := r.findFMS(ctx, scope)
	if err != nil {
		return nil, err
	}
	occurrences = append(occurrences, fms...)

	checklist, err := r.findChecklist(ctx, scope)
	if err != nil {
		return nil, err
	}
	occurrences = append(occurrences, checklist...)

	log.Debugf("fetched %d occurrences for scope %v", len(occurrences), scope.Kind)
	return occurrences, nil
}

// scopeClause builds the WHERE fragment selecting the scoped users. The task
// tables are always joined to users so team scope can follow manager_id.
func scopeClause(scope Scope) (string, []any, error) {
	switch scope.Kind {
	case ScopeUser:
		return "WHERE t.user_id = $1", []any{scope.UserId}, nil
	case ScopeTeam:
		return "WHERE u.manager_id = $1", []any{scope.ManagerId}, nil
	case ScopeAll:
		return "", nil, nil
	}
	return "", nil, fmt.Errorf("unknown scope kind: %s", scope.Kind)
}

func (r *RepoImpl) findDelegation(ctx context.Context, scope Scope) ([]TaskOccurrence, error) {
	where, args, err := scopeClause(scope)
	if err != nil {
		return nil, err
	}
	query := `SELECT t.user_id, u.username, t.title, t.status,
				t.planned_date, COALESCE(t.planned_time, ''),
				t.actual_date, COALESCE(t.actual_time, '')
			   FROM delegation_tasks t JOIN users u ON u.id = t.user_id ` + where

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query delegation tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var occurrences []TaskOccurrence
	for rows.Next() {
		var rec DelegationRecord
		var plannedDate, actualDate sql.NullTime
		if err := rows.Scan(
			&rec.UserId,
			&rec.Username,
			&rec.Title,
			&rec.Status,
			&plannedDate,
			&rec.PlannedTime,
			&actualDate,
			&rec.ActualTime,
		); err != nil {
			err := fmt.Errorf("error scanning delegation row: %w", err)
			log.Error(err)
			return nil, err
		}
		if plannedDate.Valid {
			rec.PlannedDate = &plannedDate.Time
		}
		if actualDate.Valid {
			rec.ActualDate = &actualDate.Time
		}
		occurrences = append(occurrences, NormalizeDelegation(rec))
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over delegation rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return occurrences, nil
}

func (r *RepoImpl) findFMS(ctx context.Context, scope Scope) ([]TaskOccurrence, error) {
	where, args, err := scopeClause(scope)
	if err != nil {
		return nil, err
	}
	query := `SELECT t.user_id, u.username, t.title, t.status,
				COALESCE(t.planned, ''), COALESCE(t.actual, '')
			   FROM fms_tasks t JOIN users u ON u.id = t.user_id ` + where

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query fms tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var occurrences []TaskOccurrence
	for rows.Next() {
		var rec FMSRecord
		if err := rows.Scan(
			&rec.UserId,
			&rec.Username,
			&rec.Title,
			&rec.Status,
			&rec.Planned,
			&rec.Actual,
		); err != nil {
			err := fmt.Errorf("error scanning fms row: %w", err)
			log.Error(err)
			return nil, err
		}
		occurrences = append(occurrences, NormalizeFMS(rec))
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over fms rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return occurrences, nil
}

func (r *RepoImpl) findChecklist(ctx context.Context, scope Scope) ([]TaskOccurrence, error) {
	where, args, err := scopeClause(scope)
	if err != nil {
		return nil, err
	}
	query := `SELECT t.user_id, u.username, t.title, t.status, t.planned_date, t.actual_date
			   FROM checklist_tasks t JOIN users u ON u.id = t.user_id ` + where

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query checklist tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var occurrences []TaskOccurrence
	for rows.Next() {
		var rec ChecklistRecord
		var plannedDate, actualDate sql.NullTime
		if err := rows.Scan(
			&rec.UserId,
			&rec.Username,
			&rec.Title,
			&rec.Status,
			&plannedDate,
			&actualDate,
		); err != nil {
			err := fmt.Errorf("error scanning checklist row: %w", err)
			log.Error(err)
			return nil, err
		}
		if plannedDate.Valid {
			rec.PlannedDate = &plannedDate.Time
		}
		if actualDate.Valid {
			rec.ActualDate = &actualDate.Time
		}
		occurrences = append(occurrences, NormalizeChecklist(rec))
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over checklist rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return occurrences, nil
}
