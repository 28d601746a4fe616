package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, user_id, day, check_in, check_out, status,
		   work_hours, late_minutes, early_leave_minutes, created_at, updated_at`

func scanAttendanceRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Day,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Status,
		&rec.WorkHours,
		&rec.LateMinutes,
		&rec.EarlyLeaveMinutes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// Create implements attendance.AttendanceRepository. The unique index on
// (user_id, day) backs the one-record-per-day invariant.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (user_id, day, check_in, check_out, status, work_hours, late_minutes, early_leave_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	return scanAttendanceRecord(q.QueryRow(ctx, query,
		record.UserID,
		record.Day,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.WorkHours,
		record.LateMinutes,
		record.EarlyLeaveMinutes,
	))
}

// GetByUserAndDay implements attendance.AttendanceRepository. Returns nil
// when no record exists for the day.
func (r *attendanceRepositoryImpl) GetByUserAndDay(ctx context.Context, userID string, day time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND day = $2
	`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, userID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in = $1, check_out = $2, status = $3, work_hours = $4,
			late_minutes = $5, early_leave_minutes = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.WorkHours,
		record.LateMinutes,
		record.EarlyLeaveMinutes,
		record.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByUserBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day DESC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// BulkCreateAbsences implements attendance.AttendanceRepository. Conflicting
// rows are skipped so the batch job stays idempotent across reruns.
func (r *attendanceRepositoryImpl) BulkCreateAbsences(ctx context.Context, records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(records))
	valueArgs := make([]interface{}, 0, len(records)*3)

	for i, rec := range records {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
		valueArgs = append(valueArgs, rec.UserID, rec.Day, rec.Status)
	}

	query := fmt.Sprintf(`
		INSERT INTO attendance_records (user_id, day, status)
		VALUES %s
		ON CONFLICT (user_id, day) DO NOTHING
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to bulk create absences: %w", err)
	}
	return nil
}
