package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/registrar-hq/registrar/internal/common/db"
	"github.com/registrar-hq/registrar/internal/student/domain"
)

var (
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrStudentNotFound = errors.New("student not found")
)

type Repository interface {
	Create(ctx context.Context, name, email, course string) (domain.StudentRecord, error)
	ListAll(ctx context.Context) ([]domain.StudentRecord, error)
	Delete(ctx context.Context, id int64) error
	CountTotal(ctx context.Context) (int, error)
	CountByCourse(ctx context.Context) ([]domain.CourseCount, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Create inserts a record and returns it with the DB-assigned id and
// timestamp. Email uniqueness is enforced only by the unique index, so
// concurrent inserts of one email resolve at commit time.
func (r *PgRepository) Create(ctx context.Context, name, email, course string) (domain.StudentRecord, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO students (name, email, course, date_added)
		 VALUES ($1, $2, $3, now())
		 RETURNING id, name, email, course, date_added`,
		name,
		email,
		course,
	)

	var record domain.StudentRecord
	err := row.Scan(&record.ID, &record.Name, &record.Email, &record.Course, &record.DateAdded)
	if err != nil {
		if db.IsUniqueViolation(err) {
			db.MeasureQueryDuration("create student", start)
			return domain.StudentRecord{}, ErrDuplicateEmail
		}
		return domain.StudentRecord{}, db.HandleExecError(err, "create student", start)
	}

	db.MeasureQueryDuration("create student", start)
	record.DateAdded = record.DateAdded.UTC()
	return record, nil
}

func (r *PgRepository) ListAll(ctx context.Context) ([]domain.StudentRecord, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, email, course, date_added
		 FROM students
		 ORDER BY date_added DESC, id DESC`,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list students", start)
	}
	defer rows.Close()

	records, err := scanStudents(rows)
	if err != nil {
		return nil, db.HandleExecError(err, "list students", start)
	}

	db.MeasureQueryDuration("list students", start)
	return records, nil
}

// Delete removes the record with the given id. A missing id leaves the
// store unchanged and reports ErrStudentNotFound.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return db.HandleExecError(err, "delete student", start)
	}

	db.MeasureQueryDuration("delete student", start)
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *PgRepository) CountTotal(ctx context.Context) (int, error) {
	start := time.Now()

	var total int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM students`).Scan(&total)
	if err := db.HandleExecError(err, "count students", start); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PgRepository) CountByCourse(ctx context.Context) ([]domain.CourseCount, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT course, count(*) FROM students GROUP BY course ORDER BY course`,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "count students by course", start)
	}
	defer rows.Close()

	counts, err := scanCourseCounts(rows)
	if err != nil {
		return nil, db.HandleExecError(err, "count students by course", start)
	}

	db.MeasureQueryDuration("count students by course", start)
	return counts, nil
}

// Stats reads the total and the per-course counts inside one repeatable
// read transaction, so the total always equals the sum of the counts.
func (r *PgRepository) Stats(ctx context.Context) (domain.Stats, error) {
	start := time.Now()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return domain.Stats{}, db.HandleExecError(err, "begin stats tx", start)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var stats domain.Stats
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM students`).Scan(&stats.Total); err != nil {
		return domain.Stats{}, db.HandleExecError(err, "read stats total", start)
	}

	rows, err := tx.Query(ctx, `SELECT course, count(*) FROM students GROUP BY course ORDER BY course`)
	if err != nil {
		return domain.Stats{}, db.HandleExecError(err, "read stats courses", start)
	}
	defer rows.Close()

	stats.Courses, err = scanCourseCounts(rows)
	if err != nil {
		return domain.Stats{}, db.HandleExecError(err, "read stats courses", start)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Stats{}, db.HandleExecError(err, "commit stats tx", start)
	}

	db.MeasureQueryDuration("read stats", start)
	return stats, nil
}

func scanStudents(rows pgx.Rows) ([]domain.StudentRecord, error) {
	var records []domain.StudentRecord
	for rows.Next() {
		var record domain.StudentRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.Email, &record.Course, &record.DateAdded); err != nil {
			return nil, err
		}
		record.DateAdded = record.DateAdded.UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanCourseCounts(rows pgx.Rows) ([]domain.CourseCount, error) {
	var counts []domain.CourseCount
	for rows.Next() {
		var cc domain.CourseCount
		if err := rows.Scan(&cc.Course, &cc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}
