package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/registrar-hq/registrar/internal/common/logger"
	"github.com/registrar-hq/registrar/internal/observability/metrics"
	"github.com/registrar-hq/registrar/internal/student/domain"
	"github.com/registrar-hq/registrar/internal/student/repository"
)

const (
	// jsonDateLayout is the human-readable form served to the dashboard.
	jsonDateLayout = "02 Jan 2006"
	// csvDateLayout is the raw timestamp form written to exports.
	csvDateLayout = "2006-01-02 15:04:05"
)

var csvHeader = []string{"ID", "Name", "Email", "Course", "Date"}

// StudentJSON is one student as rendered for dashboard consumers.
type StudentJSON struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
	Date   string `json:"date"`
}

// StatsJSON pairs labels[i] with values[i]; both come from one atomic
// read, so total equals the sum of values.
type StatsJSON struct {
	Total  int      `json:"total"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type RecordService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewRecordService(repo repository.Repository, log *logger.Logger) *RecordService {
	return &RecordService{repo: repo, log: log}
}

// Add validates the input and persists a new record. A duplicate email
// surfaces as repository.ErrDuplicateEmail; any other storage failure
// surfaces as itself.
func (s *RecordService) Add(ctx context.Context, input AddStudentInput) (domain.StudentRecord, error) {
	if err := validateAddStudent(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "add_student_validation_failed",
		}).Warnf("add student validation failed: %v", err)
		return domain.StudentRecord{}, err
	}

	record, err := s.repo.Create(ctx, input.Name, input.Email, input.Course)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "add_student_duplicate_email",
			}).Warn("add student failed: duplicate email")
			metrics.DuplicateEmailsTotal.Inc()
			return domain.StudentRecord{}, err
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "add_student_failed",
		}).Errorf("add student failed: %v", err)
		return domain.StudentRecord{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"student_id": record.ID,
		"course":     record.Course,
		"action":     "add_student_success",
	}).Info("student added")
	metrics.StudentsCreated.Inc()

	return record, nil
}

// List returns every record newest first, shaped for JSON consumers.
func (s *RecordService) List(ctx context.Context) ([]StudentJSON, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_students_failed",
		}).Errorf("list students failed: %v", err)
		return nil, err
	}

	out := make([]StudentJSON, 0, len(records))
	for _, record := range records {
		out = append(out, StudentJSON{
			ID:     record.ID,
			Name:   record.Name,
			Email:  record.Email,
			Course: record.Course,
			Date:   record.DateAdded.UTC().Format(jsonDateLayout),
		})
	}
	return out, nil
}

func (s *RecordService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"student_id": id,
				"action":     "delete_student_not_found",
			}).Warn("delete student failed: not found")
			return err
		}
		s.log.WithFields(ctx, logger.Fields{
			"student_id": id,
			"action":     "delete_student_failed",
		}).Errorf("delete student failed: %v", err)
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"student_id": id,
		"action":     "delete_student_success",
	}).Info("student deleted")
	metrics.StudentsDeleted.Inc()
	return nil
}

func (s *RecordService) Stats(ctx context.Context) (StatsJSON, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "stats_failed",
		}).Errorf("stats failed: %v", err)
		return StatsJSON{}, err
	}

	out := StatsJSON{
		Total:  stats.Total,
		Labels: make([]string, 0, len(stats.Courses)),
		Values: make([]int, 0, len(stats.Courses)),
	}
	for _, cc := range stats.Courses {
		out.Labels = append(out.Labels, cc.Course)
		out.Values = append(out.Values, cc.Count)
	}
	return out, nil
}

// ExportCSV streams every record as CSV: a header row plus exactly one
// row per record, in list order.
func (s *RecordService) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "export_csv_failed",
		}).Errorf("export csv failed: %v", err)
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, record := range records {
		row := []string{
			strconv.FormatInt(record.ID, 10),
			record.Name,
			record.Email,
			record.Course,
			record.DateAdded.UTC().Format(csvDateLayout),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"records": len(records),
		"action":  "export_csv_success",
	}).Info("csv export served")
	metrics.CSVExportsTotal.Inc()
	return nil
}
