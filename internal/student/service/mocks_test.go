package service

import (
	"context"

	"github.com/registrar-hq/registrar/internal/student/domain"
	"github.com/registrar-hq/registrar/internal/student/repository"
)

type mockStudentRepo struct {
	createFunc        func(ctx context.Context, name, email, course string) (domain.StudentRecord, error)
	listAllFunc       func(ctx context.Context) ([]domain.StudentRecord, error)
	deleteFunc        func(ctx context.Context, id int64) error
	countTotalFunc    func(ctx context.Context) (int, error)
	countByCourseFunc func(ctx context.Context) ([]domain.CourseCount, error)
	statsFunc         func(ctx context.Context) (domain.Stats, error)
}

func (m *mockStudentRepo) Create(ctx context.Context, name, email, course string) (domain.StudentRecord, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, name, email, course)
	}
	return domain.StudentRecord{}, nil
}

func (m *mockStudentRepo) ListAll(ctx context.Context) ([]domain.StudentRecord, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return repository.ErrStudentNotFound
}

func (m *mockStudentRepo) CountTotal(ctx context.Context) (int, error) {
	if m.countTotalFunc != nil {
		return m.countTotalFunc(ctx)
	}
	return 0, nil
}

func (m *mockStudentRepo) CountByCourse(ctx context.Context) ([]domain.CourseCount, error) {
	if m.countByCourseFunc != nil {
		return m.countByCourseFunc(ctx)
	}
	return nil, nil
}

func (m *mockStudentRepo) Stats(ctx context.Context) (domain.Stats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return domain.Stats{}, nil
}
