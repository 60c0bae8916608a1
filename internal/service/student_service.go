package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
)

var ErrNISRequired = errors.New("nis is required by the fee schedule")

// StudentService handles roster business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
	settingSvc  *SettingService
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, settingSvc *SettingService, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		settingSvc:  settingSvc,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// GetStudent retrieves one student with its payment vector for the year.
func (s *StudentService) GetStudent(ctx context.Context, id, year int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id, year)
}

// CreateStudent registers a new student. The student starts with twelve
// UNPAID monthly slots for the given year and the provided fee amounts.
func (s *StudentService) CreateStudent(ctx context.Context, req *model.CreateStudentRequest, year int) (*model.Student, error) {
	sched, err := s.settingSvc.GetFeeSchedule(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateStudentNIS(sched, req.NIS); err != nil {
		return nil, err
	}

	student := &model.Student{
		NIS:        req.NIS,
		Name:       req.Name,
		Category:   req.Category,
		ClassName:  req.ClassName,
		MonthlyFee: req.MonthlyFee,
	}
	if err := s.studentRepo.Create(ctx, student, req.Fees, year); err != nil {
		s.log.Error().Err(err).Str("name", req.Name).Msg("failed to create student")
		return nil, err
	}
	s.log.Info().Int("student_id", student.ID).Str("name", student.Name).Msg("student created")
	return s.studentRepo.GetByID(ctx, student.ID, year)
}

// UpdateStudent modifies a student's static attributes.
func (s *StudentService) UpdateStudent(ctx context.Context, id int, req *model.UpdateStudentRequest, year int) (*model.Student, error) {
	sched, err := s.settingSvc.GetFeeSchedule(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateStudentNIS(sched, req.NIS); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, id, year)
	if err != nil {
		return nil, err
	}

	student.NIS = req.NIS
	student.Name = req.Name
	student.Category = req.Category
	student.ClassName = req.ClassName
	student.MonthlyFee = req.MonthlyFee

	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.log.Error().Err(err).Int("student_id", id).Msg("failed to update student")
		return nil, err
	}
	return student, nil
}

// validateStudentNIS applies the same identity rule the import wizard uses:
// a schedule that tracks NIS rejects students without one.
func validateStudentNIS(sched *model.FeeSchedule, nis string) error {
	if sched.UseNIS && strings.TrimSpace(nis) == "" {
		return ErrNISRequired
	}
	return nil
}

// ListClasses returns the distinct class names for the filter controls.
func (s *StudentService) ListClasses(ctx context.Context) ([]string, error) {
	return s.studentRepo.ListClasses(ctx)
}
