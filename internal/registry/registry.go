// Package registry manages student records. Account provisioning for an
// enrolled student happens at the HTTP layer so the registry stays free of
// credential handling.
package registry

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"campuscore.org/internal/auth"
	"campuscore.org/internal/ids"
)

// Student is one enrolled student. StudentID is the campus-issued number
// printed on the ID card; ID is the internal key.
type Student struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"studentId"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Program    string     `json:"program"`
	EnrolledAt time.Time  `json:"enrolledAt"`
	DeletedAt  *time.Time `json:"-"`
}

// Store persists student records.
type Store interface {
	Create(ctx context.Context, s *Student) error
	Find(ctx context.Context, id string) (*Student, error)
	FindByStudentID(ctx context.Context, studentID string) (*Student, error)
	List(ctx context.Context) ([]Student, error)
}

var studentIDPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{3,19}$`)

// Service validates and records enrollments.
type Service struct {
	students Store
	now      func() time.Time
}

// Option configures Service behavior.
type Option func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service over the given store.
func NewService(students Store, opts ...Option) (*Service, error) {
	if students == nil {
		return nil, fmt.Errorf("registry: student store is required")
	}
	s := &Service{students: students, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Enroll validates and records a new student. The student number must be
// unique; duplicates surface as auth.ErrDuplicateEmail's registry analogue,
// ErrDuplicateStudentID.
func (s *Service) Enroll(ctx context.Context, studentID, firstName, lastName, program string) (*Student, error) {
	studentID = strings.ToUpper(strings.TrimSpace(studentID))
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	program = strings.TrimSpace(program)

	if !studentIDPattern.MatchString(studentID) {
		return nil, fmt.Errorf("%w: student id must be 4-20 characters of A-Z, 0-9 or dash", auth.ErrInvalidInput)
	}
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", auth.ErrInvalidInput)
	}
	if program == "" {
		return nil, fmt.Errorf("%w: program is required", auth.ErrInvalidInput)
	}

	student := &Student{
		ID:         ids.New(),
		StudentID:  studentID,
		FirstName:  firstName,
		LastName:   lastName,
		Program:    program,
		EnrolledAt: s.now().UTC(),
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Roster returns every live student, for export.
func (s *Service) Roster(ctx context.Context) ([]Student, error) {
	return s.students.List(ctx)
}

// Find returns one student by internal id.
func (s *Service) Find(ctx context.Context, id string) (*Student, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: student id is required", auth.ErrInvalidInput)
	}
	return s.students.Find(ctx, id)
}
