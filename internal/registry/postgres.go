package registry

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"campuscore.org/internal/auth"
)

// PGStore implements Store over the students table.
type PGStore struct {
	db *sql.DB
}

var _ Store = (*PGStore)(nil)

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, st *Student) error {
	_, err := s.db.ExecContext(ctx,
		`insert into students(id, student_id, first_name, last_name, program, enrolled_at)
		 values($1,$2,$3,$4,$5,$6)`,
		st.ID, st.StudentID, st.FirstName, st.LastName, st.Program, st.EnrolledAt,
	)
	if err != nil && (strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key")) {
		return ErrDuplicateStudentID
	}
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Student, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, student_id, first_name, last_name, program, enrolled_at, deleted_at
		 from students where id=$1 and deleted_at is null`, id)
	return scanStudent(row)
}

func (s *PGStore) FindByStudentID(ctx context.Context, studentID string) (*Student, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, student_id, first_name, last_name, program, enrolled_at, deleted_at
		 from students where student_id=$1 and deleted_at is null`, studentID)
	return scanStudent(row)
}

func (s *PGStore) List(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, student_id, first_name, last_name, program, enrolled_at, deleted_at
		 from students where deleted_at is null order by student_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.ID, &st.StudentID, &st.FirstName, &st.LastName,
			&st.Program, &st.EnrolledAt, &st.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanStudent(row *sql.Row) (*Student, error) {
	var st Student
	err := row.Scan(&st.ID, &st.StudentID, &st.FirstName, &st.LastName,
		&st.Program, &st.EnrolledAt, &st.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}
