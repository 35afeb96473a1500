package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentSelect = `
	SELECT s.user_id, s.department, s.sector, s.on_internship, s.languages,
	       s.github_link, s.linkedin_link,
	       u.id, u.name, u.first_name, u.email, u.password, u.role, u.email_verified, u.created_at
	FROM students s
	JOIN users u ON u.id = s.user_id`

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{User: &models.User{}}
	err := row.Scan(
		&student.UserID, &student.Department, &student.Sector, &student.OnInternship,
		&student.Languages, &student.GithubLink, &student.LinkedinLink,
		&student.User.ID, &student.User.Name, &student.User.FirstName, &student.User.Email,
		&student.User.Password, &student.User.Role, &student.User.EmailVerified, &student.User.CreatedAt)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// CreateStudent creates the account row and the student profile atomically
func (r *StudentRepository) CreateStudent(ctx context.Context, user *models.User, student *models.Student) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists); err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO users (name, first_name, email, password, role, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Name, user.FirstName, user.Email, user.Password, models.RoleStudent, user.EmailVerified).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO students (user_id, department, sector, on_internship, languages, github_link, linkedin_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, student.Department, student.Sector, false, student.Languages,
		student.GithubLink, student.LinkedinLink)
	if err != nil {
		return 0, fmt.Errorf("error creating student profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	return id, nil
}

// GetStudentByUserID retrieves a student with the account joined in
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	row := r.db.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}

	return student, nil
}

// GetStudentByEmail retrieves a student by account email
func (r *StudentRepository) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	row := r.db.QueryRow(ctx, studentSelect+` WHERE u.email = $1`, email)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting student by email: %w", err)
	}

	return student, nil
}

// GetStudentsByDepartment lists the students of a department
func (r *StudentRepository) GetStudentsByDepartment(ctx context.Context, department string) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, studentSelect+` WHERE s.department = $1 ORDER BY u.name`, department)
	if err != nil {
		return nil, fmt.Errorf("error listing students by department: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// ListStudents returns a page of students with the total count
func (r *StudentRepository) ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	rows, err := r.db.Query(ctx, studentSelect+` ORDER BY u.name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students, err := collectStudents(rows)
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// SetOnInternship flips the on-internship flag of a student
func (r *StudentRepository) SetOnInternship(ctx context.Context, userID int64, onInternship bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students SET on_internship = $1 WHERE user_id = $2`,
		onInternship, userID)
	if err != nil {
		return fmt.Errorf("error updating internship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLanguages replaces the language list of a student
func (r *StudentRepository) UpdateLanguages(ctx context.Context, userID int64, languages []string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE students SET languages = $1 WHERE user_id = $2`,
		languages, userID)
	if err != nil {
		return fmt.Errorf("error updating languages: %w", err)
	}
	return nil
}

// UpdateGithubLink replaces the GitHub link of a student
func (r *StudentRepository) UpdateGithubLink(ctx context.Context, userID int64, link string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE students SET github_link = $1 WHERE user_id = $2`,
		link, userID)
	if err != nil {
		return fmt.Errorf("error updating github link: %w", err)
	}
	return nil
}

// UpdateLinkedinLink replaces the LinkedIn link of a student
func (r *StudentRepository) UpdateLinkedinLink(ctx context.Context, userID int64, link string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE students SET linkedin_link = $1 WHERE user_id = $2`,
		link, userID)
	if err != nil {
		return fmt.Errorf("error updating linkedin link: %w", err)
	}
	return nil
}

// CountByDepartment returns per-department counts of students on internship
func (r *StudentRepository) CountByDepartment(ctx context.Context) ([]models.DepartmentInternshipStat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT department,
		       COUNT(*) AS student_count,
		       COUNT(*) FILTER (WHERE on_internship) AS on_internship
		FROM students
		GROUP BY department
		ORDER BY department`)
	if err != nil {
		return nil, fmt.Errorf("error computing internship stats: %w", err)
	}
	defer rows.Close()

	var stats []models.DepartmentInternshipStat
	for rows.Next() {
		var stat models.DepartmentInternshipStat
		if err := rows.Scan(&stat.Department, &stat.StudentCount, &stat.OnInternship); err != nil {
			return nil, fmt.Errorf("error scanning internship stat: %w", err)
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}

func collectStudents(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
