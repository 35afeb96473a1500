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

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherSelect = `
	SELECT t.user_id, t.department,
	       u.id, u.name, u.first_name, u.email, u.password, u.role, u.email_verified, u.created_at
	FROM teachers t
	JOIN users u ON u.id = t.user_id`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	teacher := &models.Teacher{User: &models.User{}}
	err := row.Scan(
		&teacher.UserID, &teacher.Department,
		&teacher.User.ID, &teacher.User.Name, &teacher.User.FirstName, &teacher.User.Email,
		&teacher.User.Password, &teacher.User.Role, &teacher.User.EmailVerified, &teacher.User.CreatedAt)
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

// CreateTeacher creates the account row and the teacher profile atomically
func (r *TeacherRepository) CreateTeacher(ctx context.Context, user *models.User, teacher *models.Teacher) (int64, error) {
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
		user.Name, user.FirstName, user.Email, user.Password, models.RoleTeacher, user.EmailVerified).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO teachers (user_id, department)
		VALUES ($1, $2)`,
		id, teacher.Department)
	if err != nil {
		return 0, fmt.Errorf("error creating teacher profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	return id, nil
}

// GetTeacherByUserID retrieves a teacher with the account joined in
func (r *TeacherRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	row := r.db.QueryRow(ctx, teacherSelect+` WHERE t.user_id = $1`, userID)

	teacher, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting teacher: %w", err)
	}

	return teacher, nil
}

// GetTeacherByEmail retrieves a teacher by account email
func (r *TeacherRepository) GetTeacherByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	row := r.db.QueryRow(ctx, teacherSelect+` WHERE u.email = $1`, email)

	teacher, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting teacher by email: %w", err)
	}

	return teacher, nil
}

// GetTeachersByDepartment lists the teachers of a department
func (r *TeacherRepository) GetTeachersByDepartment(ctx context.Context, department string) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, teacherSelect+` WHERE t.department = $1 ORDER BY u.name`, department)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers by department: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	return teachers, rows.Err()
}

// ListTeachers returns a page of teachers with the total count
func (r *TeacherRepository) ListTeachers(ctx context.Context, offset uint64, limit int) ([]*models.Teacher, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teachers: %w", err)
	}

	rows, err := r.db.Query(ctx, teacherSelect+` ORDER BY u.name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	return teachers, total, rows.Err()
}
