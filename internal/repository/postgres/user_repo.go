package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Litjoaco/inacap/internal/domain"
)

const userColumns = `
	id, name, last_name, rut, email, password_hash, salt, phone,
	affiliation, affiliation_other, campus, campus_other, program, program_other, institution,
	photo_path, qr_path, emoji_tag, role, attendance_count, public_profile, featured,
	created_at, updated_at
`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var role string
	err := row.Scan(
		&u.ID, &u.Name, &u.LastName, &u.RUT, &u.Email, &u.PasswordHash, &u.Salt, &u.Phone,
		&u.Affiliation, &u.AffiliationOther, &u.Campus, &u.CampusOther, &u.Program, &u.ProgramOther, &u.Institution,
		&u.PhotoPath, &u.QRPath, &u.EmojiTag, &role, &u.AttendanceCount, &u.PublicProfile, &u.Featured,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

// mapUserConstraint translates unique-violation errors onto domain sentinels.
func mapUserConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "rut") {
			return domain.ErrDuplicateRUT
		}
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (
			name, last_name, rut, email, password_hash, salt, phone,
			affiliation, affiliation_other, campus, campus_other, program, program_other, institution,
			photo_path, qr_path, emoji_tag, role, attendance_count, public_profile, featured,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.Name, u.LastName, u.RUT, u.Email, u.PasswordHash, u.Salt, u.Phone,
		u.Affiliation, u.AffiliationOther, u.Campus, u.CampusOther, u.Program, u.ProgramOther, u.Institution,
		u.PhotoPath, u.QRPath, u.EmojiTag, string(u.Role), u.AttendanceCount, u.PublicProfile, u.Featured,
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return mapUserConstraint(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, last_name = $2, rut = $3, email = $4, phone = $5,
			affiliation = $6, affiliation_other = $7, campus = $8, campus_other = $9,
			program = $10, program_other = $11, institution = $12, photo_path = $13,
			role = $14, updated_at = $15
		WHERE id = $16
	`
	res, err := r.DB.ExecContext(ctx, query,
		u.Name, u.LastName, u.RUT, u.Email, u.Phone,
		u.Affiliation, u.AffiliationOther, u.Campus, u.CampusOther,
		u.Program, u.ProgramOther, u.Institution, u.PhotoPath,
		string(u.Role), u.UpdatedAt, u.ID,
	)
	if err != nil {
		return mapUserConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash, salt string) error {
	query := `UPDATE users SET password_hash = $1, salt = $2, updated_at = NOW() WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, passwordHash, salt, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetQRPath(ctx context.Context, userID, qrPath string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET qr_path = $1 WHERE id = $2`, qrPath, userID)
	return err
}

func (r *userRepository) SetPublicProfile(ctx context.Context, userID string, public bool) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET public_profile = $1, updated_at = NOW() WHERE id = $2`, public, userID)
	return err
}

func (r *userRepository) SetFeatured(ctx context.Context, userID string, featured bool) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET featured = $1, updated_at = NOW() WHERE id = $2`, featured, userID)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Search(ctx context.Context, f domain.DirectoryFilter) ([]*domain.User, error) {
	var (
		conds []string
		args  []any
	)
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		p := fmt.Sprintf("$%d", len(args))
		conds = append(conds, `(name ILIKE `+p+` OR last_name ILIKE `+p+` OR email ILIKE `+p+
			` OR rut ILIKE `+p+` OR campus ILIKE `+p+` OR campus_other ILIKE `+p+
			` OR program ILIKE `+p+` OR program_other ILIKE `+p+`)`)
	}
	if f.Affiliation != "" {
		args = append(args, f.Affiliation)
		conds = append(conds, fmt.Sprintf("affiliation = $%d", len(args)))
	}
	if f.Campus != "" {
		args = append(args, f.Campus)
		conds = append(conds, fmt.Sprintf("campus = $%d", len(args)))
	}
	if f.Program != "" {
		args = append(args, f.Program)
		conds = append(conds, fmt.Sprintf("program = $%d", len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY featured DESC, name, last_name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (r *userRepository) IncrementAttendance(ctx context.Context, userID string) (int, error) {
	// Relative update: never read-modify-write across round-trips.
	query := `
		UPDATE users
		SET attendance_count = attendance_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING attendance_count
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	return count, nil
}

func (r *userRepository) DecrementAttendance(ctx context.Context, userID string) error {
	// The WHERE clause clamps the counter at zero.
	query := `
		UPDATE users
		SET attendance_count = attendance_count - 1, updated_at = NOW()
		WHERE id = $1 AND attendance_count > 0
	`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}
