package postgres

import (
	"context"
	"database/sql"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, is_staff, last_login, date_joined`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row rowScanner, u *domain.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsStaff, &u.LastLogin, &u.DateJoined)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	logger.EnterMethod("userRepository.Create", "username", u.Username)
	query := `INSERT INTO users (username, email, password_hash, first_name, last_name, is_staff)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, date_joined`
	err := r.db.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsStaff).
		Scan(&u.ID, &u.DateJoined)
	if err != nil {
		logger.ExitMethodWithError("userRepository.Create", err, "username", u.Username)
		return translate(err)
	}
	logger.ExitMethod("userRepository.Create", "userID", u.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), u); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, username), u); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// FindByEmailOrUsername prefers an email match over a username match.
func (r *userRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($1)
	          ORDER BY (LOWER(email) = LOWER($1)) DESC, id ASC LIMIT 1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, identifier), u); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4, is_staff = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.FirstName, u.LastName, u.IsStaff, u.ID)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

func (r *userRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	logger.EnterMethod("userRepository.List")
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name, u.is_staff,
	                 u.last_login, u.date_joined, p.user_id IS NOT NULL,
	                 COALESCE(p.phone, ''), COALESCE(p.college_name, ''), COALESCE(p.branch, ''),
	                 COALESCE(p.roll_number, ''), COALESCE(p.semester, '')
	          FROM users u LEFT JOIN user_profiles p ON p.user_id = u.id
	          ORDER BY u.last_login DESC NULLS LAST, u.date_joined DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.ExitMethodWithError("userRepository.List", err)
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		var p domain.UserProfile
		var hasProfile bool
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsStaff,
			&u.LastLogin, &u.DateJoined, &hasProfile,
			&p.Phone, &p.CollegeName, &p.Branch, &p.RollNumber, &p.Semester); err != nil {
			logger.ExitMethodWithError("userRepository.List", err)
			return nil, err
		}
		if hasProfile {
			p.UserID = u.ID
			u.Profile = &p
		}
		users = append(users, u)
	}
	logger.ExitMethod("userRepository.List", "count", len(users))
	return users, rows.Err()
}

const profileColumns = `user_id, phone, college_name, branch, roll_number, semester, date_of_birth::text,
	gender, profile_image, created_at, updated_at`

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	insert := `INSERT INTO user_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	logger.DatabaseCall("insert", insert, "userID", userID)
	if _, err := r.db.ExecContext(ctx, insert, userID); err != nil {
		logger.DatabaseResult("insert", 0, err, "userID", userID)
		return nil, translate(err)
	}

	p := &domain.UserProfile{}
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Phone, &p.CollegeName, &p.Branch,
		&p.RollNumber, &p.Semester, &p.DateOfBirth, &p.Gender, &p.ProfileImage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.UserProfile) error {
	query := `UPDATE user_profiles SET phone = $1, college_name = $2, branch = $3, roll_number = $4,
	          semester = $5, date_of_birth = $6, gender = $7, profile_image = $8, updated_at = NOW()
	          WHERE user_id = $9 RETURNING updated_at`
	logger.DatabaseCall("update", "user_profiles", "userID", p.UserID)
	err := r.db.QueryRowContext(ctx, query, p.Phone, p.CollegeName, p.Branch, p.RollNumber, p.Semester,
		p.DateOfBirth, p.Gender, p.ProfileImage, p.UserID).Scan(&p.UpdatedAt)
	logger.DatabaseResult("update", 1, err, "userID", p.UserID)
	return translate(err)
}
