package repository // repository for user persistence

import (
	"context"      // context for managing deadlines
	"database/sql" // sql provides DB interfaces
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/mediatrack/media-billboard/internal/access"
	"github.com/mediatrack/media-billboard/internal/model"
)

// mysqlDuplicateEntry is the server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// UserRepo encapsulates database operations for users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo given a DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. AllowedCategories are derived from the age
// at insert time so the stored set always matches the stored age; the
// caller provides the already-hashed password. Unique collisions on
// username or email surface as ErrDuplicateUser.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (uint64, error) {
	u.AllowedCategories = categoryStrings(access.CategoriesForAge(u.Age))

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, username, email, password_hash, age, role, allowed_categories)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Username, u.Email, u.PasswordHash, u.Age, u.Role,
		strings.Join(u.AllowedCategories, ","),
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by email. Returns ErrUserNotFound when the
// email is unknown.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *UserRepo) getBy(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var u model.User
	var cats string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, username, email, password_hash, age, role, allowed_categories, created_at
		FROM users WHERE `+cond, arg,
	).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Age,
		&u.Role,
		&cats,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if cats != "" {
		u.AllowedCategories = strings.Split(cats, ",")
	}
	return &u, nil
}

// UpdateAge changes a user's age and rederives the stored category set
// in the same statement sequence, keeping the two columns consistent.
func (r *UserRepo) UpdateAge(ctx context.Context, id uint64, age int) error {
	cats := categoryStrings(access.CategoriesForAge(age))
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET age = ?, allowed_categories = ? WHERE id = ?`,
		age, strings.Join(cats, ","), id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func categoryStrings(cats []model.AgeCategory) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}
