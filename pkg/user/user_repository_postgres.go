package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/maximthomas/meetnow-auth/pkg/user/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

const (
	defaultPostgresTimeout = 2 * time.Second

	findByEmailQuery = `SELECT email, password_hash, roles FROM users
		 WHERE email = $1`
	findByEmailInsensitiveQuery = `SELECT email, password_hash, roles FROM users
		 WHERE LOWER(email) = LOWER($1)`
)

type postgresProperties struct {
	DSN             string
	CaseInsensitive bool
	Timeout         time.Duration
}

type userPostgresRepository struct {
	db              *sql.DB
	caseInsensitive bool
	timeout         time.Duration
}

func (ur *userPostgresRepository) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, ur.timeout)
	defer cancel()

	query := findByEmailQuery
	if ur.caseInsensitive {
		query = findByEmailInsensitiveQuery
	}

	var (
		user  User
		roles string
	)
	err := ur.db.QueryRowContext(ctx, query, email).Scan(&user.Email, &user.PasswordHash, &roles)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, errors.Wrapf(err, "error finding user %v", email)
	}
	user.Roles = splitRoles(roles)
	return user, true, nil
}

func (ur *userPostgresRepository) Close() error {
	return ur.db.Close()
}

// Migrate brings the users schema up to date.
func (ur *userPostgresRepository) Migrate(ctx context.Context) error {
	return MigratePostgres(ctx, ur.db)
}

func splitRoles(roles string) []string {
	var res []string
	for _, r := range strings.Split(roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			res = append(res, r)
		}
	}
	return res
}

// MigratePostgres runs the embedded goose migrations against db.
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return errors.Wrap(err, "error setting goose dialect")
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "error running migrations")
	}
	return nil
}

func newUserPostgresRepository(db *sql.DB, p postgresProperties) *userPostgresRepository {
	if p.Timeout <= 0 {
		p.Timeout = defaultPostgresTimeout
	}
	return &userPostgresRepository{
		db:              db,
		caseInsensitive: p.CaseInsensitive,
		timeout:         p.Timeout,
	}
}

func openUserPostgresRepository(ctx context.Context, p postgresProperties) (*userPostgresRepository, error) {
	db, err := sql.Open("pgx", p.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "error opening postgres")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "error connecting to postgres")
	}
	return newUserPostgresRepository(db, p), nil
}
