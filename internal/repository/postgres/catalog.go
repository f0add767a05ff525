package postgres

import (
	"context"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogRepo struct {
	db *pgxpool.Pool
}

func newCatalogRepo(db *pgxpool.Pool) Catalog {
	return &catalogRepo{
		db: db,
	}
}

func (r *catalogRepo) FindFaculties(ctx context.Context) ([]*model.Faculty, error) {
	rows, err := r.db.Query(ctx, "SELECT f.id, f.name FROM faculties f ORDER BY f.name")
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[model.Faculty])
}

func (r *catalogRepo) FindDepartments(ctx context.Context, facultyID int64) ([]*model.Department, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT d.id, d.faculty_id, d.name FROM departments d WHERE d.faculty_id = $1 ORDER BY d.name",
		facultyID,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[model.Department])
}

// FindPapers lists a department's papers, optionally narrowed to a level and
// semester, newest exam year first.
func (r *catalogRepo) FindPapers(ctx context.Context, departmentID int64, level *int, semester *int) ([]*model.Paper, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT p.id, p.department_id, p.level, p.semester, p.course_code, p.title, p.year, p.file_url
		FROM papers p
		WHERE p.department_id = $1
		AND ($2::int IS NULL OR p.level = $2)
		AND ($3::int IS NULL OR p.semester = $3)
		ORDER BY p.level, p.semester, p.course_code, p.year DESC`,
		departmentID,
		level,
		semester,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[model.Paper])
}
