package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/saubh/planwise/internal/domain/project"
	"github.com/saubh/planwise/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns every stored project ordered by id (insertion order).
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `
		SELECT id, client_name, phone_number, advance_payment, total_payment,
		       is_completed, is_paid, description, creation_date, last_modified_date
		FROM projects
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var (
			p                    project.Project
			completed, paid      int
			createdMs, updatedMs int64
		)
		err := rows.Scan(
			&p.ID,
			&p.ClientName,
			&p.PhoneNumber,
			&p.AdvancePayment,
			&p.TotalPayment,
			&completed,
			&paid,
			&p.Description,
			&createdMs,
			&updatedMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.IsCompleted = completed == 1
		p.IsPaid = paid == 1
		p.CreationDate = time.UnixMilli(createdMs)
		p.LastModifiedDate = time.UnixMilli(updatedMs)
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Insert stores a new project and returns the assigned id. The incoming id
// field is ignored; AUTOINCREMENT assigns the next monotonic value.
func (r *ProjectRepository) Insert(ctx context.Context, proj *project.Project) (int64, error) {
	query := `
		INSERT INTO projects (
			client_name, phone_number, advance_payment, total_payment,
			is_completed, is_paid, description, creation_date, last_modified_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.ClientName,
		proj.PhoneNumber,
		proj.AdvancePayment,
		proj.TotalPayment,
		boolToInt(proj.IsCompleted),
		boolToInt(proj.IsPaid),
		proj.Description,
		proj.CreationDate.UnixMilli(),
		proj.LastModifiedDate.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned id: %w", err)
	}

	return id, nil
}

// Update replaces the stored record matching proj.ID. Updating a missing id
// returns repository.ErrNotFound.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET client_name = ?, phone_number = ?, advance_payment = ?, total_payment = ?,
		    is_completed = ?, is_paid = ?, description = ?,
		    creation_date = ?, last_modified_date = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.ClientName,
		proj.PhoneNumber,
		proj.AdvancePayment,
		proj.TotalPayment,
		boolToInt(proj.IsCompleted),
		boolToInt(proj.IsPaid),
		proj.Description,
		proj.CreationDate.UnixMilli(),
		proj.LastModifiedDate.UnixMilli(),
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the record matching id. Deleting an absent id is a no-op.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
