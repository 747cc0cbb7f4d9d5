package repository

import (
	"context"

	"github.com/saubh/planwise/internal/domain/project"
)

// ProjectRepository manages project persistence. Implementations must assign
// a fresh monotonic id on Insert and keep List order stable within a session.
type ProjectRepository interface {
	List(ctx context.Context) ([]project.Project, error)
	Insert(ctx context.Context, proj *project.Project) (int64, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id int64) error
}
