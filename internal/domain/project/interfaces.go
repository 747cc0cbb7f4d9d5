package project

import "context"

// Repository provides durable persistence for projects.
type Repository interface {
	List(ctx context.Context) ([]Project, error)
	Insert(ctx context.Context, proj *Project) (int64, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id int64) error
}
