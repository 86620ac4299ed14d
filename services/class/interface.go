package class

import (
	"context"

	"gymflow/models"
)

// ClassService is the class and session surface used by the HTTP handlers.
type ClassService interface {
	CreateClass(ctx context.Context, req models.CreateClassRequest) (*models.ClassDTO, error)
	GetClass(ctx context.Context, id string) (*models.ClassDTO, error)
	ListClasses(ctx context.Context) ([]models.ClassDTO, error)
	UpdateClass(ctx context.Context, id string, req models.UpdateClassRequest) (*models.ClassDTO, error)
	UpdateClassWithSessions(ctx context.Context, id string, req models.UpdateClassWithSessionsRequest) (*models.ClassDTO, error)
	DeleteClass(ctx context.Context, id string) error

	ListSessions(ctx context.Context, classID string) ([]models.ClassSessionDTO, error)
	GetSession(ctx context.Context, classID, sessionID string) (*models.ClassSessionDTO, error)
	AddSessions(ctx context.Context, classID string, r models.Recurrence) ([]models.ClassSessionDTO, error)
	UpdateSession(ctx context.Context, classID, sessionID string, req models.UpdateSessionRequest) (*models.ClassSessionDTO, error)
	DeleteSession(ctx context.Context, classID, sessionID string) error
}

var _ ClassService = (*Service)(nil)
