package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/repository"
)

// NewRepositories creates the repository set backed by PostgreSQL. The cart
// mirror lives in Mongo and is attached separately by the caller.
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Order: NewOrderRepository(db, logger),
	}
}
