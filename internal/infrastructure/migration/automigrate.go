package migration

import (
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models owned by this service's schema.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ProjectModel{},
		&models.UserModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.CommentDetailModel{},
		&models.AttachmentModel{},
	}
}
