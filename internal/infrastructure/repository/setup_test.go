package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
	"github.com/orris-inc/movecomments/internal/shared/constants"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.ProjectModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.CommentDetailModel{},
		&models.AttachmentModel{},
	)
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string {
	return &s
}

func uintPtr(v uint) *uint {
	return &v
}

func seedProject(t *testing.T, db *gorm.DB, id uint, name string) {
	require.NoError(t, db.Create(&models.ProjectModel{ID: id, Name: name}).Error)
}

func seedTicket(t *testing.T, db *gorm.DB, id, projectID uint, subject string, assigneeID *uint) {
	require.NoError(t, db.Create(&models.TicketModel{
		ID:         id,
		ProjectID:  projectID,
		Subject:    subject,
		AuthorID:   1,
		AssigneeID: assigneeID,
	}).Error)
}

func seedComment(t *testing.T, db *gorm.DB, id, ticketID, userID uint, notes *string) {
	require.NoError(t, db.Create(&models.CommentModel{
		ID:        id,
		TicketID:  ticketID,
		UserID:    userID,
		Notes:     notes,
		CreatedAt: 1700000000000,
	}).Error)
}

func seedDetail(t *testing.T, db *gorm.DB, id, commentID uint, property, propKey string, value *string) {
	require.NoError(t, db.Create(&models.CommentDetailModel{
		ID:        id,
		CommentID: commentID,
		Property:  property,
		PropKey:   propKey,
		Value:     value,
	}).Error)
}

func seedAttachment(t *testing.T, db *gorm.DB, id, ticketID uint, filename string) {
	require.NoError(t, db.Create(&models.AttachmentModel{
		ID:            id,
		ContainerID:   ticketID,
		ContainerType: constants.ContainerTypeTicket,
		Filename:      filename,
		AuthorID:      1,
	}).Error)
}
