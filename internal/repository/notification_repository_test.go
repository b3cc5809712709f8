package repository_test

import (
	"context"
	"testing"
	"time"

	"boardsync/internal/model"
	"boardsync/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestNotificationRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	notificationID := uuid.New()
	notification := &model.Notification{
		UserID:    "u2",
		Kind:      model.NotificationBoardInvitation,
		BoardID:   "b1",
		InviterID: "u1",
		Message:   "u1 invited you to a board",
	}

	// Ожидаем SQL запрос на создание уведомления
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WithArgs("u2", model.NotificationBoardInvitation, "b1", "u1",
			"u1 invited you to a board", false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(notificationID.String()))
	mock.ExpectCommit()

	// Act
	err := repo.Create(context.Background(), notification)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	firstID := uuid.New()
	secondID := uuid.New()
	now := time.Now()

	// Ожидаем SQL запрос на выборку уведомлений пользователя
	mock.ExpectQuery(`SELECT .* FROM "notifications" WHERE user_id = .* ORDER BY created_at DESC`).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "kind", "board_id", "inviter_id", "message", "read", "created_at"}).
			AddRow(secondID.String(), "u2", model.NotificationBoardInvitation, "b2", "u1", "second", false, now).
			AddRow(firstID.String(), "u2", model.NotificationBoardInvitation, "b1", "u1", "first", true, now.Add(-time.Hour)))

	// Act
	notifications, err := repo.ListByUser(context.Background(), "u2")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, secondID, notifications[0].ID)
	assert.Equal(t, "second", notifications[0].Message)
	assert.False(t, notifications[0].Read)
	assert.True(t, notifications[1].Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	notificationID := uuid.New()

	// Ожидаем SQL запрос на пометку уведомления прочитанным
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET "read"=.* WHERE id = .* AND user_id = .*`).
		WithArgs(true, notificationID.String(), "u2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := repo.MarkRead(context.Background(), notificationID, "u2")

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET "read"=.* WHERE user_id = .* AND read = .*`).
		WithArgs(true, "u2", false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	// Act
	err := repo.MarkAllRead(context.Background(), "u2")

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
