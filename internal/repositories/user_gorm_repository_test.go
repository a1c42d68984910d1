package repositories_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"
	"cardshop/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

func newUserRepo(t *testing.T) (*gorm.DB, *repositories.GORMUserRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db, repositories.NewGORMUserRepository(db)
}

func TestGORMUserRepository_Update(t *testing.T) {
	db, repo := newUserRepo(t)

	code := "123456"
	user := &models.User{
		Email:            "x@y.com",
		Username:         "x",
		Password:         "hash",
		Role:             models.RoleUser,
		VerificationCode: &code,
	}
	assert.NoError(t, repo.Create(user))

	// Zero values persist: the cleared code and the flipped flag survive a
	// read back.
	user.IsVerified = true
	user.VerificationCode = nil
	assert.NoError(t, repo.Update(user))

	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Nil(t, got.VerificationCode)

	// Updating a vanished user reports NotFound instead of re-inserting it.
	assert.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)
	err = repo.Update(user)
	assert.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	_, err = repo.GetByID(user.ID)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
