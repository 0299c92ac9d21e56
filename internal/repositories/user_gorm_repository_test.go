package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soxutil/internal/models"
	"soxutil/internal/repositories"
)

func setupUserRepo(t *testing.T) *repositories.GORMUserRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))
	return repositories.NewGORMUserRepository(db)
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	repo := setupUserRepo(t)

	created, err := repo.Create(&models.UserCreate{
		Email:    "a@x.com",
		Password: "pw",
		FullName: "A",
	}, "hashed-pw")
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "hashed-pw", created.HashedPassword)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsSuperuser)
	assert.False(t, created.CreatedAt.IsZero())

	// Both retrieval paths agree on the stored record.
	byID, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	byEmail, err := repo.GetByEmail("a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, byID.ID, byEmail.ID)
	assert.Equal(t, byID.Email, byEmail.Email)
	assert.Equal(t, byID.FullName, byEmail.FullName)
	assert.Equal(t, byID.HashedPassword, byEmail.HashedPassword)
}

func TestUserRepositoryGetMissing(t *testing.T) {
	repo := setupUserRepo(t)

	user, err := repo.GetByID(9999)
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetByEmail("missing@x.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryDuplicateEmailRejectedByStore(t *testing.T) {
	repo := setupUserRepo(t)

	_, err := repo.Create(&models.UserCreate{Email: "dup@x.com", Password: "pw", FullName: "A"}, "h1")
	assert.NoError(t, err)

	// The unique index is the backstop when the handler's pre-check races.
	_, err = repo.Create(&models.UserCreate{Email: "dup@x.com", Password: "pw", FullName: "B"}, "h2")
	assert.Error(t, err)
}

func TestUserRepositoryUpdateAppliesOnlySetFields(t *testing.T) {
	repo := setupUserRepo(t)

	created, err := repo.Create(&models.UserCreate{Email: "u@x.com", Password: "pw", FullName: "Before"}, "h")
	assert.NoError(t, err)

	name := "After"
	updated, err := repo.Update(created, &models.UserUpdate{FullName: &name})
	assert.NoError(t, err)
	assert.Equal(t, "After", updated.FullName)
	assert.Equal(t, "u@x.com", updated.Email)

	reloaded, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "After", reloaded.FullName)
	assert.True(t, reloaded.IsActive)
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := setupUserRepo(t)

	created, err := repo.Create(&models.UserCreate{Email: "d@x.com", Password: "pw", FullName: "D"}, "h")
	assert.NoError(t, err)

	deleted, err := repo.Delete(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	gone, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	// Deleting a missing id is a no-op reported as absence.
	missing, err := repo.Delete(created.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryGetAllPaging(t *testing.T) {
	repo := setupUserRepo(t)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(&models.UserCreate{
			Email:    fmt.Sprintf("p%d@x.com", i),
			Password: "pw",
			FullName: "P",
		}, "h")
		assert.NoError(t, err)
	}

	page, err := repo.GetAll(1, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, "p1@x.com", page[0].Email)
	assert.Equal(t, "p2@x.com", page[1].Email)
}
