package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"library-service/internal/domain/entities"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection, or every pooled connection would see its own empty
	// in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()

	repo := NewUserRepository(db)
	user, err := repo.Create(context.Background(), entities.NewUser("Test", "User", email, "hash"))
	require.NoError(t, err)
	return user
}

func createTestResource(t *testing.T, db *gorm.DB, ownerId uint) *entities.Resource {
	t.Helper()

	repo := NewResourceRepository(db)
	resource, err := repo.Create(context.Background(), entities.NewResource("Test Book", "Test Author", ownerId))
	require.NoError(t, err)
	return resource
}

func TestFindOrCreateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "a@x.com")

	first, err := repo.FindOrCreate(ctx, "golang", owner.Id)
	require.NoError(t, err)
	second, err := repo.FindOrCreate(ctx, "golang", owner.Id)
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateConcurrent(t *testing.T) {
	db := openTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "a@x.com")

	var wg sync.WaitGroup
	ids := make([]uint, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tag, err := repo.FindOrCreate(ctx, "golang", owner.Id)
			if assert.NoError(t, err) {
				ids[i] = tag.Id
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTagsAreScopedPerOwner(t *testing.T) {
	db := openTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	ownerA := createTestUser(t, db, "a@x.com")
	ownerB := createTestUser(t, db, "b@x.com")

	tagA, err := repo.FindOrCreate(ctx, "golang", ownerA.Id)
	require.NoError(t, err)
	tagB, err := repo.FindOrCreate(ctx, "golang", ownerB.Id)
	require.NoError(t, err)

	assert.NotEqual(t, tagA.Id, tagB.Id)

	// Deleting A's tag must leave B's untouched
	require.NoError(t, repo.Delete(ctx, tagA.Id))

	remaining, err := repo.FindByText(ctx, "golang", ownerB.Id)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Equal(t, tagB.Id, remaining.Id)

	gone, err := repo.FindByText(ctx, "golang", ownerA.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAssignIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "a@x.com")
	resource := createTestResource(t, db, owner.Id)
	tag, err := repo.FindOrCreate(ctx, "golang", owner.Id)
	require.NoError(t, err)

	require.NoError(t, repo.Assign(ctx, resource.Id, tag.Id))
	require.NoError(t, repo.Assign(ctx, resource.Id, tag.Id))

	assignments, err := repo.AssignmentsForTag(ctx, tag.Id)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestDeleteTagCascadesAssignmentsOnly(t *testing.T) {
	db := openTestDB(t)
	tagRepo := NewTagRepository(db)
	resourceRepo := NewResourceRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "a@x.com")
	resource := createTestResource(t, db, owner.Id)

	golang, err := tagRepo.FindOrCreate(ctx, "golang", owner.Id)
	require.NoError(t, err)
	books, err := tagRepo.FindOrCreate(ctx, "books", owner.Id)
	require.NoError(t, err)
	require.NoError(t, tagRepo.Assign(ctx, resource.Id, golang.Id))
	require.NoError(t, tagRepo.Assign(ctx, resource.Id, books.Id))

	require.NoError(t, tagRepo.Delete(ctx, golang.Id))

	// The resource survives and keeps its other tag
	kept, err := resourceRepo.FindById(ctx, resource.Id)
	require.NoError(t, err)
	require.NotNil(t, kept)

	assignments, err := tagRepo.AssignmentsForResource(ctx, resource.Id)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, books.Id, assignments[0].TagId)
}

func TestDeleteResourceCascadesAssignments(t *testing.T) {
	db := openTestDB(t)
	tagRepo := NewTagRepository(db)
	resourceRepo := NewResourceRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "a@x.com")
	resource := createTestResource(t, db, owner.Id)

	tag, err := tagRepo.FindOrCreate(ctx, "golang", owner.Id)
	require.NoError(t, err)
	require.NoError(t, tagRepo.Assign(ctx, resource.Id, tag.Id))

	require.NoError(t, resourceRepo.Delete(ctx, resource.Id))

	gone, err := resourceRepo.FindById(ctx, resource.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assignments, err := tagRepo.AssignmentsForResource(ctx, resource.Id)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	// The tag itself stays registered
	kept, err := tagRepo.FindByText(ctx, "golang", owner.Id)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestCountTaggedResourcesIsDistinct(t *testing.T) {
	db := openTestDB(t)
	tagRepo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "a@x.com")
	resource := createTestResource(t, db, owner.Id)

	golang, err := tagRepo.FindOrCreate(ctx, "golang", owner.Id)
	require.NoError(t, err)
	books, err := tagRepo.FindOrCreate(ctx, "books", owner.Id)
	require.NoError(t, err)
	require.NoError(t, tagRepo.Assign(ctx, resource.Id, golang.Id))
	require.NoError(t, tagRepo.Assign(ctx, resource.Id, books.Id))

	count, err := tagRepo.CountTaggedResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
