package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"library-service/internal/application/validation"
	"library-service/internal/config"
	"library-service/internal/domain/entities"
	"library-service/internal/infrastructure"
	"library-service/internal/infrastructure/db/postgres"
)

// fakeObjectStore is an in-memory stand-in for S3 recording every mutation.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	fail    bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", fmt.Errorf("object store down")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return "https://test-bucket.s3.eu-west-1.amazonaws.com/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("object store down")
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type testEnv struct {
	db          *gorm.DB
	objectStore *fakeObjectStore
	users       *UserService
	resources   *ResourceService
	tags        *TagService
	attachments *AttachmentService
	stats       *StatisticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, postgres.Migrate(db))

	userRepo := postgres.NewUserRepository(db)
	resourceRepo := postgres.NewResourceRepository(db)
	tagRepo := postgres.NewTagRepository(db)

	jwtService := infrastructure.NewJWTService("test-secret", time.Hour)
	redisService := infrastructure.NewRedisServiceWithClient(nil)
	emailService := infrastructure.NewEmailService(&config.Config{})
	objectStore := newFakeObjectStore()

	validator := validation.New()
	guard := NewOwnershipGuard(resourceRepo)

	return &testEnv{
		db:          db,
		objectStore: objectStore,
		users:       NewUserService(userRepo, jwtService, redisService, emailService, validator),
		resources:   NewResourceService(resourceRepo, guard, objectStore, validator),
		tags:        NewTagService(tagRepo, resourceRepo, guard, validator),
		attachments: NewAttachmentService(resourceRepo, guard, objectStore),
		stats:       NewStatisticsService(userRepo, resourceRepo, tagRepo, redisService),
	}
}

func (e *testEnv) registerUser(t *testing.T, email string) uint {
	t.Helper()

	_, err := e.users.Register(context.Background(), RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "Aa@123!53",
	})
	require.NoError(t, err)

	user, err := e.users.userRepo.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.Id
}

func (e *testEnv) createResource(t *testing.T, ownerID uint) *entities.Resource {
	t.Helper()

	resource, err := e.resources.Create(context.Background(), ownerID, CreateResourceRequest{
		Title:  "Test Book",
		Author: "Test Author",
	})
	require.NoError(t, err)
	return resource
}
