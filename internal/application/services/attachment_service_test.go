package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-service/internal/apperrors"
)

func TestUploadReplacesPreviousObject(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)
	ctx := context.Background()

	first, err := env.attachments.Upload(ctx, ownerID, resource.Id, strings.NewReader("v1"), "book.pdf", "application/pdf")
	require.NoError(t, err)

	second, err := env.attachments.Upload(ctx, ownerID, resource.Id, strings.NewReader("v2"), "book.epub", "application/epub+zip")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// The first remote object is gone, only the second remains
	firstKey := first[strings.LastIndexByte(first, '/')+1:]
	assert.Contains(t, env.objectStore.deleted, firstKey)
	assert.Len(t, env.objectStore.objects, 1)

	resources, err := env.resources.ListOwn(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, second, resources[0].FileURL)
}

func TestUploadKeyKeepsExtension(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)

	url, err := env.attachments.Upload(context.Background(), ownerID, resource.Id, strings.NewReader("pdf"), "notes.pdf", "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".pdf"))
}

func TestDeleteWithoutAttachment(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)

	err := env.attachments.Delete(context.Background(), ownerID, resource.Id)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))
}

func TestDeleteClearsURL(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)
	ctx := context.Background()

	_, err := env.attachments.Upload(ctx, ownerID, resource.Id, strings.NewReader("pdf"), "book.pdf", "application/pdf")
	require.NoError(t, err)

	require.NoError(t, env.attachments.Delete(ctx, ownerID, resource.Id))

	resources, err := env.resources.ListOwn(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, resources[0].FileURL)
	assert.Empty(t, env.objectStore.objects)
}

func TestUploadFailureLeavesResourceUntouched(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)
	env.objectStore.fail = true

	_, err := env.attachments.Upload(context.Background(), ownerID, resource.Id, strings.NewReader("pdf"), "book.pdf", "application/pdf")
	require.Error(t, err)

	env.objectStore.fail = false
	resources, err := env.resources.ListOwn(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, resources[0].FileURL)
}

func TestAttachmentOpsRequireOwnership(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	intruderID := env.registerUser(t, "b@x.com")
	resource := env.createResource(t, ownerID)
	ctx := context.Background()

	_, err := env.attachments.Upload(ctx, intruderID, resource.Id, strings.NewReader("pdf"), "book.pdf", "application/pdf")
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	err = env.attachments.Delete(ctx, intruderID, resource.Id)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
}
