package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-service/internal/apperrors"
	"library-service/internal/domain/entities"
)

func TestCreateResourceStartsPending(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")

	resource := env.createResource(t, ownerID)
	assert.Equal(t, entities.StatusPending, resource.Status)
}

func TestCreateResourceRequiresTitleAndAuthor(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")

	_, err := env.resources.Create(context.Background(), ownerID, CreateResourceRequest{Title: "Only Title"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))
}

func TestNonOwnerMutationsAreForbidden(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	intruderID := env.registerUser(t, "b@x.com")
	ctx := context.Background()

	resource := env.createResource(t, ownerID)
	title := "Hijacked"

	err := env.resources.SetStatus(ctx, intruderID, resource.Id, entities.StatusRead)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	err = env.resources.Update(ctx, intruderID, UpdateResourceRequest{ResourceId: resource.Id, Title: &title})
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	err = env.resources.Delete(ctx, intruderID, resource.Id)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	_, err = env.tags.TagResource(ctx, intruderID, TagResourceRequest{ResourceId: resource.Id, Tags: []string{"x"}})
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	// And the resource is unchanged
	unchanged, err := env.resources.ListOwn(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, unchanged, 1)
	assert.Equal(t, "Test Book", unchanged[0].Title)
	assert.Equal(t, entities.StatusPending, unchanged[0].Status)
}

func TestMutateMissingResource(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")

	err := env.resources.SetStatus(context.Background(), ownerID, 999, entities.StatusRead)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestUpdateResourceEmptyPayload(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)

	err := env.resources.Update(context.Background(), ownerID, UpdateResourceRequest{ResourceId: resource.Id})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))
}

func TestSetStatusAnyToAny(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)
	ctx := context.Background()

	for _, status := range []entities.ResourceStatus{
		entities.StatusRead, entities.StatusDropped, entities.StatusPending, entities.StatusRead,
	} {
		require.NoError(t, env.resources.SetStatus(ctx, ownerID, resource.Id, status))
	}

	resources, err := env.resources.ListOwn(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusRead, resources[0].Status)
}

func TestDeleteResourceRemovesAssignmentsAndAttachment(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.registerUser(t, "a@x.com")
	resource := env.createResource(t, ownerID)
	ctx := context.Background()

	_, err := env.tags.TagResource(ctx, ownerID, TagResourceRequest{ResourceId: resource.Id, Tags: []string{"x"}})
	require.NoError(t, err)

	url, err := env.attachments.Upload(ctx, ownerID, resource.Id, strings.NewReader("pdf bytes"), "book.pdf", "application/pdf")
	require.NoError(t, err)

	require.NoError(t, env.resources.Delete(ctx, ownerID, resource.Id))

	tags, err := env.tags.TagsForResource(ctx, resource.Id)
	require.NoError(t, err)
	assert.Empty(t, tags)

	key := url[strings.LastIndexByte(url, '/')+1:]
	assert.Contains(t, env.objectStore.deleted, key)

	resources, err := env.resources.ListOwn(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, resources)
}
