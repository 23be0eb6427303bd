package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContainer(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewContainerService(repo, zerolog.Nop())

	deadline := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	container, err := svc.Create(context.Background(), 1, "Матан ИУ7-32Б", nil, &deadline)
	require.NoError(t, err)
	assert.NotZero(t, container.ID)
	assert.Len(t, container.InviteCode, 10)
	require.NotNil(t, container.Deadline)
	assert.Equal(t, 23, container.Deadline.Hour())
	assert.Equal(t, 59, container.Deadline.Minute())
}

func TestCreateContainerNameTaken(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewContainerService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), 1, "Матан", nil, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, "Матан", nil, nil)
	assert.ErrorIs(t, err, ErrNameTaken)

	// Имя уникально в пределах владельца, у другого преподавателя оно свободно.
	_, err = svc.Create(context.Background(), 2, "Матан", nil, nil)
	assert.NoError(t, err)
}

func TestGetContainerNotFound(t *testing.T) {
	svc := NewContainerService(newFakeContainerRepo(), zerolog.Nop())

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrContainerNotFound)
}

func TestJoinIsIdempotent(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewContainerService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, "Матан", nil, nil)
	require.NoError(t, err)

	container, joined, err := svc.Join(context.Background(), created.InviteCode, 2)
	require.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, created.ID, container.ID)

	_, joined, err = svc.Join(context.Background(), created.InviteCode, 2)
	require.NoError(t, err)
	assert.False(t, joined)

	// Владелец уже участник своего контейнера.
	_, joined, err = svc.Join(context.Background(), created.InviteCode, 1)
	require.NoError(t, err)
	assert.False(t, joined)
}

func TestJoinUnknownCode(t *testing.T) {
	svc := NewContainerService(newFakeContainerRepo(), zerolog.Nop())

	_, _, err := svc.Join(context.Background(), "nosuchcode", 2)
	assert.ErrorIs(t, err, ErrContainerNotFound)
}

func TestArchiveHidesFromParticipants(t *testing.T) {
	repo := newFakeContainerRepo()
	svc := NewContainerService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, "Матан", nil, nil)
	require.NoError(t, err)

	_, _, err = svc.Join(context.Background(), created.InviteCode, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Archive(context.Background(), created.ID))

	visible, err := svc.ListVisible(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, visible)

	// Владелец продолжает видеть архивный контейнер.
	visible, err = svc.ListVisible(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.True(t, visible[0].IsArchived)
}
