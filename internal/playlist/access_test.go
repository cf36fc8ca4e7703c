package playlist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanRead(t *testing.T) {
	owner := uuid.New()
	grantee := uuid.New()
	stranger := uuid.New()

	playlistWith := func(v models.Visibility) *models.Playlist {
		return &models.Playlist{OwnerID: owner, Visibility: v}
	}

	tests := []struct {
		name       string
		visibility models.Visibility
		shared     []uuid.UUID
		requester  *uuid.UUID
		want       bool
	}{
		{"public anonymous", models.VisibilityPublic, nil, nil, true},
		{"public stranger", models.VisibilityPublic, nil, &stranger, true},
		{"private anonymous", models.VisibilityPrivate, nil, nil, false},
		{"private owner", models.VisibilityPrivate, nil, &owner, true},
		{"private stranger", models.VisibilityPrivate, nil, &stranger, false},
		{"shared anonymous", models.VisibilityShared, []uuid.UUID{grantee}, nil, false},
		{"shared owner", models.VisibilityShared, []uuid.UUID{grantee}, &owner, true},
		{"shared grantee", models.VisibilityShared, []uuid.UUID{grantee}, &grantee, true},
		{"shared stranger", models.VisibilityShared, []uuid.UUID{grantee}, &stranger, false},
		{"shared empty grant list", models.VisibilityShared, nil, &stranger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanRead(playlistWith(tt.visibility), tt.shared, tt.requester)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanWrite(t *testing.T) {
	owner := uuid.New()
	grantee := uuid.New()

	p := &models.Playlist{OwnerID: owner, Visibility: models.VisibilityShared}

	assert.True(t, CanWrite(p, &owner))
	assert.False(t, CanWrite(p, &grantee), "shared grant must not confer write access")
	assert.False(t, CanWrite(p, nil))
}
