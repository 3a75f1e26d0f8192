package service

import (
	"context"
	"testing"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParishServiceCreateSeedsTemplates(t *testing.T) {
	db := setupTestDB(t)
	templateRepo := repository.NewPetitionTemplateRepository(db)
	svc := NewParishService(repository.NewParishRepository(db), templateRepo)
	ctx := context.Background()

	parish, err := svc.Create(ctx, CreateParishRequest{Name: "St. Mary"})
	require.NoError(t, err)
	_, err = uuid.Parse(parish.ID)
	assert.NoError(t, err)

	got, err := svc.Get(ctx, parish.ID)
	require.NoError(t, err)
	assert.Equal(t, "St. Mary", got.Name)

	templates, err := templateRepo.List(ctx, parish.ID)
	require.NoError(t, err)
	assert.Len(t, templates, len(DefaultTemplates(parish.ID)))
	for _, tpl := range templates {
		assert.True(t, tpl.IsSystem)
	}

	_, err = svc.Get(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrParishNotFound)
}
