package service_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/service"
)

func TestStoreRecipeImagePassThrough(t *testing.T) {
	svc := service.NewImageService(nil)
	ctx := context.Background()

	url, err := svc.StoreRecipeImage(ctx, "http://example.com/image.png")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/image.png", url)

	url, err = svc.StoreRecipeImage(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestStoreRecipeImageDataURIWithoutStorage(t *testing.T) {
	svc := service.NewImageService(nil)

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pixels"))
	url, err := svc.StoreRecipeImage(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, payload, url)
}

func TestStoreRecipeImageRejectsBadBase64(t *testing.T) {
	svc := service.NewImageService(nil)

	_, err := svc.StoreRecipeImage(context.Background(), "data:image/png;base64,@@not-base64@@")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
