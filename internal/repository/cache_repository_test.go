package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "lessonplan")
	var dest map[string]string

	err := repo.Get(context.Background(), "modules:grade:5", &dest)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "modules:grade:5", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, repo.Delete(context.Background(), "modules:grade:5"))
	assert.NoError(t, repo.Close())
	assert.Equal(t, "lessonplan:x", repo.key("x"))
}
