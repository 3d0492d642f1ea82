package storage

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	g := &Gateway{bucket: "portfolio", publicURL: "http://localhost:9000"}

	assert.Equal(t,
		"http://localhost:9000/portfolio/images/abc.png",
		g.PublicURL("images/abc.png"))
}

func TestObjectKeyShape(t *testing.T) {
	key := objectKey(FolderImages, "Holiday Photo.PNG")

	// Folder prefix, then a uuid, then the original extension lowercased.
	require.True(t, strings.HasPrefix(key, FolderImages+"/"))
	require.True(t, strings.HasSuffix(key, ".png"))

	middle := strings.TrimSuffix(strings.TrimPrefix(key, FolderImages+"/"), ".png")
	_, err := uuid.Parse(middle)
	assert.NoError(t, err)

	// Extensionless names produce a bare uuid key.
	bare := objectKey(FolderDocuments, "README")
	require.True(t, strings.HasPrefix(bare, FolderDocuments+"/"))
	_, err = uuid.Parse(strings.TrimPrefix(bare, FolderDocuments+"/"))
	assert.NoError(t, err)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NoSuchBucket"}))
	assert.True(t, isNotFound(fmt.Errorf("head object: %w", &smithy.GenericAPIError{Code: "404"})))

	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("connection refused")))
	assert.False(t, isNotFound(nil))
}
