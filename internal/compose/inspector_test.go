package compose

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/tickle/internal/service"
	"github.com/trly/tickle/internal/testutil"
)

func TestInspector_Inspect(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shop")
	file := writeComposeFile(t, dir, "compose.yml", `services:
  web:
    image: nginx
  api:
    image: ghcr.io/example/api:latest
`)

	project, err := NewInspector(true, testutil.NewTestLogger(t)).Inspect(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "shop", project.Name)
	assert.Equal(t, file, project.File)
	assert.Equal(t, []string{"api", "web"}, project.Services)
}

func TestInspector_Unreadable(t *testing.T) {
	inspector := NewInspector(false, testutil.NewTestLogger(t))

	_, err := inspector.Inspect(context.Background(), filepath.Join(t.TempDir(), "compose.yml"))
	require.Error(t, err)
	assert.True(t, service.IsKind(err, service.ErrComposeFileUnreadable))
	assert.True(t, IsFileNotFoundError(err))

	file := writeComposeFile(t, t.TempDir(), "compose.yml", "services: [\n")
	_, err = inspector.Inspect(context.Background(), file)
	assert.Equal(t, 5, service.KindOf(err).ExitCode())
}
