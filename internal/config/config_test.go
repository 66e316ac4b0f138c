package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"armoury-showroom/internal/config"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := config.Default()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "data", c.DataDir)
	assert.Empty(t, c.AdminPassword)
	assert.NotEmpty(t, c.UpstreamGLB)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("GLB_UPSTREAM_URL", "http://localhost:1234/scene.glb")

	c := config.Load()
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "hunter2", c.AdminPassword)
	assert.Equal(t, "http://localhost:1234/scene.glb", c.UpstreamGLB)
}
