package server

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRouter_DefaultsToReleaseMode verifies the engine runs quietly unless
// GIN_MODE is set explicitly.
func TestRouter_DefaultsToReleaseMode(t *testing.T) {
	t.Setenv("GIN_MODE", "")

	router := New(nil, nil).Router()
	require.NotNil(t, router)
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}

// TestRouter_RegistersAPIRoutes verifies the core endpoints are mounted
// under /api.
func TestRouter_RegistersAPIRoutes(t *testing.T) {
	router := New(nil, nil).Router()

	mounted := map[string]bool{}
	for _, route := range router.Routes() {
		mounted[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/users",
		"GET /api/calibration/passage",
		"POST /api/calibration/submit",
		"GET /api/profile",
		"GET /api/content",
		"POST /api/content/:id/pregenerate",
		"GET /api/content/:id/chapters/:chapter/paragraphs/:index/variant",
		"POST /api/reading/sessions",
		"GET /api/word-levels",
	} {
		assert.True(t, mounted[want], "route %s not registered", want)
	}
}
