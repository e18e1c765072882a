package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCallback_Success(t *testing.T) {
	page, err := renderCallback(callbackView{Name: "Ana", HomeURL: "/", DelaySeconds: 2})
	require.NoError(t, err)

	assert.Contains(t, page, `<meta http-equiv="refresh" content="2;url=/">`)
	assert.Contains(t, page, "Welcome, Ana")
	assert.NotContains(t, page, "Return home")
}

func TestRenderCallback_Error(t *testing.T) {
	page, err := renderCallback(callbackView{Error: "invalid or expired state token", HomeURL: "/"})
	require.NoError(t, err)

	assert.Contains(t, page, "invalid or expired state token")
	assert.Contains(t, page, `<a href="/">Return home</a>`)
	assert.NotContains(t, page, "http-equiv")
}

func TestRenderCallback_EscapesInput(t *testing.T) {
	page, err := renderCallback(callbackView{Error: "<script>alert(1)</script>", HomeURL: "/"})
	require.NoError(t, err)
	assert.NotContains(t, page, "<script>")
}
