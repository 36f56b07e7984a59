//go:build !windows

package webgpu

import (
	"testing"

	"github.com/born-ml/stdalgo/internal/backend/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailable(t *testing.T) {
	assert.False(t, IsAvailable())

	space, err := New()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, space)

	_, err = NewWithHost(cpu.New())
	require.ErrorIs(t, err, ErrUnavailable)
}
