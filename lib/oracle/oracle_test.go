package oracle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePass(t *testing.T) {
	assert.NoError(t, Validate("builtin", 499500, 499500))
	assert.NoError(t, Validate("empty", 0, 0))
}

func TestValidateFail(t *testing.T) {
	err := Validate("hamt", 499499, 499500)
	require.Error(t, err)

	var v *CorrectnessViolation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, "hamt", v.Probe)
	assert.Equal(t, int64(499499), v.Actual)
	assert.Equal(t, int64(499500), v.Expected)
	assert.Contains(t, err.Error(), "test case is broken")
	assert.Contains(t, err.Error(), "diff -1")
}

func TestIsCorrectnessViolation(t *testing.T) {
	err := Validate("btree", 1, 2)
	assert.True(t, IsCorrectnessViolation(err))
	assert.True(t, IsCorrectnessViolation(fmt.Errorf("profile std: %w", err)))

	assert.False(t, IsCorrectnessViolation(nil))
	assert.False(t, IsCorrectnessViolation(errors.New("other")))
}
