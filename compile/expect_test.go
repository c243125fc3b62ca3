package compile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
)

func TestReadExpectation(t *testing.T) {
	dir := t.TempDir()

	tagged := filepath.Join(dir, "tagged.v")
	require.NoError(t, os.WriteFile(tagged, []byte("(* expect: TerminationViolation *)\nCheck Prop.\n"), 0644))
	kind, err := ReadExpectation(tagged)
	require.NoError(t, err)
	assert.Equal(t, "TerminationViolation", kind)

	plain := filepath.Join(dir, "plain.v")
	require.NoError(t, os.WriteFile(plain, []byte("(* just a comment *)\nCheck Prop.\n"), 0644))
	kind, err = ReadExpectation(plain)
	require.NoError(t, err)
	assert.Empty(t, kind)

	_, err = ReadExpectation(filepath.Join(dir, "missing.v"))
	assert.Error(t, err)
}

func TestHasKind(t *testing.T) {
	termination := &check.TerminationViolation{FixName: "loop"}
	wrapped := fmt.Errorf("a.v:2:1: %w", termination)
	joined := errors.Join(errors.New("other"), wrapped)

	assert.True(t, HasKind(termination, "TerminationViolation"))
	assert.True(t, HasKind(joined, "TerminationViolation"))
	assert.False(t, HasKind(joined, "UnboundVariable"))
	assert.True(t, HasKind(&source.CycleError{Names: []string{"a", "b"}}, "CycleError"))
	assert.False(t, HasKind(termination, "NoSuchKind"))
	assert.False(t, HasKind(nil, "TerminationViolation"))
}
