package testhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/udhos/equalfile"
)

// AssertEqualFiles asserts that files at want and actual have the same content
func AssertEqualFiles(t testing.TB, want, actual string) bool {
	t.Helper()
	cmp := equalfile.New(nil, equalfile.Options{})
	equal, err := cmp.CompareFile(want, actual)
	assert.NoError(t, err)
	return assert.True(t, equal)
}
