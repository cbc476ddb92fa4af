package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	orig := Version
	Version = "v1.2.0"
	t.Cleanup(func() { Version = orig })

	var b bytes.Buffer
	PrintBuildData(&b)
	assert.Equal(t, "Build version: v1.2.0\nBuild date: N/A\nBuild commit: N/A\n", b.String())
}
