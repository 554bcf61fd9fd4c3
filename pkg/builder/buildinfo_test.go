package builder

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	Version, Commit, Date = "v0.1.0", "abcdef0", "2026-10-18"
	defer func() { Version, Commit, Date = "unknown", "unknown", "unknown" }()

	info := BuildInfo()
	assert.True(t, strings.HasPrefix(info, "pktclass v0.1.0 (abcdef0 2026-10-18) "), info)
	assert.True(t, strings.HasSuffix(info, runtime.GOOS+"/"+runtime.GOARCH), info)
}
