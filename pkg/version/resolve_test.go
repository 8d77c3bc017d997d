package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	origV, origB, origC := Version, BuildTime, Commit
	defer func() { Version, BuildTime, Commit = origV, origB, origC }()

	installed := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	t.Run("build info fills unset fields", func(t *testing.T) {
		Version, BuildTime, Commit = "dev", unset, unset

		info := resolve(installed)

		assert.Equal(t, "v0.4.1", info.Version)
		assert.Equal(t, "0123456", info.Commit)
		assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildTime)
	})

	t.Run("ldflags take precedence", func(t *testing.T) {
		Version, BuildTime, Commit = "1.2.3", "2025-12-22T00:00:00Z", "deadbeef"

		info := resolve(installed)

		assert.Equal(t, "1.2.3", info.Version)
		assert.Equal(t, "deadbeef", info.Commit)
		assert.Equal(t, "2025-12-22T00:00:00Z", info.BuildTime)
	})

	t.Run("devel build keeps dev", func(t *testing.T) {
		Version, BuildTime, Commit = "dev", unset, unset

		info := resolve(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

		assert.Equal(t, "dev", info.Version)
		assert.Equal(t, unset, info.Commit)
	})

	t.Run("no build info", func(t *testing.T) {
		Version = "dev"

		assert.Equal(t, Name, resolve(nil).Name)
		assert.Equal(t, "dev", resolve(nil).Version)
	})
}
