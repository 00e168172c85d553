// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLevels(t *testing.T) {
	testCases := []struct {
		level    Level
		call     func(*Zap)
		expected string
	}{
		{DebugLevel, func(z *Zap) { z.Debug("test debug") }, "debug"},
		{InfoLevel, func(z *Zap) { z.Infof("test %s", "info") }, "info"},
		{WarningLevel, func(z *Zap) { z.Warn("test warn") }, "warn"},
		{ErrorLevel, func(z *Zap) { z.Errorf("test %s", "error") }, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.level.String(), func(t *testing.T) {
			buffer := new(bytes.Buffer)
			logger := NewZap(tc.level, buffer)
			require.Equal(t, tc.level, logger.LogLevel())
			require.True(t, logger.Enabled(tc.level))

			tc.call(logger)
			require.NoError(t, logger.Flush())

			entry := decode(t, buffer.Bytes())
			require.Equal(t, "test "+tc.expected, entry["msg"])
			require.Equal(t, tc.expected, entry["level"])
		})
	}
}

func TestZapFiltersLowerLevels(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(ErrorLevel, buffer)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warnf("hidden %d", 1)
	assert.Empty(t, buffer.String())
	assert.False(t, logger.Enabled(InfoLevel))
}

func TestZapInvalidLevelFallsBackToDebug(t *testing.T) {
	logger := NewZap(Level(42), new(bytes.Buffer))
	require.Equal(t, DebugLevel, logger.LogLevel())
	require.Equal(t, "INVALID", Level(42).String())
}

func TestZapWith(t *testing.T) {
	t.Run("adds structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("actor", "Identity@3", "executions", 7).Info("fired")

		entry := decode(t, buffer.Bytes())
		require.Equal(t, "Identity@3", entry["actor"])
		require.EqualValues(t, 7, entry["executions"])
	})

	t.Run("returns same logger when empty", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With())
	})

	t.Run("orphan value and non-string keys", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With(42, "ignored", "k", "v", "orphan").Info("msg")

		entry := decode(t, buffer.Bytes())
		require.Equal(t, "v", entry["k"])
		require.Equal(t, "orphan", entry["_"])
		require.NotContains(t, entry, "42")
	})
}

func TestZapFlushFile(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "stream.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	logger := NewZap(InfoLevel, file)
	logger.Info("persisted")
	require.NoError(t, logger.Flush())
	require.Equal(t, []any{file}, toAny(logger.LogOutput()))

	content, err := os.ReadFile(file.Name())
	require.NoError(t, err)
	require.Contains(t, string(content), "persisted")
}

func TestDiscardLogger(t *testing.T) {
	DiscardLogger.Debug("a")
	DiscardLogger.Infof("%s", "b")
	DiscardLogger.Warn("c")
	DiscardLogger.Errorf("%s", "d")
	require.Equal(t, DiscardLogger, DiscardLogger.With("k", "v"))
	require.False(t, DiscardLogger.Enabled(ErrorLevel))
	require.Equal(t, InvalidLevel, DiscardLogger.LogLevel())
	require.Len(t, DiscardLogger.LogOutput(), 1)
	require.NoError(t, DiscardLogger.Flush())
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	entry := make(map[string]any)
	require.NoError(t, json.Unmarshal(raw, &entry))
	return entry
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
