package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/mock"
	distillslog "github.com/ham-zax/distill/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs output size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*distill.ExtractResult, error) {
				return &distill.ExtractResult{Content: "<p>body</p>", Title: "T"}, nil
			},
		}

		e := distillslog.NewLoggingExtractor(inner, logger)
		result, err := e.Extract("<html>page</html>")

		require.NoError(t, err)
		assert.Equal(t, "T", result.Title)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "output_bytes=11")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*distill.ExtractResult, error) {
				return nil, errors.New("engine fault")
			},
		}

		e := distillslog.NewLoggingExtractor(inner, logger)
		_, err := e.Extract("<html>page</html>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"engine fault\"")
	})
}
