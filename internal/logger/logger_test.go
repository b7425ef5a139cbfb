package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name          string
		loglevel      string
		logformat     string
		expectedError error
	}{
		{
			name:          "valid logger",
			loglevel:      "INFO",
			logformat:     "text",
			expectedError: nil,
		},
		{
			name:          "valid logger",
			loglevel:      "DEBUG",
			logformat:     "json",
			expectedError: nil,
		},
		{
			name:          "valid logger",
			loglevel:      "WARN",
			logformat:     "tint",
			expectedError: nil,
		},
		{
			name:          "invalid log format",
			loglevel:      "INFO",
			logformat:     "invalid format",
			expectedError: ErrInvalidFormat,
		},
		{
			name:          "invalid log level",
			loglevel:      "INVALID_LEVEL",
			logformat:     "text",
			expectedError: ErrInvalidLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sut, err := New(tc.loglevel, tc.logformat)

			if sut != nil {
				sut.Info("test")
			}

			assert.ErrorIs(t, err, tc.expectedError)
			if tc.expectedError == nil {
				assert.True(t, sut.Enabled(context.Background(), slog.LevelInfo))
			}
		})
	}
}
