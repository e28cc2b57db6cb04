package main

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/lampstand/sermonrec/core"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"debug level", "debug", false},
		{"info level", "info", false},
		{"warn level", "warn", false},
		{"error level", "error", false},
		{"uppercase accepted", "DEBUG", false},
		{"invalid level", "verbose", true},
		{"empty level", "", true},
	}

	original := slog.Default()
	defer slog.SetDefault(original)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := flag.NewFlagSet("test", flag.ContinueOnError)
			set.String("log-level", tt.level, "")
			ctx := cli.NewContext(cli.NewApp(), set, nil)

			err := setupLogger(ctx)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestChannelCounts(t *testing.T) {
	sermons := []*core.Sermon{
		{Channel: "gracechurch"},
		{Channel: "gracechurch"},
		{Channel: "materials"},
		{Channel: "gracechurch"},
		{Channel: "hopecenter"},
	}

	lines := channelCounts(sermons)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "gracechurch")
	assert.Contains(t, lines[0], "3")

	// Equal counts fall back to name order.
	assert.Contains(t, lines[1], "hopecenter")
	assert.Contains(t, lines[2], "materials")
}

func TestChannelCounts_Empty(t *testing.T) {
	assert.Empty(t, channelCounts(nil))
}

func TestClearRequiresConfirmation(t *testing.T) {
	app := &cli.App{
		Name: "sermonrec",
		Commands: []*cli.Command{
			{
				Name:   "clear",
				Action: clearCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes"},
				},
			},
		},
	}

	err := app.Run([]string{"sermonrec", "clear"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}
