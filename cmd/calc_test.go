package main

import (
	"bytes"
	"testing"

	"psychrometer/internal/config"
	"psychrometer/pkg/psychro"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Engine.Pressure = 101325
	cfg.Engine.Precision = 2
	cfg.Engine.Rounding = "half-away-from-zero"
	cfg.Engine.Method = "vapor-pressure"
	cfg.Engine.MinTemperature = -273.15
	cfg.Engine.MaxTemperature = 1000
	cfg.Engine.MaxHumidity = 100
	cfg.Engine.WetBulbIterations = 100
	cfg.Engine.WetBulbTolerance = 0.001

	return cfg
}

func TestCalcCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantErr  string
		wantCode int
	}{
		{
			name:    "text",
			args:    []string{"--temperature", "20", "--humidity", "50"},
			wantOut: "absolute_humidity: 8.64 g/m³\n",
		},
		{
			name:    "json",
			args:    []string{"--temperature", "20", "--humidity", "50", "-o", "json"},
			wantOut: "\"absolute_humidity\": 8.64",
		},
		{
			name:    "yaml all",
			args:    []string{"--temperature", "20", "--humidity", "50", "--all", "-o", "yaml"},
			wantOut: "dewpoint: ",
		},
		{
			name:     "out of range",
			args:     []string{"--temperature", "20", "--humidity", "101"},
			wantErr:  "error: OUT_OF_RANGE",
			wantCode: 1,
		},
		{
			name:     "unknown format",
			args:     []string{"--temperature", "20", "--humidity", "50", "-o", "xml"},
			wantErr:  "unknown output format",
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			cmd := calcCommand(testConfig(t))
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantCode != 0 {
				require.Error(t, err)
				require.Equal(t, tt.wantCode, exitCode(err))
				require.Contains(t, stderr.String(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			require.Contains(t, stdout.String(), tt.wantOut)
		})
	}
}

func TestRenderText_Properties(t *testing.T) {
	dew := 9.26
	ah := 8.65

	var buf bytes.Buffer
	require.NoError(t, renderText(&buf, psychro.Properties{
		Dewpoint:         &dew,
		AbsoluteHumidity: &ah,
		Units:            map[string]string{"dewpoint": "°C", "absolute_humidity": "g/m³"},
	}))
	require.Equal(t, "absolute_humidity: 8.65 g/m³\ndewpoint: 9.26 °C\n", buf.String())
}

func TestConfigArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "none", args: []string{"calc", "--all"}},
		{name: "short", args: []string{"-c", "prod.yml", "serve"}, want: []string{"-c", "prod.yml"}},
		{name: "long", args: []string{"serve", "--config", "prod.yml"}, want: []string{"-c", "prod.yml"}},
		{name: "long equals", args: []string{"serve", "--config=prod.yml"}, want: []string{"-c=prod.yml"}},
		{name: "short equals", args: []string{"-c=prod.yml"}, want: []string{"-c=prod.yml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, configArgs(tt.args))
		})
	}
}
