package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"psychrometer/internal/config"
	"psychrometer/pkg/psychro"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
	outputText = "text"
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	return 1
}

// calcCommand computes a single reading with the configured engine and prints
// the result. Without --all only absolute humidity is reported.
func calcCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "calc",
		Short:         "Computes psychrometric properties for one reading",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			temperature, _ := cmd.Flags().GetFloat64("temperature")
			humidity, _ := cmd.Flags().GetFloat64("humidity")
			all, _ := cmd.Flags().GetBool("all")
			output, _ := cmd.Flags().GetString("output")

			res, err := calculate(cfg, temperature, humidity, all)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatCalcError(err)) //nolint: errcheck

				return &exitError{code: 1, err: err}
			}

			if err := render(cmd.OutOrStdout(), output, res); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatCalcError(err)) //nolint: errcheck

				return err
			}

			return nil
		},
	}

	cmd.Flags().Float64("temperature", 0, "Dry-bulb temperature in °C")
	cmd.Flags().Float64("humidity", 0, "Relative humidity in percent, truncated to an integer")
	cmd.Flags().Bool("all", false, "Report every property instead of absolute humidity only")
	cmd.Flags().StringP("output", "o", outputText, "Output format: json, yaml or text")
	_ = cmd.MarkFlagRequired("temperature")
	_ = cmd.MarkFlagRequired("humidity")

	return cmd
}

func calculate(cfg *config.Config, temperature, humidity float64, all bool) (any, error) {
	engine, err := cfg.NewEngine()
	if err != nil {
		return nil, err
	}

	if all {
		return engine.Properties(temperature, humidity)
	}

	return engine.Compute(temperature, humidity)
}

func formatCalcError(err error) string {
	if code := psychro.Code(err); code != "" {
		return fmt.Sprintf("error: %s: %s", code, err.Error())
	}

	return fmt.Sprintf("error: %s", err.Error())
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	case outputText, "":
		return renderText(w, v)
	default:
		return &exitError{code: 2, err: errors.Errorf("unknown output format %q", format)}
	}
}

func renderText(w io.Writer, v any) error {
	switch r := v.(type) {
	case psychro.Result:
		_, err := fmt.Fprintf(w, "absolute_humidity: %g %s\n", r.AbsoluteHumidity, r.Unit)

		return err
	case psychro.Properties:
		lines := map[string]*float64{
			string(psychro.PropertyAbsoluteHumidity):        r.AbsoluteHumidity,
			string(psychro.PropertyDewpoint):                r.Dewpoint,
			string(psychro.PropertyWetBulb):                 r.WetBulb,
			string(psychro.PropertyEnthalpy):                r.Enthalpy,
			string(psychro.PropertyHumidityRatio):           r.HumidityRatio,
			string(psychro.PropertySaturationVaporPressure): r.SaturationVaporPressure,
			"vapor_pressure":                                r.VaporPressure,
			"vapor_pressure_pa":                             r.VaporPressurePa,
		}
		names := make([]string, 0, len(lines))
		for name, value := range lines {
			if value != nil {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			if _, err := fmt.Fprintf(w, "%s: %g %s\n", name, *lines[name], r.Units[name]); err != nil {
				return err
			}
		}

		return nil
	default:
		return errors.Errorf("unsupported result %T", v)
	}
}
