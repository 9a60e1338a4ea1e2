// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"strings"

	"github.com/katalvlaran/saltmag/internal/logging"
	"github.com/katalvlaran/saltmag/salt2"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the configuration shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "saltmag",
		Short: "Magnitudes, covariances and spectra of a SALT2-style SED model.",
		Long: `saltmag loads a model directory (SALT2.INFO, SED templates, error maps)
and evaluates it through the filters of a JSON filter file.

The model is a version name resolved under $SALT2_MODELPATH or
$SNDATA_ROOT/models/SALT2, or a directory path.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.initConfig() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.saltmag.yaml)")
	pf.StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	pf.StringP("model", "m", "", "model version or directory")
	pf.String("extrap", "", "late-time model file overriding the model info")
	pf.Int("init-mask", 0, "init bits: 64 strict error-map coverage, 128 legacy color flag")
	pf.StringP("filters", "f", "", "JSON filter file")
	for _, name := range []string{"loglevel", "model", "extrap", "init-mask", "filters"} {
		a.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), pf.Lookup(name))
	}

	root.AddCommand(newMagCmd(a), newCovarCmd(a), newSpecCmd(a), newSummaryCmd(a))

	return root
}

// initConfig reads the config file and SALTMAG_* environment variables.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".saltmag")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("saltmag")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return logging.SetLogLevel(a.v.GetString("loglevel"))
}

// model initializes the configured model version.
func (a *app) model() (*salt2.Model, error) {
	version := a.v.GetString("model")
	if version == "" {
		return nil, errors.New("saltmag: no model; set --model, SALTMAG_MODEL or 'model' in the config file")
	}

	return salt2.Initialize(version, a.v.GetString("extrap"), a.v.GetInt("init_mask"))
}

// filters reads the configured filter file.
func (a *app) filters() (*filterSet, error) {
	path := a.v.GetString("filters")
	if path == "" {
		return nil, errors.New("saltmag: no filter file; set --filters, SALTMAG_FILTERS or 'filters' in the config file")
	}

	return readFilters(path)
}

// addParamFlags registers the light-curve parameters on cmd.
func addParamFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64("z", 0.1, "redshift")
	fs.Float64("x0", 1e-5, "amplitude")
	fs.Float64("mu", 0, "distance modulus; when > 0 it replaces x0 through alpha, beta, x1, c")
	fs.Float64("alpha", 0.14, "stretch standardization coefficient (with --mu)")
	fs.Float64("beta", 3.1, "color standardization coefficient (with --mu)")
	fs.Float64("x1", 0, "stretch")
	fs.Float64("c", 0, "color")
	fs.Float64("mwebv", 0, "Milky-Way E(B-V)")
	fs.Float64("rv-host", 0, "host RV")
	fs.Float64("av-host", 0, "host AV")
}

// paramsFrom reads the flags registered by addParamFlags. The error model
// uses the same redshift and stretch.
func paramsFrom(cmd *cobra.Command) salt2.Params {
	get := func(name string) float64 {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	p := salt2.Params{
		Z: get("z"), X0: get("x0"), X1: get("x1"), C: get("c"),
		MWEBV: get("mwebv"), RVHost: get("rv-host"), AVHost: get("av-host"),
	}
	if mu := get("mu"); mu > 0 {
		p.X0 = salt2.X0Calc(get("alpha"), get("beta"), p.X1, p.C, mu)
	}
	p.ZForErr, p.X1ForErr = p.Z, p.X1

	return p
}
