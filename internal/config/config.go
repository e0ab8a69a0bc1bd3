// Package config is for app-wide settings that are unmarshalled from Viper:
// defaults, an optional headloop.yaml, HEADLOOP_* environment variables, and
// any bound command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"headloop/internal/thermo"
)

// Config holds the tunable design parameters. The defaults reproduce the
// published headloop protocol (1000 nM oligo, 50 mM Na⁺, 1.5 mM Mg²⁺,
// 0.2 mM dNTPs, 3 °C tolerance).
type Config struct {
	// Tm-difference threshold (°C) below which a tag counts as matched
	Tolerance float64 `mapstructure:"tolerance"`

	// total oligo concentration, nM
	DNANM float64 `mapstructure:"dna-nm"`

	// monovalent cations, mM
	NaMM float64 `mapstructure:"na-mm"`

	// magnesium, mM
	MgMM float64 `mapstructure:"mg-mm"`

	// dNTPs, mM
	DNTPsMM float64 `mapstructure:"dntps-mm"`
}

// New returns a Config populated from defaults, the settings file (explicit
// path, or headloop.yaml in the working directory), HEADLOOP_* env vars, and
// flags. A nil flag set and an empty file path are both fine.
func New(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := thermo.Default()
	v.SetDefault("tolerance", 3.0)
	v.SetDefault("dna-nm", def.OligoNM)
	v.SetDefault("na-mm", def.NaMM)
	v.SetDefault("mg-mm", def.MgMM)
	v.SetDefault("dntps-mm", def.DNTPsMM)

	v.SetEnvPrefix("HEADLOOP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName("headloop")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, err
			}
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Conditions maps the reagent settings onto the thermo collaborator.
func (c Config) Conditions() thermo.Conditions {
	return thermo.Conditions{
		OligoNM: c.DNANM,
		NaMM:    c.NaMM,
		MgMM:    c.MgMM,
		DNTPsMM: c.DNTPsMM,
	}
}
