// internal/cli/cli.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"headloop/internal/config"
	"headloop/internal/thermo"
	"headloop/internal/version"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatFASTA = "fasta"
)

// Options holds all CLI flags after config resolution.
type Options struct {
	// Single-design input
	Sense       string
	Antisense   string
	Context     string
	Orientation string

	// Batch input
	Input string

	// Settings
	ConfigFile string
	Tolerance  float64
	DNANM      float64
	NaMM       float64
	MgMM       float64
	DNTPsMM    float64

	// Output
	Output     string
	Candidates bool
	Header     bool // true unless --no-header
	Quiet      bool
	Verbose    bool
}

// RunFunc is the work the root command hands off to once flags are parsed
// and the config is resolved.
type RunFunc func(cmd *cobra.Command, opt *Options) error

// NewRoot builds the headloop root command.
func NewRoot(run RunFunc) *cobra.Command {
	opt := &Options{}
	var noHeader bool

	cmd := &cobra.Command{
		Use:   "headloop",
		Short: "Design headloop primers for headloop suppression PCR",
		Long: `headloop designs tagged PCR primers for headloop suppression PCR, which
blocks amplification of a known haplotype. Given a primer pair and the guide
sequence with at least 15 nt of downstream context, it picks the tag whose
melting temperature best matches each primer and prepends it to the right
primer for the guide's strand orientation.

Example:
  headloop --sense AGGTTATTTGCTGTCATGGCTTTG \
           --antisense ACTTTCACATCATTCCACTGG \
           --context ACCATCATGTGCTGGACGTCCGGATTGATGGAGCG \
           --orientation antisense`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opt.Header = !noHeader
			opt.Orientation = strings.ToLower(opt.Orientation)
			if err := validate(opt); err != nil {
				return err
			}
			cfg, err := config.New(opt.ConfigFile, cmd.Flags())
			if err != nil {
				return err
			}
			opt.Tolerance = cfg.Tolerance
			opt.DNANM = cfg.DNANM
			opt.NaMM = cfg.NaMM
			opt.MgMM = cfg.MgMM
			opt.DNTPsMM = cfg.DNTPsMM
			return run(cmd, opt)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false

	fs.StringVarP(&opt.Sense, "sense", "s", "", "sense primer (5'→3') [*]")
	fs.StringVarP(&opt.Antisense, "antisense", "a", "", "antisense primer (5'→3') [*]")
	fs.StringVarP(&opt.Context, "context", "c", "", "guide sequence plus ≥15 nt downstream context [*]")
	fs.StringVarP(&opt.Orientation, "orientation", "r", "", "guide strand relative to the sense primer: sense | antisense [*]")
	fs.StringVarP(&opt.Input, "input", "i", "", "TSV batch file: id sense antisense context orientation")

	fs.StringVar(&opt.ConfigFile, "config", "", "settings file (default headloop.yaml in the working directory)")
	def := thermo.Default()
	fs.Float64Var(&opt.Tolerance, "tolerance", 3.0, "Tm-difference tolerance in °C [3]")
	fs.Float64Var(&opt.DNANM, "dna-nm", def.OligoNM, "total oligo concentration in nM [1000]")
	fs.Float64Var(&opt.NaMM, "na-mm", def.NaMM, "monovalent cation concentration in mM [50]")
	fs.Float64Var(&opt.MgMM, "mg-mm", def.MgMM, "Mg2+ concentration in mM [1.5]")
	fs.Float64Var(&opt.DNTPsMM, "dntps-mm", def.DNTPsMM, "dNTP concentration in mM [0.2]")

	fs.StringVarP(&opt.Output, "output", "o", FormatText, "output format: text | json | fasta [text]")
	fs.BoolVar(&opt.Candidates, "candidates", false, "emit the scored candidate table instead of the designed pair [false]")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text output [false]")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "only log errors [false]")
	fs.BoolVarP(&opt.Verbose, "verbose", "v", false, "log debug detail [false]")

	return cmd
}

func validate(opt *Options) error {
	switch opt.Output {
	case FormatText, FormatJSON, FormatFASTA:
	default:
		return fmt.Errorf("invalid --output %q (want text, json, or fasta)", opt.Output)
	}
	if opt.Candidates && opt.Output == FormatFASTA {
		return fmt.Errorf("--candidates supports text and json output only")
	}
	if opt.Input != "" {
		if opt.Sense != "" || opt.Antisense != "" || opt.Context != "" || opt.Orientation != "" {
			return fmt.Errorf("--input excludes --sense/--antisense/--context/--orientation")
		}
		return nil
	}
	if opt.Sense == "" || opt.Antisense == "" || opt.Context == "" || opt.Orientation == "" {
		return fmt.Errorf("need --sense, --antisense, --context, and --orientation (or --input FILE)")
	}
	return nil
}
