// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"headloop/internal/cli"
	"headloop/internal/design"
	"headloop/internal/oligo"
	"headloop/internal/output"
	"headloop/internal/primer"
	"headloop/internal/thermo"
)

// Exit codes: 0 success, 2 usage or design failure, 3 output failure.
const (
	exitOK     = 0
	exitUsage  = 2
	exitOutput = 3
)

// RunContext parses argv, runs the design, and writes results to stdout.
// Diagnostics go to stderr. The return value is the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := exitOK
	root := cli.NewRoot(func(cmd *cobra.Command, opt *cli.Options) error {
		code = execute(opt, stdout, stderr)
		return nil
	})
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitUsage
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func execute(opt *cli.Options, stdout, stderr io.Writer) int {
	logger := newLogger(stderr, opt)

	reqs, err := requests(opt)
	if err != nil {
		logger.Error().Err(err).Msg("invalid input")
		return exitUsage
	}

	cond := thermo.Conditions{
		OligoNM: opt.DNANM,
		NaMM:    opt.NaMM,
		MgMM:    opt.MgMM,
		DNTPsMM: opt.DNTPsMM,
	}
	d := design.Designer{
		Tolerance: opt.Tolerance,
		Tm:        func(seq string) (float64, error) { return thermo.Temp(seq, cond) },
	}

	outw := bufio.NewWriter(stdout)
	var werr error
	if opt.Candidates {
		werr = runCandidates(d, reqs, opt, outw, logger)
	} else {
		werr = runDesigns(d, reqs, opt, outw, logger)
	}
	if werr == nil {
		werr = outw.Flush()
	}
	if output.IsBrokenPipe(werr) {
		return exitOK
	}
	if werr != nil {
		if errors.Is(werr, errDesign) {
			return exitUsage
		}
		_, _ = fmt.Fprintln(stderr, werr)
		return exitOutput
	}
	return exitOK
}

// errDesign marks failures already logged; execute maps it to exitUsage.
var errDesign = errors.New("design failed")

func runDesigns(d design.Designer, reqs []design.Request, opt *cli.Options, w io.Writer, logger zerolog.Logger) error {
	list := make([]output.Designed, 0, len(reqs))
	for _, req := range reqs {
		pair, err := d.Design(req)
		if err != nil {
			logger.Error().Err(err).Str("request", req.ID).Msg("design failed")
			return errDesign
		}
		for _, tp := range []design.TaggedPrimer{pair.Sense, pair.Antisense} {
			ev := logger.Debug()
			if !tp.Tag.WithinTol {
				ev = logger.Warn()
			}
			ev.Str("request", req.ID).
				Str("role", tp.ID).
				Int("frame", tp.Tag.Frame).
				Float64("tag_tm", tp.Tag.Tm).
				Float64("tag_diff", tp.Tag.Diff).
				Msg(tagMessage(tp))
		}
		list = append(list, output.Designed{RequestID: req.ID, Pair: pair})
	}
	switch opt.Output {
	case cli.FormatJSON:
		return output.WriteJSON(w, list)
	case cli.FormatFASTA:
		return output.WriteFASTA(w, list)
	default:
		return output.WriteText(w, list, opt.Header)
	}
}

func runCandidates(d design.Designer, reqs []design.Request, opt *cli.Options, w io.Writer, logger zerolog.Logger) error {
	sets := make([]output.CandidateSet, 0, len(reqs))
	for _, req := range reqs {
		rc, off, err := d.Candidates(req)
		if err != nil {
			logger.Error().Err(err).Str("request", req.ID).Msg("design failed")
			return errDesign
		}
		sets = append(sets, output.CandidateSet{RequestID: req.ID, RC: rc, Offset: off})
	}
	if opt.Output == cli.FormatJSON {
		return output.WriteCandidatesJSON(w, sets)
	}
	return output.WriteCandidates(w, sets, opt.Header)
}

func tagMessage(tp design.TaggedPrimer) string {
	if tp.Tag.WithinTol {
		return "headloop tag matched"
	}
	return "could not optimise headloop tag"
}

func requests(opt *cli.Options) ([]design.Request, error) {
	if opt.Input != "" {
		return primer.LoadTSV(opt.Input)
	}
	req := design.Request{
		ID:          "manual",
		Orientation: design.Orientation(strings.ToLower(opt.Orientation)),
	}
	var err error
	if req.Sense, err = oligo.Validate(opt.Sense); err != nil {
		return nil, fmt.Errorf("sense primer: %v", err)
	}
	if req.Antisense, err = oligo.Validate(opt.Antisense); err != nil {
		return nil, fmt.Errorf("antisense primer: %v", err)
	}
	if req.GuideContext, err = oligo.Validate(opt.Context); err != nil {
		return nil, fmt.Errorf("guide context: %v", err)
	}
	return []design.Request{req}, nil
}

func newLogger(stderr io.Writer, opt *cli.Options) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if opt.Verbose {
		lvl = zerolog.DebugLevel
	}
	if opt.Quiet {
		lvl = zerolog.ErrorLevel
	}
	cw := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}
