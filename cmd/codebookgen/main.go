// This is the entry point for the codebookgen command line utility.
//
// Initial arg parsing and app definition is done entirely through
// "github.com/urfave/cli/v2", the same way the rest of this codebase's
// tooling is wired up. The app's single "generate" command drives the
// whole pipeline: candidate generation, barcode filtering, conflict-graph
// construction, greedy reduction, verification, and output.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/nucleolabs/codebookgen/checkpoint"
	"github.com/nucleolabs/codebookgen/checks"
	"github.com/nucleolabs/codebookgen/codebookerr"
	"github.com/nucleolabs/codebookgen/conflictgraph"
	"github.com/nucleolabs/codebookgen/config"
	"github.com/nucleolabs/codebookgen/params"
	"github.com/nucleolabs/codebookgen/solver"
	"github.com/nucleolabs/codebookgen/verify"
)

var log zerolog.Logger

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	if err := application().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// application defines the codebookgen app: its global flags and its one
// "generate" subcommand. Separated from main for testing's sake.
func application() *cli.App {
	return &cli.App{
		Name:  "codebookgen",
		Usage: "Generate and verify DNA barcode codebooks with a guaranteed minimum edit distance.",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Run the full candidate -> filter -> conflict-graph -> solve -> verify pipeline.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "Path to a JSON config file."},
					&cli.StringFlag{Name: "workdir", Value: ".", Usage: "Working directory for checkpoints and output."},
					&cli.BoolFlag{Name: "resume", Usage: "Resume from an existing checkpoint in workdir."},
					&cli.IntFlag{Name: "code-len", Usage: "Barcode length n."},
					&cli.IntFlag{Name: "min-ed", Usage: "Target minimum edit distance D."},
					&cli.IntFlag{Name: "max-run", Usage: "Maximum homopolymer run length (0 disables)."},
					&cli.Float64Flag{Name: "min-gc", Usage: "Minimum GC content (0 disables the window)."},
					&cli.Float64Flag{Name: "max-gc", Usage: "Maximum GC content (0 disables the window)."},
					&cli.IntFlag{Name: "threads", Usage: "Worker thread count."},
					&cli.IntFlag{Name: "save-interval", Usage: "Seconds between checkpoints (0 disables)."},
					&cli.BoolFlag{Name: "verify", Usage: "Re-verify the finished codebook after writing it."},
					&cli.StringFlag{Name: "method", Usage: "Candidate generation method."},
					&cli.StringFlag{Name: "policy", Usage: "Greedy reduction policy: MaxSumRow (default) or MinSumRow."},
				},
				Action: func(c *cli.Context) error {
					return generateCommand(c)
				},
			},
		},
	}
}

// generateCommand merges CLI flags over a JSON config (CLI wins), then
// runs the pipeline end to end.
func generateCommand(c *cli.Context) error {
	cfg, err := config.LoadJSON(c.String("config"))
	if err != nil {
		return err
	}
	applyFlagOverrides(c, &cfg)

	dir, err := checkpoint.New(cfg.WorkDir)
	if err != nil {
		return err
	}

	p, err := cfg.ToParams()
	if err != nil {
		return err
	}

	var resuming bool
	if cfg.Resume {
		if prior, err := dir.ReadParams(); err == nil {
			p = prior
			resuming = true
			log.Info().Msg("resuming prior run from checkpoint")
		}
	}
	candidateList, err := loadOrGenerateCandidates(dir, p, cfg, resuming)
	if err != nil {
		return err
	}
	log.Info().Int("count", len(candidateList)).Msg("candidates ready")
	if err := dir.WriteParams(p); err != nil {
		log.Warn().Err(err).Msg("could not persist run parameters")
	}

	filter := checks.BarcodeFilter{MinGCContent: p.MinGCCont, MaxGCContent: p.MaxGCCont, MaxRun: p.MaxRun}
	filtered := filter.Apply(candidateList)
	if len(filtered) != len(candidateList) {
		log.Info().Int("kept", len(filtered)).Int("dropped", len(candidateList)-len(filtered)).Msg("barcode filter applied")
	}
	if err := dir.WriteCandidates(filtered); err != nil {
		log.Warn().Err(err).Msg("could not persist filtered candidate set")
	}

	codebookIdx := runGraphAndSolve(dir, filtered, p, cfg, resuming)
	codebook := solver.Codebook(codebookIdx, filtered)
	log.Info().Int("size", len(codebook)).Msg("codebook solved")

	outPath := filepath.Join(cfg.WorkDir, outputFileName(p, len(codebook)))
	if err := writeCodebook(outPath, p, codebook); err != nil {
		return codebookerr.Wrap(codebookerr.Filesystem, "writing output codebook", err)
	}
	log.Info().Str("path", outPath).Msg("codebook written")

	doVerify := cfg.Verify
	if c.IsSet("verify") {
		doVerify = c.Bool("verify")
	}
	if doVerify {
		res := verify.Verify(codebook, p.CodeMinED, p.ThreadNum)
		if !res.Success {
			// The codebook file above is still written: a verification
			// failure is a bug to investigate, not grounds to withhold
			// the output that triggered it.
			return codebookerr.New(codebookerr.Invariant,
				fmt.Sprintf("verification failed: %q and %q violate the minimum edit distance", res.FailA, res.FailB))
		}
		log.Info().Msg("verification passed")
	}

	dir.DeleteAll(p.ThreadNum)
	return nil
}

func applyFlagOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("workdir") {
		cfg.WorkDir = c.String("workdir")
	}
	if c.IsSet("resume") {
		cfg.Resume = c.Bool("resume")
	}
	if c.IsSet("code-len") {
		cfg.CodeLen = c.Int("code-len")
	}
	if c.IsSet("min-ed") {
		cfg.CodeMinED = c.Int("min-ed")
	}
	if c.IsSet("max-run") {
		cfg.MaxRun = c.Int("max-run")
	}
	if c.IsSet("min-gc") {
		cfg.MinGCCont = c.Float64("min-gc")
	}
	if c.IsSet("max-gc") {
		cfg.MaxGCCont = c.Float64("max-gc")
	}
	if c.IsSet("threads") {
		cfg.ThreadNum = c.Int("threads")
	}
	if c.IsSet("save-interval") {
		cfg.SaveInterval = c.Int("save-interval")
	}
	if c.IsSet("method") {
		cfg.Method = c.String("method")
	}
	if c.IsSet("policy") {
		cfg.Policy = c.String("policy")
	}
}

// loadOrGenerateCandidates reuses a resumed run's filtered candidate set
// when present; otherwise it runs the configured generator fresh.
func loadOrGenerateCandidates(dir checkpoint.Dir, p params.Params, cfg config.Config, resuming bool) ([]string, error) {
	if resuming {
		if cands, err := dir.ReadCandidates(); err == nil && len(cands) > 0 {
			return cands, nil
		}
	}
	gen, err := config.NewGenerator(p, cfg.ThreadNum, cfg.Seed)
	if err != nil {
		return nil, err
	}
	log.Info().Str("generator", gen.Info()).Msg("generating candidates")
	return gen.Generate()
}

// runGraphAndSolve builds the conflict graph (or reloads it from a
// resumed stage-2 snapshot), then reduces it to an independent set,
// checkpointing both stages along the way.
func runGraphAndSolve(dir checkpoint.Dir, filtered []string, p params.Params, cfg config.Config, resuming bool) []int {
	saveInterval := time.Duration(p.SaveInterval) * time.Second
	policy := cfg.SolverPolicy()

	if resuming {
		if stage, ok, _ := dir.ReadStage(); ok && stage == checkpoint.StageSolving {
			if g, remaining, accepted, err := dir.ReadSolverState(); err == nil {
				log.Info().Msg("resuming from solver checkpoint")
				return solver.Solve(g, len(filtered), solver.SolveOptions{
					Policy:       policy,
					SaveInterval: saveInterval,
					Checkpoint:   func(remaining map[int]struct{}, accepted []int, g *conflictgraph.Graph) { dir.WriteSolverState(g, remaining, accepted) },
					Remaining:    remaining,
					Accepted:     accepted,
				})
			}
		}
	}

	g := buildConflictGraph(dir, filtered, p, saveInterval, resuming)
	log.Info().Int("edges", g.EdgeCount()).Msg("conflict graph built")

	dir.WriteStage(checkpoint.StageSolving)
	log.Info().Msg("solving codebook")
	return solver.Solve(g, len(filtered), solver.SolveOptions{
		Policy:       policy,
		SaveInterval: saveInterval,
		Checkpoint:   func(remaining map[int]struct{}, accepted []int, g *conflictgraph.Graph) { dir.WriteSolverState(g, remaining, accepted) },
	})
}

// buildConflictGraph runs stage 1, resuming each worker's stride from its
// checkpointed (lastI, edges) when a prior run was interrupted mid-build.
func buildConflictGraph(dir checkpoint.Dir, filtered []string, p params.Params, saveInterval time.Duration, resuming bool) *conflictgraph.Graph {
	buildOpts := conflictgraph.BuildOptions{
		Threads:      p.ThreadNum,
		MinED:        p.CodeMinED,
		SaveInterval: saveInterval,
		Checkpoint:   dir.WriteWorkerProgress,
	}
	if resuming {
		if stage, ok, _ := dir.ReadStage(); ok && stage == checkpoint.StageBuildingAdjacency {
			startIndex := make([]int, p.ThreadNum)
			var preloaded [][2]int
			for t := 0; t < p.ThreadNum; t++ {
				if lastI, edges, err := dir.ReadWorkerProgress(t); err == nil {
					startIndex[t] = lastI
					preloaded = append(preloaded, edges...)
				} else {
					startIndex[t] = t
				}
			}
			buildOpts.StartIndex = startIndex
			buildOpts.Preloaded = preloaded
			log.Info().Msg("resuming from adjacency-building checkpoint")
		}
	}

	dir.WriteStage(checkpoint.StageBuildingAdjacency)
	log.Info().Msg("building conflict graph")
	return conflictgraph.Build(filtered, buildOpts)
}

func outputFileName(p params.Params, codebookSize int) string {
	return fmt.Sprintf("CodeSize-%d_CodeLen-%d_MinED-%d.txt", codebookSize, p.CodeLen, p.CodeMinED)
}

// writeCodebook emits the header block the output format expects (a
// human-readable run summary of the parameters, method, thread count and
// codebook size, closed by a line of '=' characters), followed by one
// barcode per line.
func writeCodebook(path string, p params.Params, codebook []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# codebookgen run summary\n")
	fmt.Fprintf(f, "# codeLen=%d minED=%d maxRun=%d minGC=%.3f maxGC=%.3f\n", p.CodeLen, p.CodeMinED, p.MaxRun, p.MinGCCont, p.MaxGCCont)
	fmt.Fprintf(f, "# method=%s threads=%d codebookSize=%d\n", p.Constraints.Method(), p.ThreadNum, len(codebook))
	fmt.Fprintln(f, strings.Repeat("=", 40))
	for _, c := range codebook {
		if _, err := fmt.Fprintln(f, c); err != nil {
			return err
		}
	}
	return nil
}
