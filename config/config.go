// Package config loads run configuration from a JSON file and merges it
// with CLI flag overrides: CLI flags win over JSON, which wins over the
// built-in defaults.
package config

import (
	"encoding/json"
	"os"

	"github.com/nucleolabs/codebookgen/candidates"
	"github.com/nucleolabs/codebookgen/codebookerr"
	"github.com/nucleolabs/codebookgen/params"
	"github.com/nucleolabs/codebookgen/solver"
)

// Config is the flat, JSON-friendly run configuration. Method-specific
// fields are all present but only the ones relevant to Method are used.
type Config struct {
	WorkDir      string  `json:"workDir"`
	Resume       bool    `json:"resume"`
	CodeLen      int     `json:"codeLen"`
	CodeMinED    int     `json:"codeMinED"`
	MaxRun       int     `json:"maxRun"`
	MinGCCont    float64 `json:"minGCCont"`
	MaxGCCont    float64 `json:"maxGCCont"`
	ThreadNum    int     `json:"threadNum"`
	SaveInterval int     `json:"saveInterval"`
	Verify       bool    `json:"verify"`

	Method string `json:"method"`
	Policy string `json:"policy"` // "MaxSumRow" (default) or "MinSumRow"

	LinearMinHD          int    `json:"linearMinHD"`
	RandomNumCandidates  int    `json:"randomNumCandidates"`
	RandomDedupSketch    bool   `json:"randomDedupSketch"`
	RandomKmerSize       int    `json:"randomKmerSize"`
	RandomSketchSize     int    `json:"randomSketchSize"`
	VTA                  int    `json:"vtA"`
	VTB                  int    `json:"vtB"`
	DVTSyndrome          int    `json:"dvtSyndrome"`
	FileReadPath         string `json:"fileReadPath"`
	RandomLinearNumCands int    `json:"randomLinearNumCandidates"`
	Seed                 int64  `json:"seed"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		WorkDir:      ".",
		CodeLen:      10,
		CodeMinED:    3,
		ThreadNum:    1,
		SaveInterval: 60,
		Method:       "LinearCode",
		LinearMinHD:  3,
		Policy:       "MaxSumRow",
	}
}

// SolverPolicy translates the configured policy name into a solver.Policy,
// defaulting to MaxSumRow for an empty or unrecognized value.
func (c Config) SolverPolicy() solver.Policy {
	if c.Policy == "MinSumRow" {
		return solver.MinSumRow
	}
	return solver.MaxSumRow
}

// LoadJSON reads a JSON config file into the defaults, leaving any field
// absent from the file at its default value.
func LoadJSON(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, codebookerr.Wrap(codebookerr.Configuration, "reading JSON config", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, codebookerr.Wrap(codebookerr.Configuration, "parsing JSON config", err)
	}
	return cfg, nil
}

// ToParams builds a params.Params from a fully-merged Config. The working
// directory, resume and verify settings are not part of Params and stay on
// the Config.
func (c Config) ToParams() (params.Params, error) {
	var constraints params.Constraints
	switch c.Method {
	case "LinearCode":
		constraints = params.LinearCodeConstraints{CandMinHD: c.LinearMinHD}
	case "AllStrings":
		constraints = params.AllStringsConstraints{}
	case "Random":
		constraints = params.RandomConstraints{
			NumCandidates: c.RandomNumCandidates,
			DedupSketch:   c.RandomDedupSketch,
			KmerSize:      c.RandomKmerSize,
			SketchSize:    c.RandomSketchSize,
		}
	case "VTCode":
		constraints = params.VTCodeConstraints{A: c.VTA, B: c.VTB}
	case "DifferentialVTCode":
		constraints = params.DifferentialVTCodeConstraints{Syndrome: c.DVTSyndrome}
	case "FileRead":
		constraints = params.FileReadConstraints{Path: c.FileReadPath}
	case "RandomLinear":
		constraints = params.RandomLinearConstraints{CandMinHD: c.LinearMinHD, NumCandidates: c.RandomLinearNumCands}
	default:
		return params.Params{}, codebookerr.New(codebookerr.Configuration, "unknown generation method: "+c.Method)
	}
	return params.Params{
		CodeLen:      c.CodeLen,
		CodeMinED:    c.CodeMinED,
		MaxRun:       c.MaxRun,
		MinGCCont:    c.MinGCCont,
		MaxGCCont:    c.MaxGCCont,
		ThreadNum:    c.ThreadNum,
		SaveInterval: c.SaveInterval,
		Constraints:  constraints,
	}, nil
}

// NewGenerator builds the concrete candidates.Generator that p.Constraints
// selects. It lives here rather than in params (which must not import
// candidates) or candidates (which must not import params), to keep both
// packages free of each other.
func NewGenerator(p params.Params, threads int, seed int64) (candidates.Generator, error) {
	switch c := p.Constraints.(type) {
	case params.LinearCodeConstraints:
		return candidates.LinearCode{CodeLen: p.CodeLen, MinHD: c.CandMinHD}, nil
	case params.AllStringsConstraints:
		return candidates.AllStrings{CodeLen: p.CodeLen}, nil
	case params.RandomConstraints:
		return candidates.Random{
			CodeLen:       p.CodeLen,
			NumCandidates: c.NumCandidates,
			Threads:       threads,
			Seed:          seed,
			DedupSketch:   c.DedupSketch,
			KmerSize:      uint(c.KmerSize),
			SketchSize:    uint(c.SketchSize),
		}, nil
	case params.VTCodeConstraints:
		return candidates.VTCode{CodeLen: p.CodeLen, A: c.A, B: c.B, Threads: threads}, nil
	case params.DifferentialVTCodeConstraints:
		return candidates.DifferentialVTCode{CodeLen: p.CodeLen, Syndrome: c.Syndrome, Threads: threads}, nil
	case params.FileReadConstraints:
		return candidates.FileRead{CodeLen: p.CodeLen, Path: c.Path}, nil
	case params.RandomLinearConstraints:
		return candidates.RandomLinear{CodeLen: p.CodeLen, MinHD: c.CandMinHD, NumCandidates: c.NumCandidates, Seed: seed}, nil
	default:
		return nil, codebookerr.New(codebookerr.Configuration, "unrecognized generator constraints")
	}
}
