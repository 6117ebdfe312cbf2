package pipeline

import (
	"bytes"
	"io"
	"sync"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/pass"
	"github.com/svgshrink/svgshrink/style"
	"github.com/svgshrink/svgshrink/svgerr"
	"github.com/svgshrink/svgshrink/visitor"
)

// ParserMode selects the XML reader a document is parsed with. §6:
// "permissive mode is the default when not preserving source ranges".
type ParserMode int

const (
	ParsePermissive ParserMode = iota
	ParseStrict
)

// passOrder is §4.G's fixed grouping: canonicalizing passes, then
// removal passes, then sorting/formatting passes. Within a group,
// order follows §6's pass-identifier listing.
var passOrder = []string{
	// canonicalize
	"convertColors", "convertEllipseToCircle", "convertShapeToPath",
	"convertPathData", "convertTransform", "cleanupAttrs",
	"cleanupNumericValues", "cleanupListOfValues", "minifyStyles",

	// remove / restructure
	"removeDoctype", "removeXmlProcInst", "removeComments",
	"removeMetadata", "removeTitle", "removeDesc", "removeStyleElement",
	"removeScriptElement", "removeXMLNS", "removeEditorsNSData",
	"removeEmptyContainers", "removeEmptyText", "removeUselessDefs",
	"removeHiddenElems", "removeRasterImages", "removeOffCanvasPaths",
	"removeEmptyAttrs", "removeUnknownsAndDefaults",
	"removeNonInheritableGroupAttrs", "removeDeprecatedAttrs",
	"removeUnusedNS", "cleanupIds", "mergePaths", "collapseGroups",
	"moveElemsAttrsToGroup", "moveGroupAttrsToElems",
	"removeAttributesBySelector", "removeDimensions",

	// sort / format
	"sortAttrs", "sortDefsChildren",
}

func init() {
	if len(passOrder) != len(pass.Registry) {
		panic("pipeline: passOrder is out of sync with pass.Registry")
	}
	for _, id := range passOrder {
		if _, ok := pass.Registry[id]; !ok {
			panic("pipeline: passOrder names unregistered pass " + id)
		}
	}
}

// Result carries a run's serialized output alongside its diagnostics.
type Result struct {
	Output   []byte
	Warnings svgerr.List
	Passes   int // final multipass_count
}

// Run parses, optimizes, and re-serializes one document. The
// multipass loop re-runs the full ordered pass sequence while any pass
// reports a change, bounded by cfg.MultipassCap (§4.G; reaching the
// cap is not an error, per §8's convergence-bound invariant).
func Run(r io.Reader, mode ParserMode, cfg *Config, writeOpts dom.WriteOptions) (*Result, error) {
	arena, root, err := parseWith(r, mode)
	if err != nil {
		return nil, err
	}

	multipassCap := cfg.MultipassCap
	if multipassCap <= 0 {
		multipassCap = 10
	}

	info := &visitor.Info{}
	for info.MultipassCount = 0; info.MultipassCount < multipassCap; info.MultipassCount++ {
		sheets := style.CollectSheets(arena, root)
		ctx := visitor.NewContext(arena, root, info, sheets)

		anyChanged := false
		for _, id := range passOrder {
			setting := cfg.Passes[id]
			if !setting.Enabled {
				continue
			}
			p := pass.Registry[id](setting.Options)
			changed, err := p.Run(ctx)
			if err != nil {
				if svgErr, ok := err.(*svgerr.Error); ok && svgErr.Kind == svgerr.Precheck {
					info.Warnings = append(info.Warnings, svgErr)
					continue
				}
				return nil, err
			}
			if changed {
				anyChanged = true
			}
		}
		if !anyChanged {
			break
		}
	}

	out := dom.Serialize(arena, root, writeOpts)
	return &Result{Output: []byte(out), Warnings: info.Warnings, Passes: info.MultipassCount}, nil
}

func parseWith(r io.Reader, mode ParserMode) (*dom.Arena, dom.NodeID, error) {
	if mode == ParseStrict {
		return dom.ParseStrict(r)
	}
	return dom.ParsePermissive(r)
}

// Job is one document in a RunBatch call: a name (for error
// attribution only; never used for ordering) and its source bytes.
type Job struct {
	Name string
	Data []byte
}

// BatchResult pairs a Job's Result with any top-level error, preserving
// the input order of Jobs even though each document is processed on
// its own goroutine (§5: "a batch driver may run N documents on N
// threads simultaneously ... output is ordered by the batch driver").
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunBatch runs jobs in parallel, one arena per goroutine, and returns
// results in the same order as jobs.
func RunBatch(jobs []Job, mode ParserMode, cfg *Config, writeOpts dom.WriteOptions) []BatchResult {
	results := make([]BatchResult, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			res, err := Run(bytes.NewReader(job.Data), mode, cfg, writeOpts)
			results[i] = BatchResult{Name: job.Name, Result: res, Err: err}
		}(i, job)
	}
	wg.Wait()
	return results
}
