package compile

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
)

// Unit checks a set of script files as one module. Declarations may refer to
// any declaration of the unit regardless of order, as long as no two refer to
// each other. Independent declarations are checked in parallel; Check, Eval
// and Hint commands then run in file order.
type Unit struct {
	Package *source.Package

	parser      parse.Parser
	checker     *check.Checker
	logger      *zap.Logger
	prelude     bool
	parallelism int
}

type UnitOptions struct {
	Prelude bool
	// Parallelism bounds concurrent declaration checks. Zero means GOMAXPROCS.
	Parallelism int
}

func NewUnit(name string, checker *check.Checker, logger *zap.Logger, opts UnitOptions) *Unit {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}
	return &Unit{
		Package:     source.NewPackage(name),
		parser:      parse.NewParser(),
		checker:     checker,
		logger:      logger.With(zap.String("unit", name)),
		prelude:     opts.Prelude,
		parallelism: opts.Parallelism,
	}
}

func (u *Unit) AddFile(path string) error {
	file, err := u.parser.ParseFile(path)
	if err != nil {
		return err
	}
	u.Package.AddFile(file)
	return nil
}

func (u *Unit) AddSource(path string, data []byte) error {
	file, err := u.parser.ParseSource(path, data)
	if err != nil {
		return err
	}
	u.Package.AddFile(file)
	return nil
}

// ========================

// Result is the outcome of one command.
type Result struct {
	File    string
	Command source.Command
	Output  string
	Err     error
}

func (r *Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s:%v: %v", r.File, r.Command.Position(), r.Err)
	}
	return r.Output
}

type Report struct {
	Results []*Result
	// Context holds every declaration that was accepted.
	Context *check.Context
}

func (r *Report) Failed() []*Result {
	var failed []*Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins the errors of the failed commands.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s:%v: %w", res.File, res.Command.Position(), res.Err))
	}
	return errors.Join(errs...)
}

// ========================

// Check checks every command of the unit. The returned error is reserved for
// failures that stop the unit as a whole, such as cyclic declarations or a
// cancelled ctx; rejected commands are reported in the Report.
func (u *Unit) Check(ctx context.Context) (*Report, error) {
	kctx, err := u.checker.NewPreludeContext(u.prelude)
	if err != nil {
		return nil, fmt.Errorf("loading prelude: %w", err)
	}

	cmds := u.Package.Commands()
	report := &Report{Context: kctx, Results: make([]*Result, len(cmds))}
	for i, cmd := range cmds {
		report.Results[i] = &Result{File: u.Package.Locate(i).Path, Command: cmd}
	}

	decls := u.rejectDuplicates(kctx, cmds, report)
	layers, err := source.DeclarationLayers(decls)
	if err != nil {
		return nil, err
	}

	for depth, layer := range layers {
		if err := u.checkLayer(ctx, kctx, cmds, layer, report); err != nil {
			return nil, err
		}
		u.logger.Debug("checked layer", zap.Int("depth", depth), zap.Int("declarations", len(layer)))
	}

	for i, cmd := range cmds {
		if source.IsDeclaration(cmd) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := report.Results[i]
		res.Output, res.Err = run(u.checker, kctx, cmd)
	}

	u.logger.Info("unit checked",
		zap.Int("commands", len(cmds)),
		zap.Int("layers", len(layers)),
		zap.Int("failed", len(report.Failed())),
	)
	return report, nil
}

// rejectDuplicates fails every declaration of a name that an earlier
// declaration or the prelude already provides. It returns cmds with those
// declarations removed.
func (u *Unit) rejectDuplicates(kctx *check.Context, cmds []source.Command, report *Report) []source.Command {
	decls := make([]source.Command, len(cmds))
	seen := NewSet[string]()
	for i, cmd := range cmds {
		if !source.IsDeclaration(cmd) {
			continue
		}
		var dup string
		names := source.Provides(cmd)
		for _, name := range names {
			if seen.Contains(name) || kctx.Globals().Defined(name) {
				dup = name
				break
			}
		}
		if dup != "" {
			report.Results[i].Err = &check.AlreadyDefined{Name: dup}
			continue
		}
		for _, name := range names {
			seen.Add(name)
		}
		decls[i] = cmd
	}
	return decls
}

// checkLayer stages the layer's declarations concurrently, then commits them
// in source order.
func (u *Unit) checkLayer(ctx context.Context, kctx *check.Context, cmds []source.Command, layer []int, report *Report) error {
	staged := make([]*check.Globals, len(layer))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.parallelism)
	for k, i := range layer {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			globals, err := stage(u.checker, kctx, cmds[i])
			if err != nil {
				report.Results[i].Err = err
				return nil
			}
			staged[k] = globals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for k, i := range layer {
		if staged[k] == nil {
			continue
		}
		if err := staged[k].Commit(); err != nil {
			report.Results[i].Err = err
		}
	}
	return nil
}
