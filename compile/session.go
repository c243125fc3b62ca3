package compile

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/store"
)

// Session executes commands one at a time against a growing symbol table.
// A session with a journal records every command that changed the table.
type Session struct {
	ID      string
	Prelude bool

	checker *check.Checker
	parser  parse.Parser
	ctx     *check.Context
	journal *store.Journal
	logger  *zap.Logger
}

type SessionOptions struct {
	Prelude bool
	// Journal, when set, persists the session.
	Journal *store.Journal
}

func NewSession(ctx context.Context, checker *check.Checker, logger *zap.Logger, opts SessionOptions) (*Session, error) {
	s, err := newSession(uuid.NewString(), checker, logger, opts)
	if err != nil {
		return nil, err
	}
	if s.journal != nil {
		if err := s.journal.CreateSession(ctx, s.ID, s.Prelude); err != nil {
			return nil, err
		}
	}
	s.logger.Info("session started", zap.Bool("prelude", s.Prelude), zap.Bool("persistent", s.journal != nil))
	return s, nil
}

// ResumeSession rebuilds a journaled session by replaying its commands.
func ResumeSession(ctx context.Context, checker *check.Checker, logger *zap.Logger, journal *store.Journal, id string) (*Session, error) {
	info, err := journal.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	texts, err := journal.Commands(ctx, id)
	if err != nil {
		return nil, err
	}

	s, err := newSession(id, checker, logger, SessionOptions{Prelude: info.Prelude})
	if err != nil {
		return nil, err
	}
	for i, text := range texts {
		if _, err := s.Execute(ctx, text); err != nil {
			return nil, fmt.Errorf("replaying command %d of session %s: %w", i+1, id, err)
		}
	}
	s.journal = journal
	s.logger.Info("session resumed", zap.Int("commands", len(texts)))
	return s, nil
}

func newSession(id string, checker *check.Checker, logger *zap.Logger, opts SessionOptions) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	kctx, err := checker.NewPreludeContext(opts.Prelude)
	if err != nil {
		return nil, fmt.Errorf("loading prelude: %w", err)
	}
	return &Session{
		ID:      id,
		Prelude: opts.Prelude,
		checker: checker,
		parser:  parse.NewParser(),
		ctx:     kctx,
		journal: opts.Journal,
		logger:  logger.With(zap.String("session", id)),
	}, nil
}

func (s *Session) Context() *check.Context {
	return s.ctx
}

func (s *Session) Checker() *check.Checker {
	return s.checker
}

// Execute parses and runs one command. Check prints "term : type", Eval the
// normal form, and the other commands print nothing.
func (s *Session) Execute(ctx context.Context, input string) (string, error) {
	cmd, err := s.parser.ParseCommand(input)
	if err != nil {
		return "", err
	}
	return s.Run(ctx, cmd)
}

func (s *Session) Run(ctx context.Context, cmd source.Command) (string, error) {
	out, err := run(s.checker, s.ctx, cmd)
	if err != nil {
		s.logger.Debug("command rejected", zap.Stringer("command", cmd), zap.Error(err))
		return "", err
	}
	if s.journal != nil && changesGlobals(cmd) {
		if err := s.journal.Append(ctx, s.ID, cmd.Source()); err != nil {
			return "", err
		}
	}
	return out, nil
}

// ========================

func run(checker *check.Checker, ctx *check.Context, cmd source.Command) (string, error) {
	switch cmd := cmd.(type) {
	case *source.Definition, *source.Axiom, *source.Inductive:
		staged, err := stage(checker, ctx, cmd)
		if err != nil {
			return "", err
		}
		return "", staged.Commit()
	case *source.Check:
		ty, err := checker.InferType(ctx, cmd.Term)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v : %v", cmd.Term, ty), nil
	case *source.Eval:
		if _, err := checker.InferType(ctx, cmd.Term); err != nil {
			return "", err
		}
		return checker.Normalize(ctx, cmd.Term).String(), nil
	case *source.Hint:
		return "", ctx.AddHint(cmd.Name)
	default:
		spew.Dump(cmd)
		panic("unreachable")
	}
}

// stage checks a declaration on a fork of ctx's symbol table.
func stage(checker *check.Checker, ctx *check.Context, cmd source.Command) (*check.Globals, error) {
	switch cmd := cmd.(type) {
	case *source.Definition:
		staged, _, err := checker.StageDefinition(ctx, cmd.Name, cmd.Type, cmd.Body)
		return staged, err
	case *source.Axiom:
		return checker.StageDeclaration(ctx, cmd.Name, cmd.Type)
	case *source.Inductive:
		params := lo.Map(cmd.Params, func(b source.Binder, _ int) check.Binder {
			return check.Binder{Name: b.Name, Type: b.Type}
		})
		ctors := lo.Map(cmd.Constructors, func(c source.Constructor, _ int) check.ConstructorDecl {
			return check.ConstructorDecl{Name: c.Name, Type: c.Type}
		})
		return checker.StageInductive(ctx, cmd.Name, params, cmd.Sort, ctors)
	default:
		spew.Dump(cmd)
		panic("unreachable")
	}
}

func changesGlobals(cmd source.Command) bool {
	_, hint := cmd.(*source.Hint)
	return hint || source.IsDeclaration(cmd)
}
