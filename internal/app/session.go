package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"framemap/internal/frames"
	"framemap/internal/render"

	"go.uber.org/zap"
)

// Session is one run of the command shell over a frame collection.
type Session struct {
	cfg   *Config
	mgr   *frames.Manager
	theme render.Theme
	out   io.Writer
	log   *zap.Logger

	done    bool
	refused int
}

// NewSession creates a shell writing to out. A nil logger discards logs.
func NewSession(cfg *Config, out io.Writer, log *zap.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, out: out, log: log, theme: ThemeFor(cfg.Shell.Color, out)}
	s.mgr = frames.NewManager(
		frames.WithLogger(log.Named("frames")),
		frames.WithBoundsPolicy(cfg.Policy()),
		frames.WithNotices(func(n frames.Notice) { s.printf("%s\n", n) }),
	)
	return s
}

// Manager exposes the session's frames.
func (s *Session) Manager() *frames.Manager { return s.mgr }

// Refused returns how many commands failed so far.
func (s *Session) Refused() int { return s.refused }

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Exec runs a single command line. Blank lines and # comments are ignored.
func (s *Session) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	c, ok := lookup(fields[0])
	if !ok {
		return fmt.Errorf("%w: unknown command %q, try help", errUsage, fields[0])
	}
	return c.run(s, fields[1:])
}

// Run reads commands from in until exit or end of input. In interactive mode
// the menu and prompt are printed and refusals never end the session; in
// script mode the first refusal ends it when stop_on_error is set.
func (s *Session) Run(in io.Reader, interactive bool) error {
	if interactive {
		_ = cmdHelp(s, nil)
	}
	sc := bufio.NewScanner(in)
	lineNo := 0
	for !s.done {
		if interactive {
			s.printf("%s", s.cfg.Shell.Prompt)
		}
		if !sc.Scan() {
			break
		}
		lineNo++
		line := sc.Text()
		err := s.Exec(line)
		if err == nil {
			continue
		}
		s.refused++
		s.log.Info("command refused",
			zap.Int("line", lineNo),
			zap.String("input", strings.TrimSpace(line)),
			zap.String("code", string(frames.Classify(err))),
			zap.Error(err))
		s.printf("%s\n", s.theme.Failure(describe(err)))
		if !interactive && s.cfg.Shell.StopOnError {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	if interactive && !s.done {
		s.printf("\n")
	}
	return nil
}
