package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"framemap/internal/frames"
	"framemap/internal/render"
)

// errUsage marks input rejected by the shell before it reaches the frames.
var errUsage = errors.New("usage")

type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	run     func(s *Session, args []string) error
}

var (
	commands = map[string]*command{}
	ordered  []*command
)

// register adds a command under its name and aliases.
func register(c *command) {
	if c == nil || c.name == "" || c.run == nil {
		return
	}
	commands[c.name] = c
	for _, a := range c.aliases {
		commands[a] = c
	}
	ordered = append(ordered, c)
}

func lookup(name string) (*command, bool) {
	c, ok := commands[strings.ToLower(name)]
	return c, ok
}

func usageError(c *command, format string, args ...any) error {
	return fmt.Errorf("%w: %s (%s)", errUsage, fmt.Sprintf(format, args...), c.usage)
}

// parseInts parses exactly len(names) integer arguments.
func parseInts(c *command, args []string, names ...string) ([]int, error) {
	if len(args) != len(names) {
		return nil, usageError(c, "expected %d argument(s), got %d", len(names), len(args))
	}
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, usageError(c, "%s must be an integer, got %q", names[i], a)
		}
		out[i] = v
	}
	return out, nil
}

func init() {
	register(&command{
		name:    "new",
		aliases: []string{"1", "frame"},
		usage:   "new ROWS COLS",
		summary: "create a frame",
		run:     cmdNew,
	})
	register(&command{
		name:    "link",
		aliases: []string{"2", "portal", "button"},
		usage:   "link FROM TO ROW COL",
		summary: "link a cell of FROM with the same cell of TO",
		run:     cmdLink,
	})
	register(&command{
		name:    "show",
		aliases: []string{"3", "display"},
		usage:   "show [ID]",
		summary: "display one frame or all frames",
		run:     cmdShow,
	})
	register(&command{
		name:    "options",
		aliases: []string{"avail"},
		usage:   "options FROM",
		summary: "list frames that can still be linked at each cell of FROM",
		run:     cmdOptions,
	})
	register(&command{
		name:    "block",
		usage:   "block FRAME ROW COL",
		summary: "mark a cell as unusable for links",
		run:     cmdBlock,
	})
	register(&command{
		name:    "frames",
		aliases: []string{"ls"},
		usage:   "frames",
		summary: "list frames",
		run:     cmdFrames,
	})
	register(&command{
		name:    "settings",
		usage:   "settings",
		summary: "show effective settings",
		run:     cmdSettings,
	})
	register(&command{
		name:    "help",
		aliases: []string{"?", "menu"},
		usage:   "help",
		summary: "show this menu",
		run:     cmdHelp,
	})
	register(&command{
		name:    "exit",
		aliases: []string{"4", "quit"},
		usage:   "exit",
		summary: "leave the shell",
		run:     cmdExit,
	})
}

func cmdNew(s *Session, args []string) error {
	v, err := parseInts(commands["new"], args, "ROWS", "COLS")
	if err != nil {
		return err
	}
	if v[0] <= 0 || v[1] <= 0 {
		return usageError(commands["new"], "rows and columns must be positive")
	}
	f, err := s.mgr.AddFrame(v[0], v[1])
	if err != nil {
		return err
	}
	s.printf("A (%s) frame, ID: %d, created.\n", f.Size(), f.ID())
	return nil
}

func cmdLink(s *Session, args []string) error {
	v, err := parseInts(commands["link"], args, "FROM", "TO", "ROW", "COL")
	if err != nil {
		return err
	}
	from, to, row, col := v[0], v[1], v[2], v[3]
	dst, err := s.mgr.Frame(to)
	if err != nil {
		return err
	}
	if err := s.mgr.SetLink(row, col, from, to); err != nil {
		return err
	}
	if !dst.In(row, col) && s.mgr.Policy() == frames.BoundsOneSided {
		s.printf("Frame %d has no cell at (%d, %d); the link is one-sided.\n", to, row, col)
	}
	return nil
}

func cmdShow(s *Session, args []string) error {
	switch len(args) {
	case 0:
		return render.Frames(s.out, s.theme, s.mgr.Frames())
	case 1:
		v, err := parseInts(commands["show"], args, "ID")
		if err != nil {
			return err
		}
		f, err := s.mgr.Frame(v[0])
		if err != nil {
			return err
		}
		return render.Frame(s.out, s.theme, f)
	default:
		return usageError(commands["show"], "too many arguments")
	}
}

func cmdOptions(s *Session, args []string) error {
	v, err := parseInts(commands["options"], args, "FROM")
	if err != nil {
		return err
	}
	opts, err := s.mgr.PlacementOptions(v[0])
	if err != nil {
		return err
	}
	src, err := s.mgr.Frame(v[0])
	if err != nil {
		return err
	}
	return render.Options(s.out, s.theme, src, opts)
}

func cmdBlock(s *Session, args []string) error {
	v, err := parseInts(commands["block"], args, "FRAME", "ROW", "COL")
	if err != nil {
		return err
	}
	return s.mgr.Block(v[0], v[1], v[2])
}

func cmdFrames(s *Session, args []string) error {
	if len(args) != 0 {
		return usageError(commands["frames"], "no arguments expected")
	}
	return render.List(s.out, s.theme, s.mgr.Frames())
}

func cmdSettings(s *Session, _ []string) error {
	return render.Parameters(s.out, s.theme, s.cfg.Parameters())
}

func cmdHelp(s *Session, _ []string) error {
	s.printf("%s\n", s.theme.Heading("Menu:"))
	for _, c := range ordered {
		names := c.usage
		if len(c.aliases) > 0 {
			names += " (" + strings.Join(c.aliases, ", ") + ")"
		}
		s.printf("  %-36s %s\n", names, c.summary)
	}
	return nil
}

func cmdExit(s *Session, _ []string) error {
	s.done = true
	return nil
}

// describe turns a refusal into the message shown to the operator.
func describe(err error) string {
	switch {
	case errors.Is(err, errUsage):
		return err.Error()
	case errors.Is(err, frames.ErrOccupied), errors.Is(err, frames.ErrTargetClaimed):
		return "cell in use: " + err.Error()
	case errors.Is(err, frames.ErrInvalidDimensions):
		return "cannot create frame: " + err.Error()
	case errors.Is(err, frames.ErrOutOfBounds):
		return "out of bounds: " + err.Error()
	default:
		return err.Error()
	}
}
