package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontsieve"
	"github.com/npillmayer/fontsieve/fontstore"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontsieve.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontsieve.cli")
}

// parseTimeout limits the time a command waits for a font to be parsed.
const parseTimeout = 30 * time.Second

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":            "go",
		"trace.fontsieve.cli":        "Info",
		"trace.fontsieve.store":      "Error",
		"trace.fontsieve.sched":      "Error",
		"trace.fontsieve.decoder":    "Error",
		"trace.fontsieve.introspect": "Error",
		"trace.fontsieve.load":       "Error",
		"trace.fontsieve":            "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontnames := flag.String("font", "", "Comma-separated list of fonts to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)     // will set the correct level later
	pterm.Info.Println("Welcome to FontSieve CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("fs > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := NewIntp(fontsieve.NewStore())
	intp.repl = repl
	//
	// load fonts to use
	if *fontnames != "" {
		if err := intp.loadFonts(strings.Split(*fontnames, ",")...); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	store *fontstore.Store
	repl  *readline.Instance
	group string // category id of the group last listed
}

// NewIntp creates an interpreter working on a font store.
func NewIntp(store *fontstore.Store) *Intp {
	return &Intp{store: store}
}

func (intp *Intp) String() string {
	f, ok := intp.store.Current()
	if !ok {
		return "( no font )"
	}
	s := fmt.Sprintf("( font=%s )", f.Name)
	if intp.group != "" {
		s += fmt.Sprintf(" -> %s", intp.group)
	}
	return s
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	LOAD
	FONTS
	SELECT
	INFO
	GROUPS
	GLYPHS
	TOGGLE
	GROUP
	RESET
	ESTIMATE
	FEATURES
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"load":     LOAD,
	"fonts":    FONTS,
	"select":   SELECT,
	"info":     INFO,
	"groups":   GROUPS,
	"glyphs":   GLYPHS,
	"toggle":   TOGGLE,
	"group":    GROUP,
	"reset":    RESET,
	"estimate": ESTIMATE,
	"features": FEATURES,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"fonts",
	"select",
	"info",
	"groups",
	"glyphs",
	"toggle",
	"group",
	"reset",
	"estimate",
	"features",
}

// parseCommand splits a command line into operations. Operations are separated
// by blanks and have the form "op", "op:arg" or "op:arg:format",
// e.g. "select:Inter groups" or "glyphs:greek:names".
func (intp *Intp) parseCommand(line string) (*Command, error) {
	command := &Command{}
	for i := range command.op {
		command.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many operations: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.SplitN(step, ":", 3)
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[code], command.op[i].arg)
		}
	}
	return command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	LOAD:     loadOp,
	FONTS:    fontsOp,
	SELECT:   selectOp,
	INFO:     infoOp,
	GROUPS:   groupsOp,
	GLYPHS:   glyphsOp,
	TOGGLE:   toggleOp,
	GROUP:    groupOp,
	RESET:    resetOp,
	ESTIMATE: estimateOp,
	FEATURES: featuresOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFonts(refs ...string) error {
	added, err := intp.store.AddFiles(refs...)
	if err != nil {
		return err
	}
	for _, f := range added {
		tracer().Infof("loaded font %s (%s)", f.Name, f.FileName)
	}
	if _, ok := intp.store.Current(); !ok && len(added) > 0 {
		_, err = intp.store.Select(added[0].ID)
	}
	return err
}

// ----------------------------------------------------------------------

var ErrNoFont = errors.New("no font selected")

// current returns the selected font and its summary.
func (intp *Intp) current() (*fontstore.Font, *introspect.ParsedFont, error) {
	f, ok := intp.store.Current()
	if !ok {
		return nil, nil, ErrNoFont
	}
	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()
	pf, err := intp.store.Parsed(ctx, f.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("font %s: %w", f.Name, err)
	}
	return f, pf, nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
