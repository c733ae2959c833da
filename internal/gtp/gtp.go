// Package gtp implements the Go Text Protocol line reader and command
// dispatcher: parsing one command per line (with an optional leading
// numeric id), routing it through a handlers map to the engine
// Controller, and formatting "= .../? ..." responses.
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/engine"
)

// MaxBoardSize is GTP's hard ceiling on board size.
const MaxBoardSize = 25

type request struct {
	id   string
	args []string
}

type response struct {
	message string
	success bool
}

func success(message string) response { return response{message, true} }
func failure(message string) response  { return response{message, false} }

func (r response) String(id string) string {
	prefix := "="
	if !r.success {
		prefix = "?"
	}
	return prefix + id + " " + r.message + "\n\n"
}

type handler func(c *engine.Controller, req request) response

// Dispatcher owns the handlers map and the name/version reported to
// the controller; one Dispatcher is built per process and driven by Run.
type Dispatcher struct {
	c        *engine.Controller
	handlers map[string]handler
}

// New builds a Dispatcher wrapping c, reporting name/version to GTP's
// name/version commands.
func New(c *engine.Controller, name, version string) *Dispatcher {
	d := &Dispatcher{c: c}
	d.handlers = baseHandlers()
	d.handlers["name"] = func(c *engine.Controller, req request) response { return success(name) }
	d.handlers["version"] = func(c *engine.Controller, req request) response { return success(version) }
	return d
}

var wordRe = regexp.MustCompile(`\S+`)

// parseLine splits a GTP input line into an optional numeric id and the
// command + arguments, skipping blank lines and comment lines (leading '#').
func parseLine(line string) (id string, command string, args []string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", nil, false
	}
	words := wordRe.FindAllString(line, -1)
	if len(words) == 0 {
		return "", "", nil, false
	}
	if _, err := strconv.Atoi(words[0]); err == nil {
		id = words[0]
		words = words[1:]
		if len(words) == 0 {
			return "", "", nil, false
		}
	}
	return id, words[0], words[1:], true
}

// Run reads commands from in, dispatches them to the controller, and
// writes responses to out until "quit" is handled or in is exhausted.
func (d *Dispatcher) Run(in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return nil
			}
			if err != io.EOF {
				return err
			}
		}
		id, command, args, ok := parseLine(line)
		if !ok {
			if err == io.EOF {
				return nil
			}
			continue
		}

		idSuffix := ""
		if id != "" {
			idSuffix = id
		}

		h, known := d.handlers[command]
		if !known {
			fmt.Fprint(out, failure("unknown command").String(idSuffix))
		} else {
			resp := func() (r response) {
				defer func() {
					if p := recover(); p != nil {
						r = failure(fmt.Sprintf("internal error: %v", p))
					}
				}()
				return h(d.c, request{id: id, args: args})
			}()
			fmt.Fprint(out, resp.String(idSuffix))
		}

		if command == "quit" {
			return nil
		}
		if err == io.EOF {
			return nil
		}
	}
}

// baseHandlers builds the command table shared by every Dispatcher; name
// and version are filled in separately by New since they vary per build.
func baseHandlers() map[string]handler {
	h := map[string]handler{
		"protocol_version":       func(c *engine.Controller, req request) response { return success("2") },
		"boardsize":              handleBoardsize,
		"clear_board":            func(c *engine.Controller, req request) response { c.ClearBoard(); return success("") },
		"komi":                   handleKomi,
		"play":                   handlePlay,
		"genmove":                handleGenmove,
		"kgs-genmove_cleanup":    handleKgsGenmoveCleanup,
		"reg_genmove":            handleRegGenmove,
		"final_score":            func(c *engine.Controller, req request) response { return success(c.FinalScore()) },
		"final_status_list":      handleFinalStatusList,
		"time_settings":          handleTimeSettings,
		"time_left":              handleTimeLeft,
		"loadsgf":                handleLoadSGF,
		"quit":                   func(c *engine.Controller, req request) response { return success("") },
		"showboard":              func(c *engine.Controller, req request) response { return success("\n" + c.ShowBoard()) },
		"gogui-analyze_commands": handleGoguiAnalyzeCommands,
		"gogui-ownership":        func(c *engine.Controller, req request) response { return success(c.GoguiOwnership()) },
	}
	h["list_commands"] = func(c *engine.Controller, req request) response {
		return handleListCommands(c, req, h)
	}
	h["known_command"] = func(c *engine.Controller, req request) response {
		return handleKnownCommand(c, req, h)
	}
	return h
}

func handleListCommands(c *engine.Controller, req request, h map[string]handler) response {
	names := make([]string, 0, len(h)+2)
	names = append(names, "name", "version")
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return success(strings.Join(names, "\n"))
}

func handleKnownCommand(c *engine.Controller, req request, h map[string]handler) response {
	if len(req.args) != 1 {
		return failure("wrong number of arguments")
	}
	if req.args[0] == "name" || req.args[0] == "version" {
		return success("true")
	}
	_, ok := h[req.args[0]]
	return success(strconv.FormatBool(ok))
}

func handleBoardsize(c *engine.Controller, req request) response {
	if len(req.args) != 1 {
		return failure("wrong number of arguments")
	}
	size, err := strconv.Atoi(req.args[0])
	if err != nil {
		return failure("unacceptable size")
	}
	if !c.SetBoardSize(size) {
		return failure("unacceptable size")
	}
	return success("")
}

func handleKomi(c *engine.Controller, req request) response {
	if len(req.args) != 1 {
		return failure("wrong number of arguments")
	}
	komi, err := strconv.ParseFloat(req.args[0], 64)
	if err != nil {
		return failure("syntax error")
	}
	c.SetKomi(komi)
	return success("")
}

func parseColor(s string) (board.Color, bool) {
	switch strings.ToLower(s) {
	case "b", "black":
		return board.Black, true
	case "w", "white":
		return board.White, true
	default:
		return 0, false
	}
}

func parseVertex(s string, color board.Color) (board.Move, bool) {
	if strings.EqualFold(s, "pass") {
		return board.NewPass(color), true
	}
	if strings.EqualFold(s, "resign") {
		return board.NewResign(color), true
	}
	coord, err := board.CoordFromGTP(s)
	if err != nil {
		return board.Move{}, false
	}
	return board.NewPlay(color, coord), true
}

func handlePlay(c *engine.Controller, req request) response {
	if len(req.args) != 2 {
		return failure("wrong number of arguments")
	}
	color, ok := parseColor(req.args[0])
	if !ok {
		return failure("syntax error")
	}
	m, ok := parseVertex(req.args[1], color)
	if !ok {
		return failure("syntax error")
	}
	if err := c.Play(m); err != nil {
		return failure("illegal move")
	}
	return success("")
}

func moveResponse(m board.Move) response {
	switch m.Kind {
	case board.Pass:
		return success("pass")
	case board.Resign:
		return success("resign")
	default:
		return success(m.Coord.ToGTP())
	}
}

func handleGenmove(c *engine.Controller, req request) response {
	if len(req.args) != 1 {
		return failure("wrong number of arguments")
	}
	color, ok := parseColor(req.args[0])
	if !ok {
		return failure("syntax error")
	}
	return moveResponse(c.Genmove(color, true))
}

func handleRegGenmove(c *engine.Controller, req request) response {
	if len(req.args) != 1 {
		return failure("wrong number of arguments")
	}
	color, ok := parseColor(req.args[0])
	if !ok {
		return failure("syntax error")
	}
	return moveResponse(c.Genmove(color, false))
}

func handleKgsGenmoveCleanup(c *engine.Controller, req request) response {
	if len(req.args) != 1 {
		return failure("wrong number of arguments")
	}
	color, ok := parseColor(req.args[0])
	if !ok {
		return failure("syntax error")
	}
	return moveResponse(c.KgsGenmoveCleanup(color))
}

func handleFinalStatusList(c *engine.Controller, req request) response {
	if len(req.args) != 1 {
		return failure("wrong number of arguments")
	}
	switch req.args[0] {
	case "alive", "dead", "seki":
	default:
		return failure("unknown status")
	}
	return success(strings.Join(c.FinalStatusList(req.args[0]), "\n"))
}

func handleTimeSettings(c *engine.Controller, req request) response {
	if len(req.args) != 3 {
		return failure("wrong number of arguments")
	}
	main, err1 := strconv.Atoi(req.args[0])
	byo, err2 := strconv.Atoi(req.args[1])
	stones, err3 := strconv.Atoi(req.args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return failure("syntax error")
	}
	c.TimeSettings(time.Duration(main)*time.Second, time.Duration(byo)*time.Second, stones)
	return success("")
}

func handleTimeLeft(c *engine.Controller, req request) response {
	if len(req.args) != 3 {
		return failure("wrong number of arguments")
	}
	color, ok := parseColor(req.args[0])
	if !ok {
		return failure("syntax error")
	}
	seconds, err1 := strconv.Atoi(req.args[1])
	stones, err2 := strconv.Atoi(req.args[2])
	if err1 != nil || err2 != nil {
		return failure("syntax error")
	}
	c.TimeLeft(color, time.Duration(seconds)*time.Second, stones)
	return success("")
}

func handleLoadSGF(c *engine.Controller, req request) response {
	if len(req.args) < 1 {
		return failure("wrong number of arguments")
	}
	if err := c.LoadSGF(req.args[0]); err != nil {
		return failure(err.Error())
	}
	return success("")
}

func handleGoguiAnalyzeCommands(c *engine.Controller, req request) response {
	return success("gfx/Ownership/gogui-ownership")
}
