package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1ureka/propsync/internal/protocol"
)

type commandKind int

const (
	cmdProperty commandKind = iota // name=value
	cmdStream                      // stream on|off
	cmdToggle                      // toggle
	cmdShow                        // show
	cmdHelp                        // help
)

var errUnknownCommand = errors.New("unknown command")

const usage = `commands:
  name=value     publish a property (true/false, numbers, or text)
  stream on|off  request streaming on or off
  toggle         flip the stream toggle
  show           print the panel
  help           print this message`

// command is one parsed line of terminal input.
type command struct {
	kind  commandKind
	name  string
	value protocol.Value
	state bool
}

// parseCommand parses a terminal input line.
func parseCommand(line string) (command, error) {
	line = strings.TrimSpace(line)

	if name, raw, ok := strings.Cut(line, "="); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return command{}, fmt.Errorf("%w: missing property name", errUnknownCommand)
		}
		return command{kind: cmdProperty, name: name, value: protocol.ParseValue(strings.TrimSpace(raw))}, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, fmt.Errorf("%w: empty line", errUnknownCommand)
	}

	switch strings.ToLower(fields[0]) {
	case "stream":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("%w: stream expects on or off", errUnknownCommand)
		}
		switch strings.ToLower(fields[1]) {
		case "on", "true", "1":
			return command{kind: cmdStream, state: true}, nil
		case "off", "false", "0":
			return command{kind: cmdStream, state: false}, nil
		}
		return command{}, fmt.Errorf("%w: stream expects on or off, got %q", errUnknownCommand, fields[1])
	case "toggle":
		return command{kind: cmdToggle}, nil
	case "show":
		return command{kind: cmdShow}, nil
	case "help", "?":
		return command{kind: cmdHelp}, nil
	}

	return command{}, fmt.Errorf("%w: %q", errUnknownCommand, fields[0])
}
