package app

import (
	"errors"
	"testing"

	"github.com/1ureka/propsync/internal/protocol"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		line string
		want command
	}{
		{"bitrate=2048000", command{kind: cmdProperty, name: "bitrate", value: protocol.Number(2048000)}},
		{" tc-enabled = true ", command{kind: cmdProperty, name: "tc-enabled", value: protocol.Bool(true)}},
		{"srt-uri=srt://10.0.0.1:7001", command{kind: cmdProperty, name: "srt-uri", value: protocol.Text("srt://10.0.0.1:7001")}},
		{"stream on", command{kind: cmdStream, state: true}},
		{"STREAM off", command{kind: cmdStream, state: false}},
		{"toggle", command{kind: cmdToggle}},
		{"show", command{kind: cmdShow}},
		{"?", command{kind: cmdHelp}},
	}

	for _, tc := range testCases {
		got, err := parseCommand(tc.line)
		if err != nil {
			t.Errorf("parseCommand(%q): %v", tc.line, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseCommand(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, line := range []string{"", "   ", "=5", "stream", "stream maybe", "reboot"} {
		if _, err := parseCommand(line); !errors.Is(err, errUnknownCommand) {
			t.Errorf("parseCommand(%q): expected errUnknownCommand, got %v", line, err)
		}
	}
}
