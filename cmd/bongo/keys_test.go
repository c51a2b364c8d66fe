package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestKeysCommandListsArrows(t *testing.T) {
	var out bytes.Buffer
	cmd := newKeysCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{"NAME", "a ", "enter", "left"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		f := strings.Fields(line)
		if len(f) == 3 && f[0] == "up" && f[2] != "right" {
			t.Errorf("up should belong to the right hand: %q", line)
		}
	}
}
