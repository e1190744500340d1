package prompt

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	return NewTerminal(strings.NewReader(input), &out), &out
}

func TestSelectInput(t *testing.T) {
	term, _ := newTestTerminal("data.txt\n")
	got, err := term.SelectInput()
	if err != nil {
		t.Fatalf("SelectInput failed: %v", err)
	}
	if got != "data.txt" {
		t.Errorf("SelectInput = %q, want data.txt", got)
	}
}

func TestAskRejectsEmptyWithoutDefault(t *testing.T) {
	term, out := newTestTerminal("\nhello\n")
	got, err := term.SelectInput()
	if err != nil {
		t.Fatalf("SelectInput failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("SelectInput = %q, want hello", got)
	}
	if !strings.Contains(out.String(), "empty input is not allowed") {
		t.Error("expected a warning about empty input")
	}
}

func TestAskEOFWithoutAnswer(t *testing.T) {
	term, _ := newTestTerminal("")
	if _, err := term.SelectInput(); err == nil {
		t.Fatal("expected error on closed input, got nil")
	}
}

func TestConfirmSeparatorDefault(t *testing.T) {
	term, out := newTestTerminal("\n")
	got, err := term.ConfirmSeparator("|", `\|`, "1|Alice|Berlin")
	if err != nil {
		t.Fatalf("ConfirmSeparator failed: %v", err)
	}
	if got != `\|` {
		t.Errorf("ConfirmSeparator = %q, want suggested expression", got)
	}
	// the preview table shows the sample split by the detected separator
	if !strings.Contains(out.String(), "Alice") {
		t.Error("expected sample preview in prompt output")
	}
}

func TestConfirmSeparatorOverride(t *testing.T) {
	term, _ := newTestTerminal("::\n")
	got, err := term.ConfirmSeparator("|", `\|`, "a|b")
	if err != nil {
		t.Fatalf("ConfirmSeparator failed: %v", err)
	}
	if got != "::" {
		t.Errorf("ConfirmSeparator = %q, want ::", got)
	}
}

func TestColumnNames(t *testing.T) {
	term, _ := newTestTerminal("id, name ,birthday\n")
	got, err := term.ColumnNames()
	if err != nil {
		t.Fatalf("ColumnNames failed: %v", err)
	}
	want := []string{"id", "name", "birthday"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnNames = %v, want %v", got, want)
	}
}

func TestColumnNamesAllBlank(t *testing.T) {
	term, _ := newTestTerminal(" , ,\n")
	if _, err := term.ColumnNames(); err == nil {
		t.Fatal("expected error for blank column list, got nil")
	}
}

func TestPickTxtFile(t *testing.T) {
	names := []string{"a.txt", "b.txt", "c.txt"}

	term, out := newTestTerminal("2\n")
	idx, err := term.PickTxtFile(names)
	if err != nil {
		t.Fatalf("PickTxtFile failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("PickTxtFile = %d, want 1", idx)
	}
	if !strings.Contains(out.String(), "b.txt") {
		t.Error("expected file listing in prompt output")
	}
}

func TestPickTxtFileDefault(t *testing.T) {
	term, _ := newTestTerminal("\n")
	idx, err := term.PickTxtFile([]string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("PickTxtFile failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("PickTxtFile default = %d, want 0", idx)
	}
}

func TestPickTxtFileOutOfRange(t *testing.T) {
	term, _ := newTestTerminal("9\n")
	if _, err := term.PickTxtFile([]string{"a.txt"}); err == nil {
		t.Fatal("expected error for out-of-range number, got nil")
	}
}
