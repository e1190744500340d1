package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Confirmer supplies the externally confirmed run configuration: the
// input location, the final separator expression and the ordered column
// name list. The transform core never prompts on its own; it only
// consumes the values a Confirmer hands back, which keeps headless and
// test invocations possible.
type Confirmer interface {
	SelectInput() (string, error)
	ConfirmSeparator(detected, suggestedExpr, sample string) (string, error)
	ColumnNames() ([]string, error)
	PickTxtFile(names []string) (int, error)
}

// Terminal is the interactive Confirmer. It reads answers from in and
// writes prompts to out, so tests can script the whole dialogue.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Confirmer = (*Terminal)(nil)

// NewTerminal returns a Terminal reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// ask prompts until a non-empty answer arrives, or returns the default
// when one is set and the user just presses enter.
func (t *Terminal) ask(question, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(t.out, "%s [%s]: ", question, def)
		} else {
			fmt.Fprintf(t.out, "%s: ", question)
		}

		line, err := t.in.ReadString('\n')
		val := strings.TrimSpace(line)
		if val != "" {
			return val, nil
		}
		if def != "" {
			return def, nil
		}
		if err != nil {
			return "", fmt.Errorf("input closed before an answer was given")
		}
		fmt.Fprintln(t.out, "empty input is not allowed")
	}
}

// SelectInput asks for the input location.
func (t *Terminal) SelectInput() (string, error) {
	return t.ask("Enter a path to a .txt file, a URL or a directory", "")
}

// PickTxtFile lists the .txt files found in a directory and asks which
// one to process. Returns a zero-based index.
func (t *Terminal) PickTxtFile(names []string) (int, error) {
	fmt.Fprintln(t.out, "Found .txt files:")
	for i, name := range names {
		fmt.Fprintf(t.out, "%d) %s\n", i+1, name)
	}

	answer, err := t.ask("Pick a file number", "1")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(names) {
		return 0, fmt.Errorf("invalid file number: %s", answer)
	}
	return n - 1, nil
}

// ConfirmSeparator shows the detected separator with a preview of the
// sample line split by it, then asks for the final separator expression.
// Pressing enter accepts the suggestion; any other answer overrides it.
func (t *Terminal) ConfirmSeparator(detected, suggestedExpr, sample string) (string, error) {
	fmt.Fprintf(t.out, "Detected separator: %q\n", detected)
	t.preview(sample, detected)
	fmt.Fprintln(t.out, "Press enter to accept, or type another separator.")
	fmt.Fprintln(t.out, "Pattern syntax is allowed; escape special characters (e.g. \\| or \\t).")
	return t.ask("Separator", suggestedExpr)
}

// ColumnNames asks for the output column names, comma separated, in
// input order.
func (t *Terminal) ColumnNames() ([]string, error) {
	raw, err := t.ask("Enter column names, comma separated, in input order", "")
	if err != nil {
		return nil, err
	}

	var columns []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no column names supplied")
	}
	return columns, nil
}

// preview renders the sample line split with the candidate separator so
// the user can judge the detection at a glance.
func (t *Terminal) preview(sample, sep string) {
	fields := strings.Split(sample, sep)

	table := tablewriter.NewWriter(t.out)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.Append(fields)
	table.Render()
}
