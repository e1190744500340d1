package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// DecodeReader wraps r so the rest of the pipeline always sees UTF-8.
// The charset is sniffed from the head of the stream; when detection or
// conversion is not possible the original bytes pass through unchanged,
// so decoding never fails a run.
func DecodeReader(r io.Reader) io.Reader {
	br := bufio.NewReaderSize(r, 65536)

	peek, _ := br.Peek(2048)
	if len(peek) == 0 {
		return br
	}

	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return br
	}

	label := strings.ToLower(det.Charset)
	if label == "utf-8" {
		return br
	}

	cr, err := charset.NewReaderLabel(label, br)
	if err != nil {
		return br
	}
	return cr
}
