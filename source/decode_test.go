package source

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeReaderUTF8Passthrough(t *testing.T) {
	content := "id|name|birthday\n1|Алиса|01.01.1990\n2|Борис|\n"

	got, err := io.ReadAll(DecodeReader(strings.NewReader(content)))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != content {
		t.Errorf("UTF-8 input altered by DecodeReader: %q", got)
	}
}

func TestDecodeReaderEmpty(t *testing.T) {
	got, err := io.ReadAll(DecodeReader(strings.NewReader("")))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestDecodeReaderWindows1251(t *testing.T) {
	// "Привет мир сегодня хорошая погода " in windows-1251
	word := []byte{
		0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2, 0x20, // Привет
		0xEC, 0xE8, 0xF0, 0x20, // мир
		0xF1, 0xE5, 0xE3, 0xEE, 0xE4, 0xED, 0xFF, 0x20, // сегодня
		0xF5, 0xEE, 0xF0, 0xEE, 0xF8, 0xE0, 0xFF, 0x20, // хорошая
		0xEF, 0xEE, 0xE3, 0xEE, 0xE4, 0xE0, 0x20, // погода
	}
	raw := bytes.Repeat(word, 20)

	got, err := io.ReadAll(DecodeReader(bytes.NewReader(raw)))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !utf8.Valid(got) {
		t.Fatal("decoded output is not valid UTF-8")
	}
	if bytes.Equal(got, raw) {
		t.Error("windows-1251 input passed through undecoded")
	}
}
