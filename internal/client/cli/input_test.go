package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Name?\n> " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	if _, err := GetSimpleText(rdr(""), "Name?", &out); err == nil {
		t.Fatal("expected error on empty input")
	}
}

func TestGetOptionalInt(t *testing.T) {
	var out bytes.Buffer

	got, err := GetOptionalInt(rdr("\n"), "Age?", &out)
	if err != nil || got != nil {
		t.Fatalf("empty line: got %v, err=%v", got, err)
	}

	got, err = GetOptionalInt(rdr(" 42 \n"), "Age?", &out)
	if err != nil || got == nil || *got != 42 {
		t.Fatalf("number: got %v, err=%v", got, err)
	}

	for _, in := range []string{"abc\n", "-1\n"} {
		if _, err := GetOptionalInt(rdr(in), "Age?", &out); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("pw1"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	if err != nil || string(pw) != "pw1" {
		t.Fatalf("got %q, err=%v", pw, err)
	}

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	if _, err := GetPassword(&out); err == nil {
		t.Fatal("expected error")
	}
}
