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
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetTextDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetTextDefault(rdr("\n"), "Name", "keep-me", &out)
	if err != nil || got != "keep-me" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	got, err = GetTextDefault(rdr("new\n"), "Name", "keep-me", &out)
	if err != nil || got != "new" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetConfirm(t *testing.T) {
	var out bytes.Buffer
	for input, want := range map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
	} {
		got, err := GetConfirm(rdr(input), "Sure?", &out)
		if err != nil || got != want {
			t.Fatalf("input %q: got %v, err=%v", input, got, err)
		}
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword("Enter password", &out)
	if err == nil {
		t.Fatal("expected error")
	}
}
