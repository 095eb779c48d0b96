package charset

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	input := "fam Dupont Jean-François + Martin Marie\n"
	text, name := Decode([]byte(input))
	if text != input {
		t.Errorf("Decode() text = %q, want input unchanged", text)
	}
	if name != "utf-8" {
		t.Errorf("Decode() encoding = %q, want %q", name, "utf-8")
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	text, name := Decode(nil)
	if text != "" {
		t.Errorf("Decode(nil) text = %q, want empty", text)
	}
	if name != "utf-8" {
		t.Errorf("Decode(nil) encoding = %q, want %q", name, "utf-8")
	}
}

func TestDecodeLatin1(t *testing.T) {
	// "Genéalogie" with é as the single Latin-1 byte 0xE9.
	input := []byte{'G', 'e', 'n', 0xE9, 'a', 'l', 'o', 'g', 'i', 'e'}
	if utf8.Valid(input) {
		t.Fatal("fixture is unexpectedly valid UTF-8")
	}

	text, name := Decode(input)
	if !utf8.ValidString(text) {
		t.Error("Decode() produced invalid UTF-8")
	}
	if !strings.Contains(text, "é") {
		t.Errorf("Decode() text = %q, want é decoded", text)
	}
	if name == "utf-8" {
		t.Errorf("Decode() encoding = %q, want a legacy charset name", name)
	}
}

func TestDecodeNeverFails(t *testing.T) {
	inputs := [][]byte{
		{0xFF, 0xFE, 0x00},
		{0x80, 0x81, 0x82, 0x83},
		{0xC0, 0xAF},
		[]byte("mixed \xE9 content \xFF here"),
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		random := make([]byte, rng.Intn(64))
		rng.Read(random)
		inputs = append(inputs, random)
	}

	for _, input := range inputs {
		text, name := Decode(input)
		if !utf8.ValidString(text) {
			t.Fatalf("Decode(%x) produced invalid UTF-8", input)
		}
		if name == "" {
			t.Fatalf("Decode(%x) returned empty encoding name", input)
		}
	}
}

func TestNewReaderUTF8(t *testing.T) {
	input := "fam Dupont Jean-François + Martin Marie\n"
	r, name := NewReader(strings.NewReader(input))
	if name != "utf-8" {
		t.Errorf("NewReader() encoding = %q, want %q", name, "utf-8")
	}
	text, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(text) != input {
		t.Errorf("NewReader() text = %q, want input unchanged", text)
	}
}

func TestNewReaderLatin1(t *testing.T) {
	input := []byte("fam Dupont Ren\xe9 + Martin Marie\n")
	r, name := NewReader(bytes.NewReader(input))
	if name == "utf-8" {
		t.Errorf("NewReader() encoding = %q, want a legacy charset name", name)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !utf8.Valid(text) {
		t.Error("NewReader() produced invalid UTF-8")
	}
	if !strings.Contains(string(text), "René") {
		t.Errorf("NewReader() text = %q, want é decoded", text)
	}
}

func TestDetectEncoding(t *testing.T) {
	if got := DetectEncoding([]byte("plain ascii\n")); got != "utf-8" {
		t.Errorf("DetectEncoding(ascii) = %q, want %q", got, "utf-8")
	}
}
