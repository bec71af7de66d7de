package theme

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedThemesParse(t *testing.T) {
	names := Embedded()
	if len(names) != 3 {
		t.Fatalf("expected 3 embedded themes, got %v", names)
	}
	l := &Loader{}
	for _, n := range names {
		th, err := l.Load(n)
		if err != nil {
			t.Fatalf("load %s: %v", n, err)
		}
		if th.EraseStroke == th.PaintStroke {
			t.Errorf("%s: erase and paint tints must differ", n)
		}
	}
}

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	th, err := (&Loader{}).Load("default")
	if err != nil {
		t.Fatal(err)
	}
	if *th != *Default() {
		t.Errorf("embedded default drifted from Default():\n%+v\n%+v", th, Default())
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#11223344")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.NRGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Errorf("got %+v", c)
	}
	c, err = ParseColor("#ABCDEF")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.NRGBA{0xAB, 0xCD, 0xEF, 0xFF}) {
		t.Errorf("got %+v", c)
	}
	c, err = ParseColor("Tomato")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.NRGBA{0xff, 0x63, 0x47, 0xff}) {
		t.Errorf("got %+v", c)
	}
	for _, bad := range []string{"notacolour", "#ABC", "#GGGGGG"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	src := Default()
	src.Name = "custom"
	src.EraseStroke = color.NRGBA{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := Format(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *src {
		t.Errorf("round trip mismatch:\n%+v\n%+v", got, src)
	}
}

func TestLoadOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.theme")
	if err := os.WriteFile(path, []byte("Name: Mine\nEraseStroke: #010203\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Custom: map[string]*Theme{"inline": {Name: "Inline"}}}

	th, err := l.Load(path)
	if err != nil || th.Name != "Mine" {
		t.Fatalf("file path: %v %v", th, err)
	}
	th, err = l.Load("mine")
	if err != nil || th.EraseStroke != (color.NRGBA{1, 2, 3, 255}) {
		t.Fatalf("config dir: %v %v", th, err)
	}
	th, err = l.Load("inline")
	if err != nil || th.Name != "Inline" {
		t.Fatalf("inline: %v %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}
