package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/youruser/cardtoolkit/internal/cards"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSplitCommand(t *testing.T) {
	out, err := run(t, "A\r\n\r\n\r\nB\r\nC", "split", "-")
	if err != nil {
		t.Fatal(err)
	}
	var got []cards.Card
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output %q: %v", out, err)
	}
	want := []cards.Card{{PageIndex: 1, Title: "A"}, {PageIndex: 2, Title: "B", Content: "C"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("split = %#v", got)
	}
}

func TestCardNewsCommand(t *testing.T) {
	dir := t.TempDir()
	script := "First\r\nhello\r\n\r\n\r\nSecond\r\n\r\n\r\nThird\r\nbye"
	if _, err := run(t, script, "--output-dir", dir, "cardnews", "--script", "-", "--pages", "1,3"); err != nil {
		t.Fatal(err)
	}
	zr, err := zip.OpenReader(filepath.Join(dir, DefaultArchiveName))
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if want := []string{"canvas-image-1.png", "canvas-image-2.png"}; !reflect.DeepEqual(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}
}

func TestCardNewsWithoutScriptIsNoop(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "", "--output-dir", dir, "cardnews"); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("wrote %d files without a script", len(entries))
	}
}

func TestThumbnailCommand(t *testing.T) {
	dir := t.TempDir()
	args := []string{"--output-dir", dir, "thumbnail", "--text", `Hello\nWorld`, "--width", "320", "--height", "180", "--highlight"}
	if _, err := run(t, "", args...); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "thumbnail.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("thumbnail size = %v", b)
	}
}

func TestThumbnailRejectsBadFormat(t *testing.T) {
	if _, err := run(t, "", "--output-dir", t.TempDir(), "thumbnail", "--text", "x", "--format", "bmp"); err == nil {
		t.Error("bmp format accepted")
	}
}

func TestFontsCommand(t *testing.T) {
	out, err := run(t, "", "fonts")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "courier new") || !strings.Contains(out, "arial") {
		t.Errorf("fonts = %q", out)
	}
}

func TestQRCommand(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "", "--output-dir", dir, "qr", "https://example.com", "--size", "128"); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "qr.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("qr width = %d", img.Bounds().Dx())
	}
}
