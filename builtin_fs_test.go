package boa

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFSReadWriteText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	ip := NewInterpreter()
	ip.SetCaptureOutput(true)
	src := "imp fs\n" +
		"fs.write_text(\"" + path + "\", \"hello file\")\n" +
		"print(fs.read_text(\"" + path + "\"))\n"
	if _, err := ip.Run(src, ""); err != nil {
		t.Fatal(err)
	}
	if got := ip.Output(); got != "hello file\n" {
		t.Fatalf("output %q", got)
	}

	b, err := os.ReadFile(path)
	if err != nil || string(b) != "hello file" {
		t.Fatalf("file contents %q, err %v", b, err)
	}
}

func TestFSReadWriteBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")

	ip := NewInterpreter()
	ip.SetCaptureOutput(true)
	src := "imp fs\n" +
		"fs.write_all_bytes(\"" + path + "\", \"a\\tb\\nc\")\n" +
		"print(len(fs.read_all_bytes(\"" + path + "\")))\n"
	if _, err := ip.Run(src, ""); err != nil {
		t.Fatal(err)
	}
	if got := ip.Output(); got != "5\n" {
		t.Fatalf("output %q", got)
	}
}

func TestFSReadMissingFile(t *testing.T) {
	ip := NewInterpreter()
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := ip.Run("imp fs\nfs.read_text(\""+path+"\")\n", "")
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %T (%v)", err, err)
	}
	if !strings.Contains(re.Msg, "cannot open file") {
		t.Fatalf("message %q", re.Msg)
	}
}

func TestFSBadArguments(t *testing.T) {
	ip := NewInterpreter()
	if _, err := ip.Run("imp fs\nfs.read_text(1)\n", ""); err == nil {
		t.Fatal("non-string path must fail")
	}
	if _, err := ip.Run("imp fs\nfs.write_text(\"only-one\")\n", ""); err == nil {
		t.Fatal("write_text needs two arguments")
	}
}

func TestFSErrorIsCatchable(t *testing.T) {
	ip := NewInterpreter()
	ip.SetCaptureOutput(true)
	path := filepath.Join(t.TempDir(), "nope.txt")
	src := "imp fs\ntry:\n    fs.read_text(\"" + path + "\")\nexcept e:\n    print(\"io failed\")\n"
	if _, err := ip.Run(src, ""); err != nil {
		t.Fatal(err)
	}
	if got := ip.Output(); got != "io failed\n" {
		t.Fatalf("output %q", got)
	}
}
