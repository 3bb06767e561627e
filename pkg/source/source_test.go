package source_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/tracklab/cpsa/pkg/cpsa"
	"github.com/tracklab/cpsa/pkg/source"
)

func TestOpenPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.cpsa")
	payload := []byte("0123456789abcdef")
	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatal(err)
	}

	src, err := source.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if src.Size() != int64(len(payload)) {
		t.Errorf("Size: got %d, want %d", src.Size(), len(payload))
	}
	buf := make([]byte, 6)
	if _, err := src.ReadAt(buf, 10); err != nil {
		t.Fatalf("ReadAt failed: %v", err)
	}
	if !bytes.Equal(buf, []byte("abcdef")) {
		t.Errorf("ReadAt: got %q", buf)
	}
}

func TestOpenCompressedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.cpsa.zst")
	payload := bytes.Repeat([]byte("cpsa-frame-data-"), 64)

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := source.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if src.Size() != int64(len(payload)) {
		t.Errorf("Size: got %d, want %d", src.Size(), len(payload))
	}
	got := make([]byte, len(payload))
	if _, err := src.ReadAt(got, 0); err != nil {
		t.Fatalf("ReadAt failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("inflated content does not match original payload")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := source.Open(filepath.Join(t.TempDir(), "nope.cpsa"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var derr *cpsa.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if derr.Kind != cpsa.KindResource {
		t.Errorf("Kind: got %v, want resource", derr.Kind)
	}
}

func buildMinimalScan(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}
	// header: 1x1 grid, pixel_size raw 1.0
	for _, v := range []int32{1, 1, 1, 100} {
		w(v)
	}
	w(float32(1.0))
	w(float32(2.0))
	for _, v := range []int32{0, 0, 0, 1, 1000, 1000} {
		w(v)
	}
	// one frame, zero tracks
	w(int32(0))
	w(int32(0))
	w(int32(0))
	w(int32(0))
	buf.Write(make([]byte, 12))
	w(int32(100))
	w(int32(0))
	w(int32(0))
	// gap + trailer
	buf.Write(make([]byte, 4))
	buf.WriteString("run meta")
	return buf.Bytes()
}

func TestDecodeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.cpsa")
	if err := os.WriteFile(path, buildMinimalScan(t), 0644); err != nil {
		t.Fatal(err)
	}

	sd, err := source.DecodeFile(path, cpsa.Options{})
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}
	if len(sd.Frames) != 1 {
		t.Errorf("got %d frames, want 1", len(sd.Frames))
	}
	if sd.Trailer != "run meta" {
		t.Errorf("Trailer: got %q", sd.Trailer)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	sd, err := source.DecodeFile(filepath.Join(t.TempDir(), "nope.cpsa"), cpsa.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if sd != nil {
		t.Error("expected nil ScanData when the source cannot be opened")
	}
}
