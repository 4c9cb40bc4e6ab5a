package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prosepane/prosepane/internal/layout"
)

func TestContentAndSidebarID_NamespaceOffset(t *testing.T) {
	if got := ContentID(7); got != 1007 {
		t.Fatalf("ContentID(7) = %d, want 1007", got)
	}
	if got := SidebarID(7); got != 2007 {
		t.Fatalf("SidebarID(7) = %d, want 2007", got)
	}
}

func TestTransfer_IdempotentByID(t *testing.T) {
	var buf bytes.Buffer
	d := NewImageDriver(&buf)
	png := []byte("fake-png-bytes")

	if err := d.Transfer(1000, png); err != nil {
		t.Fatal(err)
	}
	firstLen := buf.Len()
	if err := d.Transfer(1000, png); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != firstLen {
		t.Fatalf("expected repeat Transfer with the same id to be a no-op, buffer grew from %d to %d", firstLen, buf.Len())
	}
}

func TestTransfer_ChunksLargePayloads(t *testing.T) {
	var buf bytes.Buffer
	d := NewImageDriver(&buf)
	big := bytes.Repeat([]byte{0xAB}, chunkSize*3)

	if err := d.Transfer(42, big); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if count := strings.Count(out, "\x1b_G"); count < 2 {
		t.Fatalf("expected more than one transfer command for a payload spanning multiple chunks, got %d", count)
	}
	if !strings.Contains(out, "m=1") {
		t.Fatal("expected a continuation chunk with m=1")
	}
	if !strings.Contains(out, "m=0") {
		t.Fatal("expected a final chunk with m=0")
	}
}

func TestAllCommands_CarryQuietFlag(t *testing.T) {
	var buf bytes.Buffer
	d := NewImageDriver(&buf)
	_ = d.Transfer(1, []byte("x"))
	_ = d.Place(1, 0, 0, layout.CropRect{W: 10, H: 10}, 10, 1)
	_ = d.ErasePlacements(1)

	for _, line := range strings.Split(buf.String(), "\x1b\\") {
		if !strings.Contains(line, "\x1b_G") {
			continue
		}
		if !strings.Contains(line, "q=2") {
			t.Fatalf("expected every image command to suppress responses with q=2, got: %q", line)
		}
	}
}

func TestPlace_UsesAbsoluteCursorPositioning(t *testing.T) {
	var buf bytes.Buffer
	d := NewImageDriver(&buf)
	if err := d.Place(5, 3, 2, layout.CropRect{W: 1, H: 1}, 1, 1); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\x1b[4;3H") {
		t.Fatalf("expected absolute CSI cursor move prefix for row=3,col=2 (1-based 4;3), got %q", buf.String())
	}
}
