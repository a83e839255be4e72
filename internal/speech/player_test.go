package speech

import (
	"encoding/binary"
	"testing"
)

// buildWAV assembles a minimal RIFF/WAVE container around the given PCM.
func buildWAV(pcm []byte) []byte {
	var buf []byte
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(pcm)))
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = append(buf, make([]byte, 16)...)
	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(pcm)))
	buf = append(buf, pcm...)
	return buf
}

func TestExtractPCM(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6}
	got, err := extractPCM(buildWAV(pcm))
	if err != nil {
		t.Fatalf("extractPCM: %v", err)
	}
	if string(got) != string(pcm) {
		t.Fatalf("got %v, want %v", got, pcm)
	}
}

func TestExtractPCMRejectsGarbage(t *testing.T) {
	if _, err := extractPCM([]byte("not audio at all, definitely not a wav")); err == nil {
		t.Fatal("expected error for non-WAV data")
	}
}

func TestExtractPCMRejectsShortData(t *testing.T) {
	if _, err := extractPCM([]byte("RIFF")); err == nil {
		t.Fatal("expected error for truncated data")
	}
}
