// wave_writer.go - Export a rendered PCM buffer as a RIFF/WAVE file

package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const WAVE_HEADER_SIZE = 0x2C

// waveHeader builds the canonical 44-byte PCM header for dataSize bytes of
// 16-bit samples.
func waveHeader(dataSize, sampleRate int, channels uint8) [WAVE_HEADER_SIZE]byte {
	frameSize := BYTES_PER_SAMPLE * channels
	h := [WAVE_HEADER_SIZE]byte{
		'R', 'I', 'F', 'F',
		0, 0, 0, 0, //             length of rest of file
		'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ',
		16, 0, 0, 0, //            size of fmt chunk
		1, 0, //                   PCM
		0, 0, //                   channel count
		0, 0, 0, 0, //             sample rate
		0, 0, 0, 0, //             bytes per second
		0, 0, //                   bytes per frame
		BYTES_PER_SAMPLE * 8, 0, // bits per sample
		'd', 'a', 't', 'a',
		0, 0, 0, 0, //             size of sample data
	}
	binary.LittleEndian.PutUint32(h[0x04:], uint32(len(h)-8+dataSize))
	h[0x16] = channels
	binary.LittleEndian.PutUint32(h[0x18:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[0x1C:], uint32(sampleRate)*uint32(frameSize))
	h[0x20] = frameSize
	binary.LittleEndian.PutUint32(h[0x28:], uint32(dataSize))
	return h
}

// WriteWave writes pcm (16-bit LE mono at SAMPLE_RATE) with a WAVE header.
func WriteWave(w io.Writer, pcm []byte) error {
	if len(pcm)%BYTES_PER_SAMPLE != 0 {
		return fmt.Errorf("wave: odd PCM length %d", len(pcm))
	}
	hdr := waveHeader(len(pcm), SAMPLE_RATE, CHANNEL_COUNT)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(pcm)
	return err
}

func SaveWaveFile(path string, pcm []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWave(f, pcm); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
