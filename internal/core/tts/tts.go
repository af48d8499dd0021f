package tts

import (
	"context"
	"errors"
	"os"
	"time"
)

var (
	ErrInvalidInput        = errors.New("no text provided")
	ErrSynthesisFailed     = errors.New("synthesis failed")
	ErrFallbackFailed      = errors.New("fallback synthesis failed")
	ErrEmptyArtifact       = errors.New("synthesizer produced no audio")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

type Request struct {
	Text string
	Lang string
	// StrictLang makes the engine reject language codes it does not know.
	StrictLang bool
}

// Synthesizer turns text into MP3 audio written to dst.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request, dst string) error
}

// Recorder receives synthesis outcomes. internal/metrics implements it.
type Recorder interface {
	ObserveSynthesis(lang string, ok bool, d time.Duration)
	Fallback(from string)
	CleanupFailed()
}

type nopRecorder struct{}

func (nopRecorder) ObserveSynthesis(string, bool, time.Duration) {}
func (nopRecorder) Fallback(string) {}
func (nopRecorder) CleanupFailed() {}

// Artifact is a finished MP3 on disk. It is only valid inside the
// deliver callback passed to Service.Speak.
type Artifact struct {
	Path          string
	Size          int64
	RequestedLang string
	Lang          string
	FellBack      bool
}

func (a *Artifact) Open() (*os.File, error) {
	return os.Open(a.Path)
}
