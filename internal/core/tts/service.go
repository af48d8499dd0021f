package tts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/steveyiyo/voxtend-tts/internal/core/lang"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// Dir holds the per-request artifacts. Defaults to os.TempDir().
	Dir string
	// Timeout bounds a single synthesis attempt. Zero means no bound.
	Timeout  time.Duration
	Recorder Recorder
	Log      logrus.FieldLogger
}

// Service runs one synthesis per call, retrying once in English when the
// requested language fails.
type Service struct {
	synth   Synthesizer
	dir     string
	timeout time.Duration
	rec     Recorder
	log     logrus.FieldLogger
}

func NewService(synth Synthesizer, opts Options) (*Service, error) {
	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir; %w", err)
	}
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{synth: synth, dir: dir, timeout: opts.Timeout, rec: rec, log: log}, nil
}

// Speak synthesizes text in the language resolved from requested and hands
// the artifact to deliver. The artifact file is removed when Speak returns,
// whatever the outcome.
func (s *Service) Speak(ctx context.Context, text, requested string, deliver func(*Artifact) error) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}
	resolved := lang.Resolve(requested)
	log := s.log.WithFields(logrus.Fields{
		"chars":          utf8.RuneCountInString(text),
		"requested_lang": requested,
		"resolved_lang":  resolved,
	})

	path := filepath.Join(s.dir, "tts_"+uuid.NewString()+".mp3")
	defer s.release(path, log)

	art, err := s.render(ctx, text, resolved, path)
	if err != nil {
		if resolved == lang.Default {
			log.WithError(err).Errorln("speech synthesis failed")
			return err
		}
		log.WithError(err).Warnln("speech synthesis failed, retrying in default language")
		s.rec.Fallback(resolved)
		art, err = s.render(ctx, text, lang.Default, path)
		if err != nil {
			log.WithError(err).Errorln("fallback speech synthesis failed")
			return fmt.Errorf("%w; %w", ErrFallbackFailed, err)
		}
		art.FellBack = true
	}
	art.RequestedLang = requested

	log.WithFields(logrus.Fields{
		"bytes":     art.Size,
		"lang":      art.Lang,
		"fell_back": art.FellBack,
	}).Debugln("speech ready")
	return deliver(art)
}

func (s *Service) render(ctx context.Context, text, code, path string) (*Artifact, error) {
	// a previous attempt may have left a partial file behind
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w (%s); %w", ErrSynthesisFailed, code, err)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	size, err := s.attempt(ctx, text, code, path)
	s.rec.ObserveSynthesis(code, err == nil, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w (%s); %w", ErrSynthesisFailed, code, err)
	}
	return &Artifact{Path: path, Size: size, Lang: code}, nil
}

func (s *Service) attempt(ctx context.Context, text, code, path string) (int64, error) {
	err := s.synth.Synthesize(ctx, Request{Text: text, Lang: code, StrictLang: false}, path)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.Size() == 0 {
		return 0, ErrEmptyArtifact
	}
	return info.Size(), nil
}

func (s *Service) release(path string, log logrus.FieldLogger) {
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	s.rec.CleanupFailed()
	log.WithError(err).WithField("path", path).Warnln("failed to remove speech artifact")
}

// Dir reports where artifacts are written.
func (s *Service) Dir() string { return s.dir }
