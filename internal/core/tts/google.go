package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/steveyiyo/voxtend-tts/internal/core/lang"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// maxChunkChars is what the translate_tts endpoint accepts per call.
	maxChunkChars = 200

	DefaultEndpoint = "https://translate.google.com/translate_tts"
)

type GoogleOptions struct {
	Endpoint string
	Workers  int
	// Timeout bounds a single chunk download.
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// Google synthesizes speech through the Google Translate TTS endpoint.
// Text longer than one request allows is split, synthesized concurrently
// and the MP3 frames are concatenated in order.
type Google struct {
	endpoint string
	workers  int
	client   *http.Client
	log      logrus.FieldLogger
}

func NewGoogle(opts GoogleOptions) *Google {
	g := &Google{
		endpoint: opts.Endpoint,
		workers:  opts.Workers,
		client:   &http.Client{Timeout: opts.Timeout},
		log:      opts.Log,
	}
	if g.endpoint == "" {
		g.endpoint = DefaultEndpoint
	}
	if g.workers < 1 {
		g.workers = 1
	}
	if g.log == nil {
		g.log = logrus.StandardLogger()
	}
	return g
}

func (g *Google) Synthesize(ctx context.Context, req Request, dst string) error {
	if req.StrictLang && !lang.IsSupported(req.Lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, req.Lang)
	}
	chunks := splitText(req.Text, maxChunkChars)
	if len(chunks) == 0 {
		return ErrInvalidInput
	}

	base := strings.TrimSuffix(dst, ".mp3")
	parts := make([]string, len(chunks))
	for i := range chunks {
		parts[i] = fmt.Sprintf("%s.part%03d.mp3", base, i)
	}
	defer func() {
		for _, p := range parts {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				g.log.WithError(err).WithField("part", p).Warnln("failed to remove chunk file")
			}
		}
	}()

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.workers)
	for i, chunk := range chunks {
		i, chunk := i, chunk // per-iteration copy (go directive < 1.22)
		grp.Go(func() error {
			if err := g.fetch(gctx, chunk, req.Lang, parts[i]); err != nil {
				g.log.WithError(err).WithFields(logrus.Fields{
					"chunk": i,
					"lang":  req.Lang,
					"chars": utf8.RuneCountInString(chunk),
				}).Infoln("chunk synthesis failed")
				return fmt.Errorf("chunk %d; %w", i, err)
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	return concatFiles(dst, parts)
}

// fetch downloads one chunk into path. The file is closed before it is
// checked so no handle outlives the request.
func (g *Google) fetch(ctx context.Context, text, code, path string) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("total", "1")
	q.Set("idx", "0")
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))
	q.Set("client", "tw-ob")
	q.Set("q", text)
	q.Set("tl", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunk file; %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("failed to download chunk; %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return checkMP3(path)
}

func concatFiles(dst string, parts []string) error {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output; %w", err)
	}
	defer out.Close()

	for _, p := range parts {
		in, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open chunk; %w", err)
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			return fmt.Errorf("failed to append chunk; %w", err)
		}
	}
	return out.Close()
}

// checkMP3 rejects empty files and error pages saved in place of audio.
func checkMP3(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, 3)
	n, err := io.ReadFull(f, head)
	if n == 0 {
		return ErrEmptyArtifact
	}
	if err != nil && err != io.ErrUnexpectedEOF {
		return err
	}
	if looksLikeMP3(head[:n]) {
		return nil
	}
	return fmt.Errorf("%w: unexpected content %q", ErrEmptyArtifact, head[:n])
}

func looksLikeMP3(head []byte) bool {
	if bytes.HasPrefix(head, []byte("ID3")) {
		return true
	}
	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

// splitText packs words into chunks of at most max runes, preferring to
// break after sentence punctuation once a chunk is half full.
func splitText(text string, max int) []string {
	var (
		chunks []string
		cur    strings.Builder
		n      int
	)
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
		}
		cur.Reset()
		n = 0
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > max {
			flush()
			r := []rune(word)
			chunks = append(chunks, string(r[:max]))
			word = string(r[max:])
		}
		wn := utf8.RuneCountInString(word)
		if n > 0 && n+1+wn > max {
			flush()
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += wn
		if endsSentence(word) && n > max/2 {
			flush()
		}
	}
	flush()
	return chunks
}

func endsSentence(word string) bool {
	r, _ := utf8.DecodeLastRuneInString(word)
	switch r {
	case '.', '!', '?', ';', '।', '॥', '؟', '۔':
		return true
	}
	return false
}
