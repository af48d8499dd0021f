package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/steveyiyo/voxtend-tts/internal/core/tts"
	"github.com/steveyiyo/voxtend-tts/pkg/types"

	"github.com/gin-gonic/gin"
)

const (
	msgNoText      = "No text provided"
	msgBadBody     = "Invalid request body"
	msgSynthFailed = "Failed to generate speech"
)

// RequestRecorder counts finished requests by outcome.
type RequestRecorder interface {
	RecordRequest(status string)
}

type TTSHandler struct {
	Svc     *tts.Service
	Metrics RequestRecorder
}

func NewTTSHandler(svc *tts.Service, m RequestRecorder) *TTSHandler {
	return &TTSHandler{Svc: svc, Metrics: m}
}

func (h *TTSHandler) Synthesize(c *gin.Context) {
	var req types.TTSReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.Metrics.RecordRequest("invalid")
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: msgBadBody})
		return
	}

	err := h.Svc.Speak(c.Request.Context(), req.Text, req.Lang, func(a *tts.Artifact) error {
		f, err := a.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		n := len(c.Errors)
		c.DataFromReader(http.StatusOK, a.Size, "audio/mpeg", f, map[string]string{
			"Content-Disposition": `attachment; filename="speech.mp3"`,
			"X-TTS-Language":      a.Lang,
		})
		// gin records copy failures on the context instead of returning them
		if len(c.Errors) > n {
			return c.Errors.Last().Err
		}
		return nil
	})
	switch {
	case err == nil:
		h.Metrics.RecordRequest("ok")
	case errors.Is(err, tts.ErrInvalidInput):
		h.Metrics.RecordRequest("invalid")
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: msgNoText})
	default:
		h.Metrics.RecordRequest("failed")
		if c.Writer.Written() {
			// headers already went out with the audio; the error is on c.Errors
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResp{Error: msgSynthFailed, Details: err.Error()})
	}
}
