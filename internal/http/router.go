package http

import (
	"github.com/steveyiyo/voxtend-tts/internal/config"
	"github.com/steveyiyo/voxtend-tts/internal/core/tts"
	"github.com/steveyiyo/voxtend-tts/internal/http/handlers"
	"github.com/steveyiyo/voxtend-tts/internal/logging"
	"github.com/steveyiyo/voxtend-tts/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Synth   tts.Synthesizer
	Metrics *metrics.Metrics
	Log     logrus.FieldLogger
}

func NewRouter(cfg config.Config, d Deps) (*gin.Engine, error) {
	svc, err := tts.NewService(d.Synth, tts.Options{
		Dir:      cfg.TempDir,
		Timeout:  cfg.SynthTimeout,
		Recorder: d.Metrics,
		Log:      d.Log,
	})
	if err != nil {
		return nil, err
	}

	r := gin.New()
	// the logger wraps Recovery so recovered panics are logged as 500s
	r.Use(logging.Middleware(d.Log), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	r.Use(cors.New(corsCfg))

	th := handlers.NewTTSHandler(svc, d.Metrics)
	api := r.Group("/api")
	api.POST("/tts", th.Synthesize)
	api.GET("/languages", handlers.Languages)
	r.GET("/healthz", handlers.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	return r, nil
}
