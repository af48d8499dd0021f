package handlers

import (
	"net/http"

	"github.com/steveyiyo/voxtend-tts/internal/core/lang"
	"github.com/steveyiyo/voxtend-tts/pkg/types"

	"github.com/gin-gonic/gin"
)

func Languages(c *gin.Context) {
	c.JSON(http.StatusOK, types.LanguagesResp{Default: lang.Default, Languages: lang.All()})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResp{Status: "ok", Service: "voxtend-tts"})
}
