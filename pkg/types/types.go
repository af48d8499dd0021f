package types

import "github.com/steveyiyo/voxtend-tts/internal/core/lang"

type TTSReq struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type ErrorResp struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type LanguagesResp struct {
	Default   string          `json:"default"`
	Languages []lang.Language `json:"languages"`
}

type HealthResp struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
