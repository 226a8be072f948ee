package usecase

import "net/http"

// Export for testing
var (
	ParseServerURL = parseServerURL
	MaskWebhookURL = maskWebhookURL
	CheckResponse  = checkResponse
)

// ConfigService exports for testing
type ConfigService = configService

func NewConfigServiceWithDir(dir string) *ConfigService {
	return &configService{configDir: dir}
}

func (w *Webhook) HTTPClient() *http.Client {
	return w.httpClient
}
