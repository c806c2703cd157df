package config

import (
	"time"

	"github.com/ferdian3456/chatmoderation/internal/vk"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func NewVKClient(config *koanf.Koanf, log *zap.Logger) *vk.Client {
	token := config.String("VK_TOKEN")
	if token == "" {
		log.Fatal("failed to get vk token")
	}

	baseURL := config.String("VK_API_URL")
	if baseURL == "" {
		baseURL = vk.DefaultBaseURL
	}

	version := config.String("VK_API_VERSION")
	if version == "" {
		version = vk.DefaultVersion
	}

	timeout := 5 * time.Second
	if seconds := config.Int("VK_TIMEOUT_SECONDS"); seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}

	httpClient := &fasthttp.Client{
		Name:                "chatmoderation",
		MaxConnsPerHost:     64,
		MaxIdleConnDuration: 90 * time.Second,
		ReadTimeout:         timeout,
		WriteTimeout:        timeout,
		MaxConnWaitTimeout:  timeout,
	}

	return vk.NewClient(log, httpClient, baseURL, token, version, timeout)
}
