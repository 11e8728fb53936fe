package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し（クォート取得、Telegram送信）用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - MaxIdleConnsPerHost: 並列取得ワーカー数に合わせて同一ホストへの接続を再利用
//   - Client.Timeout: リクエスト全体のタイムアウト（0以下の場合は10秒）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること
func NewHTTPClient(timeout time.Duration, maxConnsPerHost int) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxConnsPerHost <= 0 {
		maxConnsPerHost = http.DefaultMaxIdleConnsPerHost
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: maxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
