package netproxy

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// EnvKeys 代理地址的环境变量，按顺序取第一个非空值
var EnvKeys = []string{"SOCKS_PROXY", "socks_proxy", "SOCKS5_PROXY", "socks5_proxy"}

// NewTransport 根据代理地址创建出站 Transport
// rawURL 为空时直连；socks5/socks5h 走 x/net/proxy，http/https 走标准 HTTP 代理
func NewTransport(rawURL string) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil

	if rawURL == "" {
		return transport, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("create socks dialer: %w", err)
		}
		transport.DialContext = dialContext(dialer)
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %q", u.Scheme)
	}

	return transport, nil
}

// NewClient 创建共享的出站 HTTP 客户端
// 不设置 Client.Timeout，超时由调用方通过 context 控制
func NewClient(rawURL string) (*http.Client, error) {
	transport, err := NewTransport(rawURL)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: transport}, nil
}

func dialContext(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}

// Redact 隐去代理地址中的密码，用于日志和诊断输出
func Redact(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "(invalid)"
	}
	return u.Redacted()
}
