package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// postJSON 发送 JSON 请求并把响应解码到 out。
// 非 2xx 响应返回携带状态码的 *Error，由调用方决定如何上报。
func postJSON(ctx context.Context, client *http.Client, name, url string, headers map[string]string, payload, out interface{}) error {
	if client == nil {
		client = http.DefaultClient
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return NewError(name, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewError(name, resp.StatusCode, "read response: "+err.Error())
	}
	if resp.StatusCode >= 300 {
		return NewError(name, resp.StatusCode, string(body))
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return NewError(name, resp.StatusCode, "decode response: "+err.Error())
		}
	}
	return nil
}

// DataURI 把原始字节编码成自描述的内联表示
func DataURI(mime string, b []byte) string {
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}

// FetchDataURI 拉取远程图片并编码成 data URI。
// 有些厂商只返回 URL，这里统一做第二次拉取，保证调用方拿到的
// 永远是无需再次访问的内联结果。
func FetchDataURI(ctx context.Context, client *http.Client, name, imageURL string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", NewError(name, 0, "download image: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewError(name, resp.StatusCode, "download image failed")
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewError(name, resp.StatusCode, "read image: "+err.Error())
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(b)
	}
	return DataURI(mime, b), nil
}
