// Package utils 提供通用工具函数
package utils

import (
	"errors"
	"net/url"
	"strings"
)

// RedactSecret 去除错误信息中的密钥（含 URL 编码形式），url.Error 会带上完整查询串
func RedactSecret(err error, secret string) error {
	if err == nil || secret == "" {
		return err
	}
	msg := err.Error()
	escaped := url.QueryEscape(secret)
	if !strings.Contains(msg, secret) && !strings.Contains(msg, escaped) {
		return err
	}
	msg = strings.ReplaceAll(msg, escaped, "REDACTED")
	msg = strings.ReplaceAll(msg, secret, "REDACTED")
	return errors.New(msg)
}
