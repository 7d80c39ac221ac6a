package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"

	"trade_gateway/internal/models"
)

// Params — упорядоченный набор параметров запроса. Порядок вставки
// сохраняется: строка, которую мы подписываем, обязана байт-в-байт
// совпадать с тем, что уйдёт на провод, а map в Go порядок не держит.
type Params struct {
	keys []string
	vals []string
}

func NewParams() *Params {
	return &Params{}
}

func (p *Params) Add(key, val string) *Params {
	p.keys = append(p.keys, key)
	p.vals = append(p.vals, val)
	return p
}

func (p *Params) Len() int { return len(p.keys) }

func (p *Params) Get(key string) (string, bool) {
	for i, k := range p.keys {
		if k == key {
			return p.vals[i], true
		}
	}
	return "", false
}

// Encode сериализует параметры как query string в порядке вставки.
func (p *Params) Encode() string {
	var b []byte
	for i, k := range p.keys {
		if i > 0 {
			b = append(b, '&')
		}
		b = append(b, url.QueryEscape(k)...)
		b = append(b, '=')
		b = append(b, url.QueryEscape(p.vals[i])...)
	}
	return string(b)
}

// HmacSign считает HMAC-SHA256 от query string и возвращает hex-подпись.
// Вызывающий сам доклеивает "&signature=<hex>" к уже собранной строке —
// пересериализация после подписи ломает совпадение байтов.
func HmacSign(secret string, p *Params) (string, error) {
	if secret == "" {
		return "", models.ConfigurationError("signing.hmac", "api secret is not set")
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(p.Encode()))
	return hex.EncodeToString(h.Sum(nil)), nil
}
