package signing

import (
	"strconv"
	"strings"

	"trade_gateway/internal/models"
)

// NormalizeDecimal приводит десятичную строку к каноничному биржевому
// виду: без хвостовых нулей и без "-0". Идемпотентна.
//
//	"12345.0"  -> "12345"
//	"0.12340"  -> "0.1234"
//	"-0"       -> "0"
func NormalizeDecimal(s string) string {
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// FloatToWire форматирует число для подписи/провода. Значение обязано
// без потерь пройти через 8 знаков после запятой — иначе это ошибка
// подписи, а не тихое округление.
func FloatToWire(v float64) (string, error) {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	back, err := strconv.ParseFloat(s, 64)
	if err != nil || back != v {
		return "", models.SignatureError("signing.wire", "float %v is not exactly representable at 8 decimals", v)
	}
	return NormalizeDecimal(s), nil
}
