package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Таксономия ошибок шлюза. Конфигурация/подпись/домен режутся локально,
// до сетевого вызова; network/exchange нормализуются на границе клиента
// и никогда не летят сырыми сквозь оркестратор.

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindSignature
	KindNetwork
	KindExchange
	KindDomain
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindSignature:
		return "signature"
	case KindNetwork:
		return "network"
	case KindExchange:
		return "exchange"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

type GatewayError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func newErr(kind ErrorKind, op, format string, args ...any) *GatewayError {
	return &GatewayError{Kind: kind, Op: op, Err: errors.Errorf(format, args...)}
}

func ConfigurationError(op, format string, args ...any) *GatewayError {
	return newErr(KindConfiguration, op, format, args...)
}

func SignatureError(op, format string, args ...any) *GatewayError {
	return newErr(KindSignature, op, format, args...)
}

func DomainError(op, format string, args ...any) *GatewayError {
	return newErr(KindDomain, op, format, args...)
}

// NetworkError оборачивает транспортную ошибку (таймаут, обрыв, битое тело).
func NetworkError(op string, err error) *GatewayError {
	return &GatewayError{Kind: KindNetwork, Op: op, Err: errors.WithStack(err)}
}

// ExchangeError — корректный ответ биржи с кодом ошибки.
func ExchangeError(op string, code, msg string) *GatewayError {
	return newErr(KindExchange, op, "code=%s msg=%s", code, msg)
}

// KindOf достаёт вид ошибки из цепочки; unknown для чужих ошибок.
func KindOf(err error) ErrorKind {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

func IsDomain(err error) bool        { return KindOf(err) == KindDomain }
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }
