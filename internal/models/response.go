package models

import "time"

// Response — единый конверт ответа для вызывающего слоя (REST).
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func OK(data any) Response {
	return Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

func Fail(err error) Response {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Response{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now().UnixMilli(),
	}
}
