package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名
const RequestIDHeader = "X-Request-ID"

// requestIDKey はgin.ContextにリクエストIDを保存するキー
const requestIDKey = "request_id"

// maxRequestIDLength を超えるクライアント指定のIDは採用しない
const maxRequestIDLength = 128

// requestID はリクエストごとにIDを割り当てるミドルウェア
// クライアントが指定したIDがあればそれを引き継ぐ
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// accessLogFormatter はアクセスログにリクエストIDを含める
func accessLogFormatter(param gin.LogFormatterParams) string {
	id, _ := param.Keys[requestIDKey].(string)
	if id == "" {
		id = "-"
	}

	return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %#v | request_id=%s\n%s",
		param.TimeStamp.Format(time.RFC3339),
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		param.Path,
		id,
		param.ErrorMessage,
	)
}
