package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	mem "lumijob/pkg/memcache"
	"lumijob/pkg/utils"
)

const IdempotencyHeader = "Idempotency-Key"

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored success response for a repeated
// Idempotency-Key from the same caller. Only success envelopes are kept.
func Idempotency(store mem.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if store == nil || header == "" {
			c.Next()
			return
		}
		key := c.GetString(ContextEmail) + "|" + c.FullPath() + "|" + header

		if resp, pending, ok := store.Lookup(key); ok {
			if pending {
				utils.RespondError(c, http.StatusConflict, "A request with this Idempotency-Key is in progress")
				c.Abort()
				return
			}
			c.Header("Idempotent-Replayed", "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", resp)
			c.Abort()
			return
		}
		if !store.Reserve(key, ttl) {
			utils.RespondError(c, http.StatusConflict, "A request with this Idempotency-Key is in progress")
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		var envelope utils.APIResponse
		if w.Status() == http.StatusOK &&
			json.Unmarshal(w.body.Bytes(), &envelope) == nil &&
			envelope.Status == utils.StatusSuccess {
			store.Complete(key, w.body.Bytes())
			return
		}
		store.Release(key)
	}
}
