package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"
)

// Logger emits HMAC-signed JSON audit events on stdout, one per line.
type Logger struct {
	Enabled bool
	Secret  []byte
}

func New(enabled bool, secret string) *Logger {
	return &Logger{
		Enabled: enabled,
		Secret:  []byte(secret),
	}
}

func (l *Logger) Sign(payload []byte) string {
	m := hmac.New(sha256.New, l.Secret)
	m.Write(payload)
	return hex.EncodeToString(m.Sum(nil))
}

// Write serializes the event without "sig", signs it, then emits the signed
// event. Events land in container logs as plain JSON lines.
func (l *Logger) Write(event map[string]any) {
	if !l.Enabled {
		return
	}
	if _, ok := event["ts"]; !ok {
		event["ts"] = time.Now().Unix()
	}

	tmp := make(map[string]any, len(event))
	for k, v := range event {
		if k == "sig" {
			continue
		}
		tmp[k] = v
	}
	b, _ := json.Marshal(tmp)
	sig := l.Sign(b)

	tmp["sig"] = sig
	out, _ := json.Marshal(tmp)
	_, _ = os.Stdout.Write(append(out, '\n'))
}
