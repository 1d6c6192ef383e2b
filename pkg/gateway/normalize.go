package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/onurcolak/broadcast-hub/internal/domain"
)

// NormalizeResponse turns a 2xx gateway body into a GatewayResult. The
// provider has returned several payload shapes over time, so the message id
// is looked up at data.id, then id, then message_id. An explicit false in
// "status" or "success" marks a rejection; a body that is not a JSON object
// is a failure.
func NormalizeResponse(body []byte) domain.GatewayResult {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return domain.GatewayResult{Error: fmt.Sprintf("invalid gateway response: %s", truncate(string(body), 200))}
	}

	for _, key := range []string{"status", "success"} {
		if ok, isBool := payload[key].(bool); isBool && !ok {
			return domain.GatewayResult{Error: errorText(payload)}
		}
	}

	result := domain.GatewayResult{Success: true}

	if data, ok := payload["data"].(map[string]any); ok {
		result.MessageID = idString(data["id"])
	}
	if result.MessageID == "" {
		result.MessageID = idString(payload["id"])
	}
	if result.MessageID == "" {
		result.MessageID = idString(payload["message_id"])
	}

	return result
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return ""
	}
}

func errorText(payload map[string]any) string {
	for _, key := range []string{"message", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return "gateway rejected the message"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
