package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/camarero/camarero/resource"
)

func encodeRequestBody(payload resource.Value) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	normalized, err := resource.Normalize(payload)
	if err != nil {
		return nil, validationError("failed to normalize request body", err)
	}
	encoded, err := json.Marshal(normalized)
	if err != nil {
		return nil, validationError("failed to encode JSON request body", err)
	}
	return encoded, nil
}

func decodeJSONResponse(body []byte) (resource.Value, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	value, err := resource.Decode(body)
	if err != nil {
		return nil, validationError("response body is not valid JSON", err)
	}
	return value, nil
}

func (g *Gateway) decodeListResponse(body []byte) ([]resource.Value, error) {
	var payload resource.Value
	if g.listJQ != "" {
		// gojq rejects json.Number inputs, so the jq pass runs over the
		// plainly decoded payload and the result is normalized after.
		var raw any
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return nil, validationError("response body is not valid JSON", err)
			}
		}
		reshaped, err := applyListJQ(raw, g.listJQ)
		if err != nil {
			return nil, err
		}
		payload, err = resource.Normalize(reshaped)
		if err != nil {
			return nil, validationError("failed to normalize list payload", err)
		}
	} else {
		decoded, err := decodeJSONResponse(body)
		if err != nil {
			return nil, err
		}
		payload = decoded
	}

	items, err := extractListItems(payload)
	if err != nil {
		return nil, err
	}

	list := make([]resource.Value, 0, len(items))
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return nil, validationError("list payload entries must be JSON objects", nil)
		}
		list = append(list, item)
	}
	return list, nil
}

// extractListItems accepts a bare array, an object with an "items" array,
// or an object with exactly one array field.
func extractListItems(payload any) ([]any, error) {
	switch typed := payload.(type) {
	case nil:
		return nil, nil
	case []any:
		return typed, nil
	case map[string]any:
		items, ok := typed["items"]
		if ok {
			values, valuesOK := items.([]any)
			if !valuesOK {
				return nil, validationError("list response \"items\" must be an array", nil)
			}
			return values, nil
		}

		arrayFieldKeys := make([]string, 0, len(typed))
		for key, field := range typed {
			if _, fieldIsArray := field.([]any); fieldIsArray {
				arrayFieldKeys = append(arrayFieldKeys, key)
			}
		}
		sort.Strings(arrayFieldKeys)

		if len(arrayFieldKeys) == 1 {
			values, _ := typed[arrayFieldKeys[0]].([]any)
			return values, nil
		}

		if len(arrayFieldKeys) > 1 {
			return nil, validationError(
				fmt.Sprintf(
					"list response object is ambiguous: expected an \"items\" array or a single array field, found array fields [%s]",
					strings.Join(arrayFieldKeys, ", "),
				),
				nil,
			)
		}

		return nil, validationError("list response object must include an \"items\" array", nil)
	default:
		return nil, validationError("list response must be an array or an object with an \"items\" array", nil)
	}
}

func classifyStatusError(statusCode int, body []byte) error {
	message := fmt.Sprintf("remote request failed with status %d: %s", statusCode, summarizeBody(body))

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return authError(message, nil)
	case http.StatusNotFound:
		return notFoundError(message, nil)
	}

	if statusCode >= 400 && statusCode < 500 {
		return validationError(message, nil)
	}
	return serverError(message, nil)
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty>"
	}
	if len(trimmed) > 512 {
		return trimmed[:512] + "..."
	}
	return trimmed
}
