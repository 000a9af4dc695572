package utils

import (
	"log"
	"strings"
)

const maxLogMessage = 500

// LogEvent prints a standardized line with module/action/request_id.
// Model output and prompts can be long; the message is cut at maxLogMessage.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, Truncate(message, maxLogMessage))
}
