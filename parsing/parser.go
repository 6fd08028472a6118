package parsing

import (
	"errors"

	"github.com/poiesic/chatindex/core"
)

// Parser converts raw transcript bytes into messages.
type Parser interface {
	Parse(content []byte) ([]core.Message, error)
}

// ErrChatNotFound is returned when no transcript file exists for a chat ID.
var ErrChatNotFound = errors.New("chat not found")
