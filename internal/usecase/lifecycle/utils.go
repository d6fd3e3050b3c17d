package lifecycle

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// ID formats carried over from the original deployment so existing records
// and habits stay recognizable.

func newRequestID(now time.Time) string {
	return "SOL-" + now.UTC().Format("20060102-150405")
}

func newMaterialID() string {
	return "MAT-" + randomHex(8)
}

func newEventID() string {
	return "EVT-" + randomHex(12)
}

func newAttachmentID() string {
	return "FILE-" + randomHex(12)
}

func randomHex(n int) string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:])[:n])
}
