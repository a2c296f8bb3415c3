package ulid

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewULID generates a new ULID string. IDs from one process sort in generation order,
// which keeps generated batch IDs (and the file event store's listing) in ingestion order.
var NewULID = func() string {
	return newULIDAt(time.Now())
}

func newULIDAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
