package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const DeviceIDKey contextKey = "device_id"

// DeviceIDHeader carries the anonymous per-device identifier. A device
// receives it once and replays it on every request; the middleware mints
// one for first contact and echoes it back so the client can persist it.
// Only a uuid is accepted back: a self-chosen value would fail the
// uuid-typed ledger column much later, so it is replaced up front.
const DeviceIDHeader = "X-Device-ID"

type DeviceMiddleware struct{}

func NewDeviceMiddleware() *DeviceMiddleware {
	return &DeviceMiddleware{}
}

func (m *DeviceMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := r.Header.Get(DeviceIDHeader)
		if uuid.Validate(deviceID) != nil {
			deviceID = uuid.NewString()
		}
		w.Header().Set(DeviceIDHeader, deviceID)

		ctx := context.WithValue(r.Context(), DeviceIDKey, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDeviceIDFromContext extracts the device id from context
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDKey).(string)
	return deviceID, ok
}
