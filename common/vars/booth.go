package vars

import (
	"sync/atomic"
	"unsafe"

	"expo-booth/model"
)

// boothDataPtr holds a pointer to the current per-event booth snapshots.
// This approach allows for lock-free reads with atomic updates.
var boothDataPtr unsafe.Pointer

// GetEventBooths returns the current booth snapshot for an event.
// This operation is lock-free and safe for concurrent access.
func GetEventBooths(eventId int64) []model.BoothResponse {
	ptr := atomic.LoadPointer(&boothDataPtr)
	if ptr == nil {
		return nil
	}
	return (*(*map[int64][]model.BoothResponse)(ptr))[eventId]
}

// SetEventBooths atomically replaces the booth snapshots for all events.
// It creates a copy of the input data to ensure consistency.
// Pass nil or an empty map to clear the snapshots.
func SetEventBooths(booths map[int64][]model.BoothResponse) {
	var ptr unsafe.Pointer

	if len(booths) > 0 {
		boothsCopy := make(map[int64][]model.BoothResponse, len(booths))
		for eventId, rows := range booths {
			rowsCopy := make([]model.BoothResponse, len(rows))
			copy(rowsCopy, rows)
			boothsCopy[eventId] = rowsCopy
		}
		ptr = unsafe.Pointer(&boothsCopy)
	}

	// Atomically replace the pointer
	atomic.StorePointer(&boothDataPtr, ptr)
}

func init() {
	atomic.StorePointer(&boothDataPtr, nil)
}
