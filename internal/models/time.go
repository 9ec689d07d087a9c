package models

import (
	"time"
)

// Provider timestamps arrive as "2006-01-02 15:04:05" in the provider's
// GMT+8 operating zone. Everything persisted or reported to the wallet is
// normalized to the GMT-4 back-office zone.
var (
	ProviderLocation = time.FixedZone("GMT+8", 8*60*60)
	StorageLocation  = time.FixedZone("GMT-4", -4*60*60)
)

const TimeLayout = "2006-01-02 15:04:05"

// ParseProviderTime parses a provider callback timestamp and normalizes it
// to the storage zone.
func ParseProviderTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, value, ProviderLocation)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(StorageLocation), nil
}

// FormatStorageTime renders a timestamp the way it is persisted and sent in
// wallet reports.
func FormatStorageTime(t time.Time) string {
	return t.In(StorageLocation).Format(TimeLayout)
}
