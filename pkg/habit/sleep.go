package habit

import (
	"fmt"
	"math"
	"time"
)

const clockLayout = "15:04"

// SleepHours returns hours between bed and wake rounded to two decimals. A
// wake time earlier than the bed time is on the following day. The result
// is nil when either time is empty.
func SleepHours(bed, wake string) (*float64, error) {
	if bed == "" || wake == "" {
		return nil, nil
	}
	b, err := time.Parse(clockLayout, bed)
	if err != nil {
		return nil, fmt.Errorf("bad bed time %q: want HH:MM", bed)
	}
	w, err := time.Parse(clockLayout, wake)
	if err != nil {
		return nil, fmt.Errorf("bad wake time %q: want HH:MM", wake)
	}
	if w.Before(b) {
		w = w.Add(24 * time.Hour)
	}
	h := math.Round(w.Sub(b).Hours()*100) / 100
	return &h, nil
}
