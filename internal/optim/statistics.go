package optim

import "time"

// Statistics is the record of one finished epoch.
type Statistics struct {
	Epoch       int       // Zero-based epoch index
	AverageLoss float64   // Mean loss over the epoch's examples
	Timestamp   time.Time // When the epoch was reported
}
