package repositories

import "time"

// SaveMetricsRepository records what the save pipeline does.
type SaveMetricsRepository interface {
	// SaveFinished is called once per save attempt that left the Idle state.
	SaveFinished(outcome string, errKind string, duration time.Duration)
	// SaveRejected is called when a request arrives while a save is in flight.
	SaveRejected()
	// AssetUploaded is called for every asset committed to the remote store.
	AssetUploaded(size int)
}
