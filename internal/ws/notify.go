package ws

import (
	"encoding/json"
	"time"

	"campus-match/internal/usecase"
)

type sweepEvent struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	TriggerID string `json:"trigger_id"`
	Processed int    `json:"processed"`
	Matched   int    `json:"matched"`
	Notified  int    `json:"notified"`
	Failed    int    `json:"failed"`
	Timestamp string `json:"timestamp"`
}

// ProgressBroadcaster pushes sweep progress onto the hub so operators can
// watch long fan-outs without polling.
type ProgressBroadcaster struct {
	hub *Hub
}

func NewProgressBroadcaster(hub *Hub) *ProgressBroadcaster {
	return &ProgressBroadcaster{hub: hub}
}

func (b *ProgressBroadcaster) SweepProgress(evt usecase.SweepProgressEvent) {
	if b == nil || b.hub == nil {
		return
	}

	typ := "sweep_progress"
	if evt.Done {
		typ = "sweep_completed"
	}

	out := sweepEvent{
		Type:      typ,
		Kind:      evt.Kind,
		TriggerID: evt.TriggerID.String(),
		Processed: evt.Counts.Processed,
		Matched:   evt.Counts.Matched,
		Notified:  evt.Counts.Notified,
		Failed:    evt.Counts.Failed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(out)
	if err != nil {
		return
	}
	b.hub.Broadcast(body)
}
