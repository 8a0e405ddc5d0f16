package events

import "time"

const (
	TypeTriageCompleted = "TRIAGE_COMPLETED"
	TypeOcrCompleted    = "OCR_COMPLETED"
	TypeOcrFailed       = "OCR_FAILED"
)

func TriageCompleted(sessionID, userID, level, source string) BaseEvent {
	return BaseEvent{
		Type: TypeTriageCompleted,
		Data: map[string]interface{}{
			"session_id":      sessionID,
			"user_id":         userID,
			"triage_level":    level,
			"analysis_source": source,
		},
		OccurredAt: time.Now(),
	}
}

func OcrCompleted(fileID, sessionID string) BaseEvent {
	return BaseEvent{
		Type:       TypeOcrCompleted,
		Data:       map[string]interface{}{"file_id": fileID, "session_id": sessionID},
		OccurredAt: time.Now(),
	}
}

func OcrFailed(fileID, sessionID, reason string) BaseEvent {
	return BaseEvent{
		Type:       TypeOcrFailed,
		Data:       map[string]interface{}{"file_id": fileID, "session_id": sessionID, "reason": reason},
		OccurredAt: time.Now(),
	}
}
