package amqp

import (
	"encoding/json"
	"time"
)

// DatasetReloadedMessage announces that the record set was replaced.
// Consumers use it to drop derived caches or re-pull their views.
type DatasetReloadedMessage struct {
	Count     int       `json:"count"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDatasetReloadedMessage(count int, source string) *DatasetReloadedMessage {
	return &DatasetReloadedMessage{
		Count:     count,
		Source:    source,
		Timestamp: time.Now(),
	}
}

func (m *DatasetReloadedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DatasetReloadedMessageFromJSON(data []byte) (*DatasetReloadedMessage, error) {
	var msg DatasetReloadedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
