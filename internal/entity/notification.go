package entity

import (
	"encoding/json"
	"fmt"
	"path"
)

// Notification is the object-created event delivered through the queue:
// {"detail": {"bucket": {"name": ...}, "object": {"key": ...}}}
type Notification struct {
	Detail NotificationDetail `json:"detail"`
}

type NotificationDetail struct {
	Bucket BucketData `json:"bucket"`
	Object ObjectData `json:"object"`
}

type BucketData struct {
	Name string `json:"name"`
}

type ObjectData struct {
	Key  string `json:"key"`
	Size int64  `json:"size,omitempty"`
}

func ParseNotification(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, err)
	}
	if n.Detail.Bucket.Name == "" || n.Detail.Object.Key == "" {
		return nil, ErrMissingObject
	}
	return &n, nil
}

func (n *Notification) Bucket() string { return n.Detail.Bucket.Name }

func (n *Notification) Key() string { return n.Detail.Object.Key }

// FileName is the base name of the object key. It is the document id of the
// stored result, so re-processing an object overwrites its previous result.
func (n *Notification) FileName() string {
	return path.Base(n.Detail.Object.Key)
}
