package models

type HomeworkSubmittedEvent struct {
	EventID     string `json:"event_id"`
	HomeworkID  int64  `json:"homework_id"`
	ContainerID int64  `json:"container_id"`
	OwnerID     int64  `json:"owner_id"`
	FileID      string `json:"file_id"`
	FileName    string `json:"file_name"`
	Timestamp   int64  `json:"timestamp"`
}
