package models

// ReminderPayload is the task body queued when a booking is confirmed, fired
// ahead of the appointment by the async worker.
type ReminderPayload struct {
	RecordID  string `json:"recordId"`
	UserID    string `json:"userId"`
	FullName  string `json:"fullName"`
	Date      string `json:"date"`
	TimeLabel string `json:"timeLabel"`
	FireDate  string `json:"fireDate"`
}
