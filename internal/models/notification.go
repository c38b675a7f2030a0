package models

import "github.com/yasinhessnawi1/QRForge_Backend/internal/constants"

// Notification is a transient message for the user, shown by the UI as a toast.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Success builds a success notification.
func Success(message string) Notification {
	return Notification{Level: constants.LevelSuccess, Message: message}
}

// Failure builds an error notification.
func Failure(message string) Notification {
	return Notification{Level: constants.LevelError, Message: message}
}

// Warning builds a warning notification.
func Warning(message string) Notification {
	return Notification{Level: constants.LevelWarning, Message: message}
}

// Info builds an informational notification.
func Info(message string) Notification {
	return Notification{Level: constants.LevelInfo, Message: message}
}
