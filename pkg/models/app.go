package models

// AppInfo describes the desktop application
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
	Arch        string `json:"arch"`
}

// SystemInfo describes the host the application runs on
type SystemInfo struct {
	OS     string `json:"os"`
	Arch   string `json:"arch"`
	Family string `json:"family"`
}
