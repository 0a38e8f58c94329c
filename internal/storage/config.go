package storage

// Config holds banner storage configuration
type Config struct {
	Dir          string   // Local directory for uploads
	BaseURL      string   // Public URL prefix for stored files, e.g. "http://localhost:8000/media/banners"
	MaxBytes     int64    // Largest accepted upload
	AllowedTypes []string // Accepted MIME types
}

// Allows reports whether contentType is an accepted upload type.
func (c Config) Allows(contentType string) bool {
	for _, t := range c.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
