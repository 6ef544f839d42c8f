package domain

import "context"

// Well-known settings keys.
const (
	SettingSiteTitle       = "site_title"
	SettingSiteDescription = "site_description"
	SettingOGPImageURL     = "ogp_image_url"
	SettingContactEmail    = "contact_email"
)

// SettingsRepository stores site settings as key/value pairs.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}
