package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	RoutesPath  = "/api/routes"
)

// Settings Routes
const (
	SettingsBasePath        = "/api/settings"
	SettingsFieldPath       = "/api/settings/fields/{field}"
	SettingsResetPath       = "/api/settings/reset"
	SettingsPresetsPath     = "/api/settings/presets"
	SettingsPresetPath      = "/api/settings/presets/{name}"
	SettingsSizePresetsPath = "/api/settings/size-presets"
	SettingsSizePresetPath  = "/api/settings/size-presets/{name}"
	SettingsStatisticsPath  = "/api/settings/statistics"
)

// Generator Routes
const (
	QRPreviewPath    = "/api/qr/preview"
	QRPreviewPNGPath = "/api/qr/preview.png"
	QRDownloadPath   = "/api/qr/download"
	QRCopyPath       = "/api/qr/copy"
	QRSharePath      = "/api/qr/share"
)

// History Routes
const (
	HistoryBasePath   = "/api/history"
	HistoryDetailPath = "/api/history/{id}"
	GalleryPath       = "/api/gallery"
	SessionEndPath    = "/api/session/end"
)

// Account Routes
const (
	AuthSignInPath  = "/api/auth/signin"
	AuthSignUpPath  = "/api/auth/signup"
	AuthSignOutPath = "/api/auth/signout"
	AuthMePath      = "/api/auth/me"
	ContactPath     = "/api/contact"
)

// Event Stream Routes
const (
	EventsPath = "/api/events"
)

// URL Parameters
const (
	ParamField = "field"
	ParamName  = "name"
	ParamID    = "id"
)

// Query Parameters
const (
	QueryParamConfirm = "confirm"
)
