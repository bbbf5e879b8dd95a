package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP feed server in response headers.
var UserAgent = "Go-Calendar/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Calendar"
	AppID             = "com.github.tartampluch.go-calendar"
	BinaryName        = "go-calendar"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
	StoreDirName      = ".calendar"
	StoreFileText     = "calendar_events.txt"
	StoreFileSQLite   = "calendar_events.db"
	EnvPrefix         = "GOCAL"
	KeyringService    = "com.github.tartampluch.go-calendar"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the event store, settings and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion     = "version"
	FlagDebug       = "debug"
	FlagSettings    = "settings"
	FlagStore       = "store"
	FlagBackend     = "backend"
	FlagNoColor     = "no-color"
	FlagDate        = "date"
	FlagTime        = "time"
	FlagDuration    = "duration"
	FlagTitle       = "title"
	FlagDescription = "description"
	FlagCategory    = "category"
	FlagPriority    = "priority"
	FlagCheck       = "check-conflicts"
	FlagRRule       = "rrule"
	FlagID          = "id"
	FlagFrom        = "from"
	FlagTo          = "to"
	FlagView        = "view"
	FlagOutput      = "output"
	FlagPort        = "port"
	FlagLanguage    = "lang"
	FlagFile        = "file"
	FlagUser        = "user"
	FlagPassword    = "password"
	FlagPurge       = "purge"
	FlagRefresh     = "refresh"

	FlagDescVersion     = "Show application version and exit"
	FlagDescDebug       = "Enable debug logging"
	FlagDescSettings    = "Path to the settings file"
	FlagDescStore       = "Override the event store path"
	FlagDescBackend     = "Override the store backend (text|sqlite)"
	FlagDescNoColor     = "Disable colored output"
	FlagDescDate        = "Event date (YYYY-MM-DD)"
	FlagDescTime        = "Event start time (HH:MM)"
	FlagDescDuration    = "Event duration in minutes"
	FlagDescTitle       = "Event title"
	FlagDescDescription = "Event description"
	FlagDescCategory    = "Event category (work, personal, health, education, social, travel, finance, other)"
	FlagDescPriority    = "Event priority (low, medium, high, urgent)"
	FlagDescCheck       = "Reject the event if it overlaps an existing one on the same day"
	FlagDescRRule       = "Repeat the event following an RFC 5545 RRULE (e.g. FREQ=WEEKLY;COUNT=4)"
	FlagDescID          = "Event id"
	FlagDescFrom        = "Range start date (YYYY-MM-DD)"
	FlagDescTo          = "Range end date (YYYY-MM-DD)"
	FlagDescView        = "Listing view (all, upcoming, today, past)"
	FlagDescOutput      = "Output format (text, json, yaml)"
	FlagDescPort        = "HTTP feed port"
	FlagDescLanguage    = "Display language (en, fr)"
	FlagDescFile        = "Output file (\"-\" for stdout)"
	FlagDescUser        = "Account name whose password is kept in the system keyring"
	FlagDescPassword    = "Password to store (read from stdin when omitted)"
	FlagDescPurge       = "Also delete the saved store"
	FlagDescRefresh     = "Interval between reloads of the store while serving"
	FlagDescDateFilter  = "Only consider this date (YYYY-MM-DD)"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	StdoutPath       = "-"
)

// -----------------------------------------------------------------------------
// CLI Commands
// -----------------------------------------------------------------------------

const (
	CmdShortRoot        = "Personal calendar backed by a binary search tree"
	CmdShortAdd         = "Add an event"
	CmdShortList        = "List events"
	CmdShortShow        = "Show one event"
	CmdShortUpdate      = "Update an event"
	CmdShortDelete      = "Delete an event by id or title"
	CmdShortTree        = "Print the event tree"
	CmdShortStats       = "Print tree statistics"
	CmdShortConflicts   = "Report overlapping events"
	CmdShortExport      = "Export events as iCalendar"
	CmdShortImport      = "Import birthdays from a vCard file or URL"
	CmdShortServe       = "Serve the calendar as an iCalendar feed"
	CmdShortClear       = "Remove every event"
	CmdShortRestore     = "Reload events from the last save"
	CmdShortCredentials = "Manage vCard source passwords in the system keyring"
	CmdShortCredSet     = "Store a password"
	CmdShortCredDelete  = "Forget a password"

	// AnnotationNoSession marks commands that never touch the event store.
	AnnotationNoSession = "no-session"
)

// -----------------------------------------------------------------------------
// Views & Output Formats
// -----------------------------------------------------------------------------

const (
	ViewAll      = "all"
	ViewUpcoming = "upcoming"
	ViewToday    = "today"
	ViewPast     = "past"

	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// -----------------------------------------------------------------------------
// Store Backends
// -----------------------------------------------------------------------------

const (
	BackendText   = "text"
	BackendSQLite = "sqlite"

	// StoreFormatVersion is written in the header line of text stores.
	StoreFormatVersion = "2.0"
	// StoreHeaderPrefix marks comment/header lines in text stores.
	StoreHeaderPrefix = "#"
	FormatStoreHeader = "# go-calendar store version=%s exportedAt=%s\n"

	// Persisted record field names. Exactly these nine make up a record.
	FieldID              = "id"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldDurationMinutes = "durationMinutes"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldPriority        = "priority"
	FieldCreatedAt       = "createdAt"

	SQLiteDriver = "sqlite"
)

// RecordFields lists the persisted fields in write order.
var RecordFields = []string{
	FieldID,
	FieldDate,
	FieldTime,
	FieldDurationMinutes,
	FieldTitle,
	FieldDescription,
	FieldCategory,
	FieldPriority,
	FieldCreatedAt,
}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyCatWork      = "category_work"
	TKeyCatPersonal  = "category_personal"
	TKeyCatHealth    = "category_health"
	TKeyCatEducation = "category_education"
	TKeyCatSocial    = "category_social"
	TKeyCatTravel    = "category_travel"
	TKeyCatFinance   = "category_finance"
	TKeyCatOther     = "category_other"

	TKeyPrioLow    = "priority_low"
	TKeyPrioMedium = "priority_medium"
	TKeyPrioHigh   = "priority_high"
	TKeyPrioUrgent = "priority_urgent"

	TKeyEmptyCalendar = "empty_calendar"
	TKeyNoEvents      = "no_events"
	TKeyEventCount    = "event_count"   // Requires Count
	TKeyConflictPair  = "conflict_pair" // Requires First, Second
	TKeyNoConflicts   = "no_conflicts"
	TKeyEventAdded    = "event_added"   // Requires Title
	TKeyEventDeleted  = "event_deleted" // Requires Title
	TKeyEventUpdated  = "event_updated" // Requires Title
	TKeyImported      = "imported"      // Requires Count
	TKeyExported      = "exported"      // Requires Count, Path
	TKeyCleared       = "cleared"
	TKeyBirthday      = "birthday_summary"     // Requires Name
	TKeyBirthdayAge   = "birthday_summary_age" // Requires Name, Age
	TKeyRestored      = "restored"             // Requires Count
	TKeyStatsTitle    = "stats_title"
)

// TranslationKeys lists every key the locale files must define.
var TranslationKeys = []string{
	TKeyCatWork, TKeyCatPersonal, TKeyCatHealth, TKeyCatEducation,
	TKeyCatSocial, TKeyCatTravel, TKeyCatFinance, TKeyCatOther,
	TKeyPrioLow, TKeyPrioMedium, TKeyPrioHigh, TKeyPrioUrgent,
	TKeyEmptyCalendar, TKeyNoEvents, TKeyEventCount, TKeyConflictPair,
	TKeyNoConflicts, TKeyEventAdded, TKeyEventDeleted, TKeyEventUpdated,
	TKeyImported, TKeyExported, TKeyCleared, TKeyBirthday, TKeyBirthdayAge,
	TKeyRestored, TKeyStatsTitle,
}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultDurationMinutes = 60
	DefaultPort            = "18081"
	DefaultLanguage        = "en"
	DefaultBackend         = BackendText
	DefaultUpcomingDays    = 30
	DefaultCheckConflicts  = true
	DefaultRecurrenceLimit = 366
	DefaultLeapYear        = 2000 // Leap year fallback for vCard dates like --02-29

	// Imported birthdays become all-day Personal events.
	BirthdayDurationMinutes = 24 * 60
	FallbackName            = "Unknown"
	FallbackSummary         = "🎂 %s"
	FormatBirthdayKey       = "birthday|%s|%s|%d"
	FormatBornOn            = "Born %s"

	// TitleTruncateCompact is the title width used by tree rendering.
	TitleTruncateCompact = 20
	// TitleTruncateCard is the title/description width used by the boxed card.
	TitleTruncateCard = 47
	Ellipsis          = "..."

	EmptyCalendar = "(Empty Calendar)"
	TreeBranch    = "├── "
	TreeLast      = "└── "
	TreePipe      = "│   "
	TreeSpace     = "    "
)

// SupportedLanguages defines the list of available display languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Calendar//Engine//EN"
	ICalCalName = "Personal Calendar"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocalendar"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropCreated     = "CREATED"
	PropCategories  = "CATEGORIES"
	PropPriority    = "PRIORITY"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// RFC 5545 PRIORITY values (1 highest, 9 lowest).
	ICalPriorityUrgent = 1
	ICalPriorityHigh   = 3
	ICalPriorityMedium = 5
	ICalPriorityLow    = 9

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events exist.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatISO       = "2006-01-02"
	DateFormatDisplay   = "02/01/2006"
	TimeFormatISO       = "15:04"
	TimeFormatISOSecond = "15:04:05"
	TimeFormatDisplay   = "15:04"
	DateTimeFormatISO   = time.RFC3339Nano

	// vCard BDAY layouts
	DateFormatFullBasic = "20060102"
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	FormatUID = "%s@%s"

	RRulePrefix = "RRULE:"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	RouteRoot           = "/"
	RouteStats          = "/stats"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderServer          = "Server"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDateMissing          = "event date cannot be empty"
	ErrTimeMissing          = "event time cannot be empty"
	ErrTitleBlank           = "event title cannot be empty"
	ErrDurationPositive     = "event duration must be positive"
	ErrDurationWholeMinutes = "event duration must be a whole number of minutes"
	ErrTimeRange            = "event time must be between 00:00:00 and 23:59:59"
	ErrTimeWholeSeconds     = "event time must be a whole number of seconds"
	ErrCategoryInvalid      = "event category is not a known category"
	ErrPriorityInvalid      = "event priority is not a known priority"
	ErrDateParse            = "unable to parse date"
	ErrTimeParse            = "unable to parse time"
	ErrUnknownCategory      = "unknown category"
	ErrUnknownPriority      = "unknown priority"

	ErrStoreSave      = "failed to save events"
	ErrStoreLoad      = "failed to load events"
	ErrStoreDelete    = "failed to delete data"
	ErrStoreBackend   = "unsupported store backend"
	ErrRecordSyntax   = "malformed record"
	ErrRecordField    = "unknown record field"
	ErrRecordDup      = "duplicate record field"
	ErrRecordMissing  = "missing record field"
	ErrRecordDuration = "invalid durationMinutes"

	ErrSettingsPath     = "settings path is empty"
	ErrSettingsLoad     = "failed to load settings"
	ErrSettingsSave     = "failed to save settings"
	ErrSettingsInvalid  = "invalid settings"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrRRuleParse       = "invalid recurrence rule"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrSourceEmpty      = "import source is empty"
	ErrRequestCreate    = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrHomeDir          = "could not determine user home dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrMissingSelector  = "either --id or --title is required"
	ErrUnknownView      = "unknown view"
	ErrUnknownOutput    = "unknown output format"
	ErrRangeIncomplete  = "both --from and --to are required"
	ErrNothingToRestore = "no saved data found"
	ErrKeyringGet       = "failed to read password from keyring"
	ErrKeyringSet       = "failed to store password in keyring"
	ErrKeyringDelete    = "failed to delete password from keyring"
	ErrPasswordEmpty    = "password cannot be empty"
	ErrUserEmpty        = "user cannot be empty"
	ErrExportWrite      = "failed to write iCalendar file"
	ErrEventCreate      = "failed to create event"
	ErrEventUpdate      = "failed to update event"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSkippedRecord   = "Skipping malformed event record"
	MsgSkippedRow      = "Skipping malformed event row"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgStoreSaved      = "Events saved"
	MsgStoreLoaded     = "Events loaded"
	MsgStoreDeleted    = "Store deleted"
	MsgStoreMissing    = "No saved data found, starting with empty calendar"
	MsgEventInserted   = "Event inserted"
	MsgEventDeleted    = "Event deleted"
	MsgConflict        = "Event conflicts with an existing event"
	MsgSettingsCreated = "Default settings file created"
	MsgSettingsLoaded  = "Settings loaded"
	MsgGenSuccess      = "Calendar generation successful"
	MsgImportSuccess   = "Birthday import successful"
	MsgFetchStart      = "Initiating vCard download"
	MsgFetchStatus     = "Server returned error status"
	MsgFetchBody       = "vCards downloading"
	MsgRecurrence      = "Recurrence expanded"
	MsgSessionSkipped  = "Skipping event already present"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgCredentialsUsed = "Using keyring credentials for vCard source"
	MsgCredentialsSet  = "Password stored in keyring"
	MsgCredentialsDel  = "Password removed from keyring"
	MsgFeedReload      = "Feed reloaded from store"
	MsgSessionSaved    = "Unsaved changes written to store"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyLine      = "line"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyBackend   = "backend"
	LogKeyCount     = "count"
	LogKeySkipped   = "skipped"
	LogKeyID        = "event_id"
	LogKeyTitle     = "title"
	LogKeyDate      = "date"
	LogKeyExisting  = "existing_id"
	LogKeySize      = "size"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyEvents    = "events"
	LogKeyDuration  = "duration_ms"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeySource    = "source"
	LogKeyRule      = "rule"
	LogKeyLength    = "content_length"
	LogKeyModCount  = "mod_count"
	LogKeyUser      = "user"
	LogKeyCommand   = "command"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompCLI      = "cli"
	CompIndex    = "index"
	CompStore    = "store"
	CompEngine   = "engine"
	CompFetcher  = "fetcher"
	CompServer   = "server"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
