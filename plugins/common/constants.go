package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogInstrumentToken describes instrument log entry.
	LogInstrumentToken = "instrument"
	// LogInstrumentHostToken describes instrument address log entry.
	LogInstrumentHostToken = "instrument_addr"
	// LogAxisToken describes motor axis log entry.
	LogAxisToken = "axis"
	// LogCommandToken describes instrument command log entry.
	LogCommandToken = "cmd"
	// LogValueToken describes command value log entry.
	LogValueToken = "value"
	// LogSessionToken describes stream session log entry.
	LogSessionToken = "session"
	// LogUserNameToken describes user name log entry.
	LogUserNameToken = "user"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
)
