package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// ctxtUserName describes user in the context.
	ctxtUserName muxKeys = "user"
)

const (
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
	// routePublic describes public api prefix.
	routePublic = "/pub"
	// routeCamera describes camera api prefix.
	routeCamera = "/camera"
	// routeMotor describes motor api prefix.
	routeMotor = "/motor"
)

const (
	// Root endpoint greeting.
	welcomeMessage = "Welcome to the Fast Lab IO API"
	// Basic auth realm.
	authRealm = "fastlab"
)
