package logger

// LogStages defines standardized stage names for consistent logging
var LogStages = struct {
	Initialization   string
	Configuration    string
	Validation       string
	Resolution       string
	VendorRequest    string
	VendorResponse   string
	Normalization    string
	Extraction       string
	ResponseSent     string
	RequestReceived  string
	RequestCompleted string
	RequestFailed    string
	TrackingSetup    string
	Shutdown         string
}{
	Initialization:   "Initialization",
	Configuration:    "Configuration",
	Validation:       "Validation",
	Resolution:       "Resolution",
	VendorRequest:    "VendorRequest",
	VendorResponse:   "VendorResponse",
	Normalization:    "Normalization",
	Extraction:       "Extraction",
	ResponseSent:     "ResponseSent",
	RequestReceived:  "RequestReceived",
	RequestCompleted: "RequestCompleted",
	RequestFailed:    "RequestFailed",
	TrackingSetup:    "TrackingSetup",
	Shutdown:         "Shutdown",
}

// ComponentNames defines standardized component names
var ComponentNames = struct {
	App          string
	Server       string
	Middleware   string
	Handler      string
	Config       string
	Registry     string
	Selector     string
	Vendors      string
	Normalizer   string
	Database     string
	Monitoring   string
	ErrorHandler string
}{
	App:          "App",
	Server:       "Server",
	Middleware:   "Middleware",
	Handler:      "Handler",
	Config:       "Config",
	Registry:     "Registry",
	Selector:     "Selector",
	Vendors:      "Vendors",
	Normalizer:   "Normalizer",
	Database:     "Database",
	Monitoring:   "Monitoring",
	ErrorHandler: "ErrorHandler",
}
