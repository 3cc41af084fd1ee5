package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing Errors (N001-N019)
	// ============================================

	"N001": {
		Category: CategoryRouting,
		Message:  "No route matches the address",
		Detail:   "No entry of the route table matches this path. Routes are compared segment by segment and must have the same number of segments as the path.",
		DocURL:   "https://navkit.dev/docs/errors/N001",
	},
	"N002": {
		Category: CategoryRouting,
		Message:  "Redirect loop detected",
		Detail:   "Following redirects from this address never reached a renderable route within the redirect limit.",
		DocURL:   "https://navkit.dev/docs/errors/N002",
	},
	"N003": {
		Category: CategoryRouting,
		Message:  "Unknown route name",
		Detail:   "A navigation target refers to a route name that is not in the table.",
		DocURL:   "https://navkit.dev/docs/errors/N003",
	},
	"N004": {
		Category: CategoryRouting,
		Message:  "Missing route parameter",
		Detail:   "A named navigation target does not supply a value for every parameter segment of the route.",
		DocURL:   "https://navkit.dev/docs/errors/N004",
	},
	"N005": {
		Category: CategoryRouting,
		Message:  "Empty navigation target",
		Detail:   "A navigation target has neither a path nor a route name.",
		DocURL:   "https://navkit.dev/docs/errors/N005",
	},
	"N006": {
		Category: CategoryRouting,
		Message:  "Router already attached",
		Detail:   "A router can be attached to one host only once.",
		DocURL:   "https://navkit.dev/docs/errors/N006",
	},
	"N007": {
		Category: CategoryRouting,
		Message:  "Router detached",
		Detail:   "A detached router cannot be attached again. Create a new router instead.",
		DocURL:   "https://navkit.dev/docs/errors/N007",
	},

	// ============================================
	// Configuration Errors (N020-N039)
	// ============================================

	"N020": {
		Category: CategoryConfig,
		Message:  "Duplicate route name",
		Detail:   "Two routes in the table share the same non-empty name.",
		DocURL:   "https://navkit.dev/docs/errors/N020",
	},
	"N021": {
		Category: CategoryConfig,
		Message:  "Invalid route pattern",
		Detail:   "A route path has a parameter segment without a name, or repeats a parameter name.",
		DocURL:   "https://navkit.dev/docs/errors/N021",
	},
	"N022": {
		Category: CategoryConfig,
		Message:  "Invalid address mode",
		Detail:   `The mode must be "history" (or "path") or "hash" (or "fragment").`,
		DocURL:   "https://navkit.dev/docs/errors/N022",
	},
	"N023": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No navkit.json was found in the directory or any of its parents.",
		DocURL:   "https://navkit.dev/docs/errors/N023",
	},
	"N024": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   "https://navkit.dev/docs/errors/N024",
	},
	"N025": {
		Category: CategoryConfig,
		Message:  "Invalid route definition",
		Detail:   "A route must have a path and either a view or a redirect, but not both.",
		DocURL:   "https://navkit.dev/docs/errors/N025",
	},
	"N026": {
		Category: CategoryConfig,
		Message:  "Invalid server settings",
		Detail:   "The server address and buffer sizes must be set to usable values.",
		DocURL:   "https://navkit.dev/docs/errors/N026",
	},

	// ============================================
	// Remote Errors (N040-N059)
	// ============================================

	"N040": {
		Category: CategoryRemote,
		Message:  "WebSocket upgrade failed",
		Detail:   "The client connection could not be upgraded to a WebSocket.",
		DocURL:   "https://navkit.dev/docs/errors/N040",
	},
	"N041": {
		Category: CategoryRemote,
		Message:  "Invalid client frame",
		Detail:   "The client sent a frame that is not valid JSON or has an unknown type.",
		DocURL:   "https://navkit.dev/docs/errors/N041",
	},
	"N042": {
		Category: CategoryRemote,
		Message:  "Session closed",
		Detail:   "The session has been closed and accepts no more work.",
		DocURL:   "https://navkit.dev/docs/errors/N042",
	},

	// ============================================
	// CLI Errors (N060-N079)
	// ============================================

	"N060": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was given arguments it cannot use.",
		DocURL:   "https://navkit.dev/docs/errors/N060",
	},

	"N099": {
		Category: CategoryRouting,
		Message:  "Internal error",
		Detail:   "An unexpected error occurred.",
		DocURL:   "https://navkit.dev/docs/errors/N099",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
