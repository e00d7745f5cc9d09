package errors

import "sort"

// Template defines a registered diagnostic.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Authoring (R001-R009)
	// ============================================

	"R001": {
		Category: CategoryAuthoring,
		Message:  "Duplicate keys detected",
		Detail:   "Two siblings share a key. The later one wins the key lookup, which may reuse the wrong element.",
	},
	"R002": {
		Category: CategoryAuthoring,
		Message:  "Unknown custom element",
		Detail:   "The tag is neither a platform element nor an ignored element. Check that the component is registered.",
	},
	"R003": {
		Category: CategoryAuthoring,
		Message:  "Unmatched closing tag",
		Detail:   "A closing tag has no matching open element. It was closed on a best-effort basis.",
	},

	// ============================================
	// Invariants (R010-R019)
	// ============================================

	"R010": {
		Category: CategoryInvariant,
		Message:  "Patching nodes that are not the same node",
		Detail:   "patchVnode reused an element for a node that the equality oracle would have replaced.",
	},

	// ============================================
	// Hydration (H040-H049)
	// ============================================

	"H040": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: element type differs",
		Detail:   "The server rendered a different element than the client expected.",
	},
	"H041": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: node kind differs",
		Detail:   "A text node was found where a comment was expected, or the reverse.",
	},
	"H042": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: innerHTML differs",
		Detail:   "The server innerHTML does not match the client innerHTML.",
	},
	"H043": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: child nodes differ",
		Detail:   "The server-rendered child nodes do not match the client virtual children.",
	},
	"H044": {
		Category: CategoryHydration,
		Message:  "Hydration bailed",
		Detail: "The client-side rendered virtual tree does not match server-rendered content. " +
			"This is likely caused by incorrect HTML markup, for example nesting block-level " +
			"elements inside <p>, or missing <tbody>. Performing full client-side render.",
	},

	// ============================================
	// Config (C001-C009)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be loaded or failed validation.",
	},

	// ============================================
	// Protocol (P001-P009)
	// ============================================

	"P001": {
		Category: CategoryProtocol,
		Message:  "Malformed op log",
		Detail:   "An op-log frame could not be decoded.",
	},
	"P002": {
		Category: CategoryProtocol,
		Message:  "Session rejected",
		Detail:   "The server declined to start a live session for the request.",
	},

	// ============================================
	// CLI (X001-X009)
	// ============================================

	"X001": {
		Category: CategoryCLI,
		Message:  "Cannot read input",
		Detail:   "The input file could not be read or parsed.",
	},
}

// GetAllCodes returns all registered codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new template to the registry.
func Register(code string, template Template) {
	registry[code] = template
}
