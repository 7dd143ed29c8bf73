package konsave

import "embed"

// topicsFS holds the `konsave help <topic>` pages.
//
//go:embed topics
var topicsFS embed.FS
