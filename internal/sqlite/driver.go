package sqlite

import (
	// Pure-Go driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)
