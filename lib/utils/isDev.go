package utils

import "os"

func IsDevModeEnabled() bool {
	env := os.Getenv("PADFORMAT_ENV")
	return env == "development" || env == "dev"
}
