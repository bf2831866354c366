// Package guard switches the binaries into test mode when imported from a test.
package guard

import (
	"os"
	"sync"
)

const envKey = "SALESORDER_TEST_MODE"

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv(envKey) == "" {
			_ = os.Setenv(envKey, "1")
		}
	})
}
