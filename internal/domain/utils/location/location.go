package location

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once sync.Once
	loc  *time.Location
)

// Location returns the zone from settings.timezone. Event times typed without a zone are
// read in it. Falls back to UTC when the setting is empty or unknown.
func Location() *time.Location {
	once.Do(func() {
		var err error
		loc, err = time.LoadLocation(viper.GetString("settings.timezone"))
		if err != nil {
			loc = time.UTC
		}
	})
	return loc
}
