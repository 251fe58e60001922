package cache

import (
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	UsernameKeyPrefix      = "user:name:%s"
	AdvertisementKeyPrefix = "ad:%d"
)

const (
	UserTTL          = 5 * time.Minute
	AdvertisementTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// UsernameKey is case-sensitive, matching the unique index on username.
func UsernameKey(username string) string {
	return fmt.Sprintf(UsernameKeyPrefix, username)
}

func AdvertisementKey(adID uint) string {
	return fmt.Sprintf(AdvertisementKeyPrefix, adID)
}
