package constant

import "time"

const (
	OrderEmailLock = "order:email_lock:%s"
	BakongTokenKey = "bakong:token"
)

const (
	OrderEmailLockDefaultTTL = 1 * time.Minute
	BakongTokenTTL           = 7 * 24 * time.Hour
)
