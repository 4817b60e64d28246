// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis session keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for cached sessions.
const AuthCacheTTL = time.Hour

// PasswordResetPrefix is the prefix for password reset codes in Redis.
const PasswordResetPrefix = "pwdreset:"

// PasswordResetTTL bounds how long a reset code stays valid.
const PasswordResetTTL = 15 * time.Minute
