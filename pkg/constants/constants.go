package constants

//============== CACHE KEYS ==============

const (
	// lockout:<userID> -> "locked"
	CacheKeyLockout = "lockout:%d"

	// login_attempts:<userID> -> count
	CacheKeyLoginAttempts = "login_attempts:%d"

	// revoked_token:<jti> -> "1", kept until the token would have expired
	CacheKeyRevokedToken = "revoked_token:%s"

	CacheKeyAssetStats           = "assets:stats"
	CacheKeyCategoryDistribution = "assets:category_distribution"
)

//============== EVENT BUS ==============

const (
	EventPendingActionSubmitted = "pending_action.submitted"
	EventPendingActionResolved  = "pending_action.resolved"
)
