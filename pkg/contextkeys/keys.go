package contextkeys

type contextKey string

const (
	UserIDKey   contextKey = "UserID"
	IsAdminKey  contextKey = "IsAdmin"
	TokenIDKey  contextKey = "TokenID"
	TokenExpKey contextKey = "TokenExp"
)
