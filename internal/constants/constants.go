package constants

// ContextKeyUser is the gin context key holding the authenticated user.
const ContextKeyUser = "current_user"

// BearerScheme is the expected Authorization header scheme.
const BearerScheme = "Bearer"
