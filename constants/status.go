package constants

// User roles carried in the userinfo.role claim
const (
	RoleSuperAdmin   = 1
	RoleAdmin        = 2
	RoleReceptionist = 3
)

// Keys set on the gin context by middleware
const (
	CtxUserID    = "userID"
	CtxUserRole  = "userRole"
	CtxRequestID = "requestID"
)

const HeaderRequestID = "X-Request-ID"
