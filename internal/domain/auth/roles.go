package auth

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

type UserContext struct {
	UserID       string
	RestaurantID string
	RoleID       string
	RoleName     string
	SessionID    string
}
