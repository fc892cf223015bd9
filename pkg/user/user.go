package user

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ReservedAdminName is the login name excluded from leaderboards and stats,
// compared case-insensitively.
const ReservedAdminName = "admin"

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Role        Role
	Active      bool
	// ManagerId is the id of the user's direct manager; 0 when the user has none.
	ManagerId int
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
