package domain

type Role string

const (
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}
