package models

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"` //bcrypt雜湊，回應中一律不包含此欄位
	Role     string `json:"role"`
	Blocked  bool   `json:"blocked"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
