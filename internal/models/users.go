package models

// Role - роль пользователя в системе
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCourier  Role = "courier"
	RoleCustomer Role = "customer"
)

// Roles - закрытый набор ролей
var Roles = []Role{RoleAdmin, RoleStaff, RoleCourier, RoleCustomer}

func (r Role) String() string {
	return string(r)
}

// ParseRole - разбор роли из строки (например, из claims токена)
func ParseRole(value string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == value {
			return r, true
		}
	}
	return "", false
}

// Actor - пользователь, выполняющий действие
type Actor struct {
	ID   string
	Role Role
}

// UserData - модель пользователя из хранилища
type UserData struct {
	UserID   string
	Name     string
	Role     Role
	IsActive bool
}
