package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ParseUserRole rejects anything outside the closed role set.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleUser, RoleAdmin:
		return UserRole(s), true
	}
	return "", false
}

// swagger:model User
type User struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username     string   `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Role         UserRole `gorm:"size:16;not null;default:'user'" json:"role"`
	BaseModel
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
