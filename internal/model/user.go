package model

import "time"

// User 用户（即频道）
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username   string    `gorm:"size:64;not null;uniqueIndex;comment:用户名（小写）" json:"username"`
	Email      string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱（小写）" json:"email"`
	FullName   string    `gorm:"size:255;not null;index;comment:昵称" json:"full_name"`
	Avatar     string    `gorm:"size:500;not null;comment:头像地址" json:"avatar"`
	CoverImage string    `gorm:"size:500;comment:频道封面地址" json:"cover_image"`
	Password   string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
