package storage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/soft_delete"
)

type GormModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt soft_delete.DeletedAt `gorm:"uniqueIndex:idx_users_username_del;uniqueIndex:idx_users_email_del"`
}

type UserRecord struct {
	GormModel
	UserId      string `gorm:"size:64;not null;uniqueIndex"`                          // 用户唯一索引
	Username    string `gorm:"size:64;not null;uniqueIndex:idx_users_username_del"` // 用户名，可修改，全局唯一
	Email       string `gorm:"size:128;not null;uniqueIndex:idx_users_email_del"`   // 邮箱，可修改，全局唯一
	DisplayName string `gorm:"size:64;not null"`                                    // 展示名称
}

func (UserRecord) TableName() string {
	return "users"
}

// BeforeCreate assigns the immutable user id.
func (u *UserRecord) BeforeCreate(_ *gorm.DB) error {
	if u.UserId == "" {
		u.UserId = uuid.New().String()
	}
	return nil
}

type CredentialModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserCredentialRecord struct {
	CredentialModel
	UserId            string `gorm:"size:64;not null;uniqueIndex"` // 用户唯一索引
	SaltedHash        []byte `gorm:"size:64;not null"`             // 版本前缀 + 盐 + 派生密钥
	CredentialVersion uint   `gorm:"default:0;not null"`           // 密码凭证版本
}

func (UserCredentialRecord) TableName() string {
	return "user_credentials"
}
