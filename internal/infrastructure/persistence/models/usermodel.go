package models

type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Login     string `gorm:"uniqueIndex;size:255;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
