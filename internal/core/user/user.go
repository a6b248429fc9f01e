package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Username    string    `gorm:"unique;not null"`
	Password    string    `gorm:"not null"`
	Role        string    `gorm:"not null;default:User"`
	HeaderImage string    `gorm:"column:header_image;type:text"`
	BytesImage  string    `gorm:"column:bytes_image;type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}
