package entities

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"` // user, business, admin

	Posts  []*Post  `gorm:"foreignKey:UserID"`
	Claims []*Claim `gorm:"foreignKey:ClaimerID"`
	Timestamp
}
