package entity

import "time"

// User representa um usuário do sistema (dono das suas retiradas e previsões).
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio após persistir
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
