package model

import (
	"strings"
	"time"
	"unicode"
)

type TeamMember struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Initials  string    `json:"initials" bson:"initials"`
	Role      string    `json:"role" bson:"role"` // "doctor", "nurse", "reception", "admin"
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Specialty string    `json:"specialty,omitempty" bson:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// DeriveInitials returns up to two uppercase initials from a full name,
// e.g. "Maria del Carmen" -> "MD". Empty names yield "".
func DeriveInitials(name string) string {
	fields := strings.Fields(name)
	initials := make([]rune, 0, 2)
	for _, f := range fields {
		for _, r := range f {
			if unicode.IsLetter(r) {
				initials = append(initials, unicode.ToUpper(r))
			}
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
