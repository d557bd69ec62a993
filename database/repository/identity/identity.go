package identityRepo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Identity is the credential record owned by the identity side of the
// system, kept separate from the profile document so that account deletion
// can remove the two independently.
type Identity struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IdentityRepository defines methods for credential records.
type IdentityRepository interface {
	GetByID(id string) (*Identity, error)
	GetByEmail(email string) (*Identity, error)
	Create(ident *Identity) error
	UpdatePasswordHash(id, hash string) error
	Delete(id string) error
	GetByEmailWithProjection(email string, projection bson.M) (*Identity, error)
}
